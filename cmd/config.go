package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/colstat-cli/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set colstat configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(b))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Long: `Updates one key in the config file. Values passed as flags on the same
command line only affect that run and are not saved.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		// reload without flag overrides
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return err
		}
		if err := setKey(c, key, val); err != nil {
			return err
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			p, err := cfgpkg.DefaultPath()
			if err != nil {
				return err
			}
			path = p
		}
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat config: %w", err)
		}
		if err := cfgpkg.Save(cfgpkg.Default(), path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
		return nil
	},
}

func setKey(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "input_delimiter":
		c.InputDelimiter = val
	case "output_delimiter":
		c.OutputDelimiter = val
	case "precision":
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid int for precision: %w", err)
		}
		c.Precision = i
	case "zero_as_empty":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for zero_as_empty: %w", err)
		}
		c.ZeroAsEmpty = b
	case "cardinality_strategy":
		c.CardinalityStrategy = strings.ToLower(val)
	case "cardinality_cap":
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid int for cardinality_cap: %w", err)
		}
		c.CardinalityCap = i
	case "sketch_precision":
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid int for sketch_precision: %w", err)
		}
		c.SketchPrecision = i
	case "max_line_size":
		c.MaxLineSize = val
	case "log_level":
		c.LogLevel = strings.ToUpper(val)
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")
}
