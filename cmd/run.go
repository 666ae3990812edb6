package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	cfgpkg "github.com/KaramelBytes/colstat-cli/internal/config"
	"github.com/KaramelBytes/colstat-cli/internal/input"
	"github.com/KaramelBytes/colstat-cli/internal/logging"
	"github.com/KaramelBytes/colstat-cli/internal/profile"
	"github.com/KaramelBytes/colstat-cli/internal/render"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// profileCommand builds the RunE shared by the mode subcommands.
func profileCommand(mode profile.Mode) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		path := input.Stdin
		if len(args) > 0 {
			path = args[0]
		}
		return runProfile(cmd, mode, path)
	}
}

func runProfile(cmd *cobra.Command, mode profile.Mode, path string) error {
	if cfg == nil {
		return errors.New("configuration not loaded")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	opt, err := profileOptions(cfg)
	if err != nil {
		return err
	}
	maxLine, err := cfg.MaxLineBytes()
	if err != nil {
		return err
	}

	src, err := openInput(cmd, path)
	if err != nil {
		if errors.Is(err, input.ErrInteractive) {
			_ = cmd.Usage()
		}
		return err
	}
	defer src.Close()

	log := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	runID := uuid.NewString()
	log.Infof("run %s: mode=%s input=%s", runID, mode, src.Name)
	start := time.Now()

	lines := input.NewLines(src, maxLine)
	rep, err := buildReport(mode, lines, opt, cfg.Precision)
	if err != nil {
		return fmt.Errorf("%s: %w", src.Name, err)
	}
	log.Debugf("run %s: %s lines, %s read in %s", runID,
		humanize.Comma(lines.Count()), humanize.Bytes(uint64(lines.Bytes())),
		time.Since(start).Round(time.Millisecond))
	if mode == profile.ModeGroupNumber || mode == profile.ModeGroupString {
		log.Debugf("run %s: %d groups", runID, len(rep.Rows))
	}

	return writeReport(cmd, rep)
}

func profileOptions(c *cfgpkg.Global) (profile.Options, error) {
	delim, err := cfgpkg.ParseDelimiter(c.InputDelimiter)
	if err != nil {
		return profile.Options{}, err
	}
	card, err := c.CardinalityOptions()
	if err != nil {
		return profile.Options{}, err
	}
	return profile.Options{
		Delimiter:   delim,
		ZeroAsEmpty: c.ZeroAsEmpty,
		Cardinality: card,
	}, nil
}

// openInput prefers the command's stdin so tests can substitute it.
func openInput(cmd *cobra.Command, path string) (*input.Source, error) {
	if path != "" && path != input.Stdin {
		return input.Open(path, nil)
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		return input.Open(path, f)
	}
	return &input.Source{Reader: in, Name: "stdin"}, nil
}

func buildReport(mode profile.Mode, lines *input.Lines, opt profile.Options, precision int) (*profile.Report, error) {
	switch mode {
	case profile.ModeNumber:
		s, err := profile.ProfileNumbers(lines, opt)
		if err != nil {
			return nil, err
		}
		return profile.NumberReport(s, precision), nil
	case profile.ModeGroupNumber:
		t, err := profile.GroupNumbers(lines, opt)
		if err != nil {
			return nil, err
		}
		return profile.GroupNumberReport(t, opt.Delimiter, precision), nil
	case profile.ModeGroupString:
		t, err := profile.GroupStrings(lines, opt)
		if err != nil {
			return nil, err
		}
		return profile.GroupStringReport(t, opt.Delimiter, precision), nil
	case profile.ModeCSV:
		t, err := profile.ProfileColumns(lines, opt)
		if err != nil {
			return nil, err
		}
		return profile.ColumnReport(t, precision), nil
	}
	return nil, fmt.Errorf("unknown mode %q", mode)
}

func writeReport(cmd *cobra.Command, rep *profile.Report) error {
	out := cmd.OutOrStdout()
	if cfg.OutputDelimiter != "" {
		delim, err := cfgpkg.ParseDelimiter(cfg.OutputDelimiter)
		if err != nil {
			return err
		}
		return render.Delimited(out, rep, delim)
	}
	bold := false
	if f, ok := out.(*os.File); ok {
		bold = input.IsTerminal(f) && !color.NoColor
	}
	return render.Table(out, rep, render.TableOptions{Bold: bold})
}
