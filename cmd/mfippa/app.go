package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dadukaka/MFIPPA-Tracker/internal/ir"
	"github.com/Dadukaka/MFIPPA-Tracker/internal/rules"
	"github.com/Dadukaka/MFIPPA-Tracker/internal/rulesdsl"
	"github.com/Dadukaka/MFIPPA-Tracker/internal/shared"
)

// app carries what every subcommand needs after config is loaded.
type app struct {
	stdin          io.Reader
	stdout, stderr io.Writer

	configPath string
	logLevel   string

	cfg    shared.Config
	logger *slog.Logger
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:   "mfippa",
		Short: "MFIPPA compliance screening for documents",
		Long: `mfippa scans free text for keywords and patterns tied to the Municipal
Freedom of Information and Protection of Privacy Act (R.S.O. 1990, c. M.56):
personal information, collection authority, use limitation, disclosure,
retention, access requests and exemptions.

This is an automated screening tool. All findings should be reviewed by
your FOI/Privacy Coordinator or legal counsel.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to YAML config (optional)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	cmd.AddCommand(
		a.analyzeCmd(),
		a.rulesCmd(),
		a.serveCmd(),
		a.userCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				cmd.Printf("mfippa %s (IR %s)\n", Version, ir.Version)
			},
		},
	)
	return cmd
}

// precedence: flags > env > config file > defaults
func (a *app) init() error {
	cfg, err := shared.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	logger, err := shared.NewLogger(a.stderr, cfg.Logging.Format, cfg.Logging.Level)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	a.cfg, a.logger = cfg, logger
	return nil
}

// registry builds the rule registry; any error here is a configuration
// error and the command must not go on to analyze anything.
func (a *app) registry() (*rules.Registry, error) {
	reg, err := rulesdsl.LoadRegistry(a.cfg.Rules.Pack, rules.Options{
		Disabled:    a.cfg.Rules.Disabled,
		MaxSnippets: a.cfg.Rules.MaxSnippets,
	})
	if err != nil {
		a.logger.Error("rules failed to load", "pack", a.cfg.Rules.Pack, "err", err)
		return nil, err
	}
	a.logger.Debug("rules loaded", "rules", reg.Len(), "pack", a.cfg.Rules.Pack,
		"disabled", strings.Join(a.cfg.Rules.Disabled, ","))
	return reg, nil
}
