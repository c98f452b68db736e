package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dadukaka/MFIPPA-Tracker/internal/extract"
	"github.com/Dadukaka/MFIPPA-Tracker/internal/ir"
	"github.com/Dadukaka/MFIPPA-Tracker/internal/reporting"
)

func (a *app) analyzeCmd() *cobra.Command {
	var (
		text   string
		file   string
		format string
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "analyze [-]",
		Short: "Analyze text, a file, or stdin for MFIPPA compliance concerns",
		Example: `  mfippa analyze --text "We collect the applicant's address and phone number."
  mfippa analyze --file policy.html --format markdown
  cat notice.txt | mfippa analyze -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stdin := len(args) == 1 && args[0] == "-"
			if len(args) == 1 && !stdin {
				return fmt.Errorf("unexpected argument %q (use --file)", args[0])
			}
			if n := btoi(cmd.Flags().Changed("text")) + btoi(file != "") + btoi(stdin); n != 1 {
				return errors.New("exactly one of --text, --file or - (stdin) is required")
			}

			reg, err := a.registry()
			if err != nil {
				return err
			}

			var an ir.Analysis
			switch {
			case file != "":
				doc, err := extract.ReadFile(file)
				if err != nil {
					return a.readError(err)
				}
				if !doc.Analyzable() {
					a.logger.Info("nothing to analyze", "source", doc.Filename, "kind", doc.Kind, "notice", doc.Notice)
					fmt.Fprintln(a.stdout, doc.Notice)
					return nil
				}
				an = reg.Run(doc.Filename, doc.Text)
			case stdin:
				b, err := io.ReadAll(a.stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				doc, err := extract.Decode("stdin.txt", b)
				if err != nil {
					return a.readError(err)
				}
				if !doc.Analyzable() {
					fmt.Fprintln(a.stdout, doc.Notice)
					return nil
				}
				an = reg.Run("stdin", doc.Text)
			default:
				if text == "" {
					fmt.Fprintln(a.stdout, "Please enter some text to analyze.")
					return nil
				}
				an = reg.Run("text", text)
			}

			a.logger.Info("analysis complete", "id", an.ID, "source", an.Source,
				"length", an.Length, "findings", len(an.Findings))

			rep := reporting.Build(&an)
			if err := render(a.stdout, format, &rep); err != nil {
				return err
			}

			if outDir == "" {
				return nil
			}
			for _, f := range a.cfg.Reporting.Formats {
				path, err := writeReport(f, an.ID, outDir, &rep)
				if err != nil {
					return err
				}
				a.logger.Info("report written", "format", f, "path", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&text, "text", "t", "", "Text to analyze")
	cmd.Flags().StringVarP(&file, "file", "f", "", "File to analyze (txt, md, html, pdf)")
	cmd.Flags().StringVar(&format, "format", "console", "Stdout format: console, json, html or markdown")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Also write the configured report formats to this directory")
	return cmd
}

func render(w io.Writer, format string, rep *reporting.Report) error {
	switch strings.ToLower(format) {
	case "", "console":
		return reporting.WriteConsole(w, rep)
	case "json":
		return reporting.EncodeJSON(w, rep)
	case "html":
		return reporting.RenderHTML(w, rep)
	case "markdown", "md":
		return reporting.RenderMarkdown(w, rep)
	default:
		return fmt.Errorf("unknown format %q (console, json, html, markdown)", format)
	}
}

func writeReport(format, id, outDir string, rep *reporting.Report) (string, error) {
	switch strings.ToLower(format) {
	case "json":
		return reporting.WriteJSON(id, outDir, rep)
	case "html":
		return reporting.WriteHTML(id, outDir, rep)
	case "markdown", "md":
		return reporting.WriteMarkdown(id, outDir, rep)
	default:
		return "", fmt.Errorf("unknown report format %q in reporting.formats", format)
	}
}

// readError prints the decode failure the way users see it and returns
// errReported so main exits 1 without printing it twice.
func (a *app) readError(err error) error {
	a.logger.Warn("input could not be read", "err", err)
	fmt.Fprintf(a.stderr, "Error reading file: %v\n", err)
	return errReported
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
