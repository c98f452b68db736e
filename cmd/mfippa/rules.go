package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Dadukaka/MFIPPA-Tracker/internal/rules"
	"github.com/Dadukaka/MFIPPA-Tracker/internal/rulesdsl"
)

func (a *app) rulesCmd() *cobra.Command {
	var export bool
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the active compliance rules",
		Long: `List the rules the classifier will run, in evaluation order.

With --export the active rules are printed as a YAML rule pack, a starting
point for a custom rules.pack.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			if export {
				defs := make([]rules.Definition, 0, reg.Len())
				for _, r := range reg.List() {
					defs = append(defs, rules.Definition{
						ID:          r.ID,
						Name:        r.Name,
						Citation:    r.Citation,
						Description: r.Description,
						Severity:    r.Severity,
						Patterns:    r.Patterns,
					})
				}
				b, err := rulesdsl.Marshal(defs)
				if err != nil {
					return err
				}
				_, err = a.stdout.Write(b)
				return err
			}

			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSEVERITY\tCITATION\tNAME\tPATTERNS")
			for _, r := range reg.List() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", r.ID, r.Severity, r.Citation, r.Name, r.PatternCount())
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&export, "export", false, "Print the active rules as a YAML rule pack")
	return cmd
}
