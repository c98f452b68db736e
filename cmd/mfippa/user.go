package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dadukaka/MFIPPA-Tracker/internal/security"
	"github.com/Dadukaka/MFIPPA-Tracker/internal/storage"
)

func (a *app) userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage API users",
	}

	var username, password, role string
	add := &cobra.Command{
		Use:   "add",
		Short: "Create an API user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return errors.New("--username and --password are required")
			}
			if !storage.ValidRole(role) {
				return fmt.Errorf("unknown role %q (admin, viewer)", role)
			}
			hash, err := security.HashPassword(password)
			if err != nil {
				return err
			}
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			id, err := db.CreateUser(username, hash, role)
			if err != nil {
				return err
			}
			if err := db.LogAudit("", "user.create", username, map[string]any{"role": role}); err != nil {
				a.logger.Warn("audit write failed", "err", err)
			}
			a.logger.Info("user created", "id", id, "username", username, "role", role)
			fmt.Fprintf(a.stdout, "created user %s (%s)\n", username, role)
			return nil
		},
	}
	add.Flags().StringVarP(&username, "username", "u", "", "Username")
	add.Flags().StringVarP(&password, "password", "p", "", "Password (min 10 characters)")
	add.Flags().StringVar(&role, "role", storage.RoleViewer, "Role: admin or viewer")

	var limit int
	audit := &cobra.Command{
		Use:   "audit",
		Short: "Show the most recent audit entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			entries, err := db.ListAudit(limit)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tUSER\tACTION\tRESOURCE")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.TS.Format(time.RFC3339), e.Username, e.Action, e.Resource)
			}
			return tw.Flush()
		},
	}
	audit.Flags().IntVarP(&limit, "limit", "n", 50, "Number of entries")

	cmd.AddCommand(add, audit)
	return cmd
}
