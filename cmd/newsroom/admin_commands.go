package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"newsroom/internal/config"
	"newsroom/internal/storage/sqlstore"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema (postgres and sqlite backends)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openSQL(cmd.Context(), ctx.cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := sqlstore.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			ctx.logger.Info("schema applied", "backend", ctx.cfg.Backend)
			return nil
		},
	}
}

func newAdminCommand(ctx *commandContext) *cobra.Command {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage editor accounts",
	}
	adminCmd.AddCommand(newAdminCreateCommand(ctx))
	return adminCmd
}

func newAdminCreateCommand(ctx *commandContext) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an editor or reset their password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ctx.cfg.Backend == config.BackendSupabase {
				return errors.New("editors of the hosted backend are managed from its auth dashboard")
			}

			db, err := openSQL(cmd.Context(), ctx.cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := sqlstore.Migrate(cmd.Context(), db); err != nil {
				return err
			}

			auth := sqlstore.NewAuthenticator(db, ctx.cfg.Site.SessionTTL)
			if err := auth.CreateAdmin(cmd.Context(), email, password); err != nil {
				return fmt.Errorf("create editor: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Editor %s saved\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Editor email address")
	cmd.Flags().StringVar(&password, "password", "", "Editor password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
