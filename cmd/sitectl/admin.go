package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"company-site.backend/internal/domain/entities"
	domainerrors "company-site.backend/internal/domain/errors"
	"company-site.backend/internal/infrastructure/repositories"
	"company-site.backend/internal/usecases"
	"company-site.backend/pkg/crypto"
	"github.com/spf13/cobra"
)

func newCreateAdminCmd(deps cliDeps) *cobra.Command {
	var (
		input   usecases.CreateAdminInput
		role    string
		migrate bool
	)
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a dashboard account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input.Role = entities.AdminRole(strings.ToLower(strings.TrimSpace(role)))

			cfg := deps.loadCfg()
			db, err := deps.openDB(cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect db: %w", err)
			}
			defer deps.closeDB(db)
			if migrate {
				if err := deps.migrate(db); err != nil {
					return err
				}
			}

			auth := usecases.NewAuthUsecase(repositories.NewAdminUserRepository(db), nil, nil, 0)
			admin, err := auth.CreateAdmin(cmd.Context(), &input)
			if err != nil {
				return describeCreateAdminError(err)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, "Created admin account")
			_, _ = fmt.Fprintf(out, "id=%s\n", admin.ID)
			_, _ = fmt.Fprintf(out, "email=%s\n", admin.Email)
			_, _ = fmt.Fprintf(out, "role=%s\n", admin.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&input.Email, "email", "", "login email (required)")
	cmd.Flags().StringVar(&input.Name, "name", "", "display name (required)")
	cmd.Flags().StringVar(&input.Password, "password", "", "password, at least 8 characters (required)")
	cmd.Flags().StringVar(&role, "role", string(entities.AdminRoleAdmin), "admin or editor")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "create missing tables first")
	return cmd
}

// describeCreateAdminError flattens field errors into one line for the terminal.
func describeCreateAdminError(err error) error {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		return fmt.Errorf("failed creating admin: %w", err)
	}
	if len(appErr.Fields) == 0 {
		return fmt.Errorf("failed creating admin: %s", appErr.Message)
	}
	fields := make([]string, 0, len(appErr.Fields))
	for field := range appErr.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+appErr.Fields[field])
	}
	return fmt.Errorf("failed creating admin: %s", strings.Join(parts, "; "))
}

func newHashPasswordCmd() *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := crypto.HashPasswordWithCost(args[0], cost)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", crypto.DefaultCost, "bcrypt cost")
	return cmd
}
