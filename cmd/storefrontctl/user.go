package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"storefront-api/internal/model"
	"storefront-api/internal/repository"
	"storefront-api/internal/service"
)

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage storefront accounts",
	}

	cmd.AddCommand(userCreateCmd(), userSetRoleCmd())
	return cmd
}

func userCreateCmd() *cobra.Command {
	var input service.RegisterInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account; the only way to create administrators",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			users := repository.NewUserRepository(db.Pool)
			// Register touches neither tokens nor sessions.
			auth := service.NewAuthService(users, service.NewCredentialVerifier(users), nil, nil)

			user, err := auth.Register(ctx, input)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %s user %s (%s)\n", user.Role, user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Email, "email", "", "Login email (exact match)")
	cmd.Flags().StringVar(&input.Password, "password", "", "Initial password")
	cmd.Flags().StringVar(&input.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&input.Role, "role", model.RoleUser, "Role: user or admin")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func userSetRoleCmd() *cobra.Command {
	var (
		email string
		role  string
	)

	cmd := &cobra.Command{
		Use:   "set-role",
		Short: "Change the role of an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if role != model.RoleUser && role != model.RoleAdmin {
				return fmt.Errorf("unknown role %q", role)
			}

			ctx := cmd.Context()
			db, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			users := repository.NewUserRepository(db.Pool)
			user, err := users.FindByEmail(ctx, email)
			if err != nil {
				return err
			}
			if err := users.UpdateRole(ctx, user.ID, role); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", user.Email, role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&role, "role", model.RoleAdmin, "New role: user or admin")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
