package user

import (
	"fmt"

	"github.com/spf13/cobra"

	"docpod/cmd/docpod/cmd/cmdutil"
	"docpod/internal/api/v1/dto"
	"docpod/internal/api/v1/services"
	"docpod/internal/app"
)

var (
	username string
	email    string
	password string
)

func init() {
	createCmd.Flags().StringVarP(&username, "username", "u", "", "login name")
	createCmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	createCmd.Flags().StringVarP(&password, "password", "p", "", "password, at least 8 characters")

	createCmd.MarkFlagRequired("username")
	createCmd.MarkFlagRequired("email")
	createCmd.MarkFlagRequired("password")

	Cmd.AddCommand(createCmd)
}

// Cmd represents the user command
var Cmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &dto.SignupRequest{Username: username, Email: email, Password: password}
		if err := req.Validate(); err != nil {
			return err
		}
		if len(req.Password) < 8 {
			return fmt.Errorf("password must be at least 8 characters")
		}

		cfg, logger, err := cmdutil.Load(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		store, cleanup, err := app.InitializeStore(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		auth := services.NewAuthService(store, cfg.Auth.SessionTTL, cfg.Auth.BcryptCost, logger)
		created, err := auth.Signup(cmd.Context(), req)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s, %s)\n", created.ID, created.Username, created.Email)
		return nil
	},
}
