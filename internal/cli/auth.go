package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"bravonest/internal/domain"
	"bravonest/internal/service"
)

func newLoginCmd(app *App) *cobra.Command {
	var phone, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with phone number and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := service.ValidatePhone(phone); err != nil {
				return fmt.Errorf("%s", domain.UserMessage(err))
			}
			if err := app.Auth.SignIn(cmd.Context(), phone, password); err != nil {
				return fmt.Errorf("%s", domain.UserMessage(err))
			}
			user, _ := app.Auth.CurrentUser()
			token, _ := app.Auth.AccessToken()
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s.\n", service.FormatPhone(user.Phone))
			fmt.Fprintf(cmd.OutOrStdout(), "export BRAVONEST_ACCESS_TOKEN=%s\n", token)
			return nil
		},
	}
	cmd.Flags().StringVar(&phone, "phone", "", "10-digit phone number")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.MarkFlagRequired("phone")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newSignupCmd(app *App) *cobra.Command {
	var phone, password, confirm, name string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := service.ValidatePhone(phone); err != nil {
				return fmt.Errorf("%s", domain.UserMessage(err))
			}
			if len(password) < 6 {
				return fmt.Errorf("password must be at least 6 characters")
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}
			if err := app.Auth.SignUp(cmd.Context(), phone, password, name); err != nil {
				return fmt.Errorf("%s", domain.UserMessage(err))
			}
			if app.Auth.State() == service.StateAuthenticated {
				token, _ := app.Auth.AccessToken()
				fmt.Fprintln(cmd.OutOrStdout(), "Account created.")
				fmt.Fprintf(cmd.OutOrStdout(), "export BRAVONEST_ACCESS_TOKEN=%s\n", token)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account created, confirmation pending. Sign in once confirmed.")
			return nil
		},
	}
	cmd.Flags().StringVar(&phone, "phone", "", "10-digit phone number")
	cmd.Flags().StringVar(&password, "password", "", "account password, 6 characters minimum")
	cmd.Flags().StringVar(&confirm, "confirm", "", "repeat the password")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.MarkFlagRequired("phone")
	cmd.MarkFlagRequired("password")
	cmd.MarkFlagRequired("confirm")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and revoke the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.SignOut(cmd.Context()); err != nil {
				return fmt.Errorf("%s", domain.UserMessage(err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out. Unset BRAVONEST_ACCESS_TOKEN to finish.")
			return nil
		},
	}
}
