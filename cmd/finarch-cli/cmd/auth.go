package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finarchitect/resetpass/internal/domain"
	"github.com/finarchitect/resetpass/internal/domain/auth_errors"
)

var (
	email       string
	password    string
	confirm     string
	firstName   string
	lastName    string
	company     string
	redirectURL string
	token       string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Exchange credentials for a token pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := newClient().Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}
		printTokens(cmd, resp)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if password != confirm {
			return auth_errors.ErrPasswordMismatch
		}
		resp, err := newClient().Register(cmd.Context(), domain.RegisterRequest{
			Email:     email,
			Password:  password,
			FirstName: firstName,
			LastName:  lastName,
			Company:   company,
		})
		if err != nil {
			return err
		}
		printTokens(cmd, resp)
		return nil
	},
}

var resetRequestCmd = &cobra.Command{
	Use:   "reset-request",
	Short: "Email a password reset link",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := redirectURL
		if target == "" {
			base := strings.TrimRight(os.Getenv("APP_BASE_URL"), "/")
			if base == "" {
				return fmt.Errorf("--redirect-url is required when APP_BASE_URL is not set")
			}
			target = base + "/reset-password"
		}

		resp, err := newClient().PasswordReset(cmd.Context(), email, target)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
		return nil
	},
}

var resetConfirmCmd = &cobra.Command{
	Use:   "reset-confirm",
	Short: "Set a new password using a reset token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if token == "" {
			return auth_errors.ErrMissingResetToken
		}
		if password != confirm {
			return auth_errors.ErrPasswordMismatch
		}

		resp, err := newClient().PasswordResetConfirm(cmd.Context(), token, password)
		if err != nil {
			return err
		}
		msg := resp.Message
		if msg == "" {
			msg = "Your password has been successfully reset."
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

func printTokens(cmd *cobra.Command, resp *domain.TokenResponse) {
	out := cmd.OutOrStdout()
	if resp.Message != "" {
		fmt.Fprintln(out, resp.Message)
	}
	fmt.Fprintf(out, "access_token=%s\nrefresh_token=%s\n", resp.AccessToken, resp.RefreshToken)
}

func init() {
	loginCmd.Flags().StringVar(&email, "email", "", "account email")
	loginCmd.Flags().StringVar(&password, "password", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().StringVar(&email, "email", "", "account email")
	registerCmd.Flags().StringVar(&password, "password", "", "new password")
	registerCmd.Flags().StringVar(&confirm, "confirm", "", "repeat the new password")
	registerCmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	registerCmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	registerCmd.Flags().StringVar(&company, "company", "", "company")
	for _, name := range []string{"email", "password", "confirm", "first-name", "last-name"} {
		_ = registerCmd.MarkFlagRequired(name)
	}

	resetRequestCmd.Flags().StringVar(&email, "email", "", "account email")
	resetRequestCmd.Flags().StringVar(&redirectURL, "redirect-url", "", "reset page the emailed link points to (default $APP_BASE_URL/reset-password)")
	_ = resetRequestCmd.MarkFlagRequired("email")

	resetConfirmCmd.Flags().StringVar(&token, "token", "", "reset token from the emailed link")
	resetConfirmCmd.Flags().StringVar(&password, "password", "", "new password")
	resetConfirmCmd.Flags().StringVar(&confirm, "confirm", "", "repeat the new password")
	_ = resetConfirmCmd.MarkFlagRequired("password")
	_ = resetConfirmCmd.MarkFlagRequired("confirm")

	rootCmd.AddCommand(loginCmd, registerCmd, resetRequestCmd, resetConfirmCmd)
}
