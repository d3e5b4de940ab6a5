package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/finarchitect/resetpass/internal/authapi"
	"github.com/finarchitect/resetpass/internal/config"
	"github.com/finarchitect/resetpass/internal/domain"
	"github.com/finarchitect/resetpass/internal/logging"
)

var (
	baseURL string
	timeout time.Duration
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "finarch-cli",
	Short: "FinArchitect auth API command-line client",
	Long: `finarch-cli talks to the FinArchitect authentication API.

Available commands:
  login           Exchange credentials for a token pair
  register        Create an account
  reset-request   Email a password reset link
  reset-confirm   Set a new password using a reset token

Use "finarch-cli [command] --help" for more information about a specific command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "warn"
		if verbose {
			level = "debug"
		}
		logging.SetDefault(cmd.ErrOrStderr(), os.Getenv("LOG_FORMAT"), level)
	},
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", describe(err))
		os.Exit(1)
	}
}

func init() {
	_ = godotenv.Load()

	defaultBaseURL := os.Getenv("AUTH_API_BASE_URL")
	if defaultBaseURL == "" {
		defaultBaseURL = config.DefaultAuthAPIBaseURL
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", defaultBaseURL, "auth API base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", authapi.DefaultTimeout, "request timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests and responses")
}

func newClient() *authapi.Client {
	return authapi.NewClient(baseURL, authapi.WithTimeout(timeout))
}

// describe renders API errors with their status code.
func describe(err error) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("%s (HTTP %d)", apiErr.Message, apiErr.Status)
	}
	return err.Error()
}
