package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tourdesk/admin-client/internal/constants"
	"github.com/tourdesk/admin-client/pkg/tourapi"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the tour admin API",
		Long:  "Authenticate with the tour admin API and keep the session cookie for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			credentials, err := promptCredentials(username, password, false)
			if err != nil {
				return err
			}

			return runAuth(cmd.Context(), credentials, func(ctx context.Context, auth tourapi.AuthClient) (tourapi.OpaqueJSON, error) {
				return auth.Login(ctx, credentials)
			}, "Logged in as "+credentials.Username)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")

	return cmd
}

// NewRegisterCommand creates the register command.
func NewRegisterCommand() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		Long:  "Create an account on the tour admin API",
		RunE: func(cmd *cobra.Command, args []string) error {
			credentials, err := promptCredentials(username, password, true)
			if err != nil {
				return err
			}

			return runAuth(cmd.Context(), credentials, func(ctx context.Context, auth tourapi.AuthClient) (tourapi.OpaqueJSON, error) {
				return auth.Register(ctx, credentials)
			}, "Registered "+credentials.Username)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out of the tour admin API",
		Long:  "End the backend session and remove the saved session cookie",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			clientSession, err := createClient(ctx, "")
			if err != nil {
				return err
			}

			defer clientSession.Close()

			_, err = clientSession.client.Auth().Logout(ctx)
			if err != nil {
				return fmt.Errorf("failed to log out: %w", err)
			}

			config := loadConfig()
			if config.removeSession(clientSession.config.BaseURL) {
				err = saveConfigStruct(config)
				if err != nil {
					return fmt.Errorf("failed to save configuration: %w", err)
				}
			}

			_, _ = fmt.Fprintln(os.Stdout, "Logged out")

			return nil
		},
	}
}

type authCall func(ctx context.Context, auth tourapi.AuthClient) (tourapi.OpaqueJSON, error)

func runAuth(ctx context.Context, credentials *tourapi.Credentials, call authCall, message string) error {
	clientSession, err := createClient(ctx, credentials.Username)
	if err != nil {
		return err
	}

	defer clientSession.Close()

	resp, err := call(ctx, clientSession.client.Auth())
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	return printResult(message, resp)
}

// promptCredentials fills in whatever was not passed as a flag from the
// terminal. The password is never echoed.
func promptCredentials(username, password string, confirm bool) (*tourapi.Credentials, error) {
	if username == "" {
		reader := bufio.NewReader(os.Stdin)

		_, _ = fmt.Fprint(os.Stdout, "Username: ")
		username, _ = reader.ReadString('\n')
		username = strings.TrimSpace(username)
	}

	if username == "" {
		return nil, constants.ErrUsernameRequired
	}

	if password == "" {
		var err error

		password, err = readPassword("Password: ")
		if err != nil {
			return nil, err
		}

		if confirm {
			repeated, err := readPassword("Confirm password: ")
			if err != nil {
				return nil, err
			}

			if repeated != password {
				return nil, constants.ErrPasswordMismatch
			}
		}
	}

	credentials := &tourapi.Credentials{Username: username, Password: password}

	err := tourapi.Validate(credentials)
	if err != nil {
		return nil, err
	}

	return credentials, nil
}

func readPassword(prompt string) (string, error) {
	_, _ = fmt.Fprint(os.Stdout, prompt)

	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	_, _ = fmt.Fprintln(os.Stdout)

	return string(bytePassword), nil
}
