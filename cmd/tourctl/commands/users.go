package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tourdesk/admin-client/internal/constants"
	"github.com/tourdesk/admin-client/pkg/tourapi"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage users",
		Long:    "List and manage platform accounts and their roles",
	}

	cmd.AddCommand(newUsersListCommand())
	cmd.AddCommand(newUsersGetCommand())
	cmd.AddCommand(newUsersCreateCommand())
	cmd.AddCommand(newUsersUpdateCommand())
	cmd.AddCommand(newUsersSetRoleCommand())
	cmd.AddCommand(newUsersByRoleCommand())

	return cmd
}

func newUsersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(client tourapi.Client) error {
				users, err := client.Users().List(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list users: %w", err)
				}

				return renderStructured(users, func() error {
					return outputUsersTable(users)
				})
			})
		},
	}
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get USER_ID",
		Short: "Get user details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(client tourapi.Client) error {
				user, err := client.Users().Get(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to get user: %w", err)
				}

				return renderStructured(user, func() error {
					return outputUsersTable([]tourapi.User{*user})
				})
			})
		},
	}
}

func outputUsersTable(users []tourapi.User) error {
	if len(users) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, "No users found")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Email", "Role")

	for _, user := range users {
		_ = table.Append([]string{
			user.ID,
			user.Name,
			formatConfigValue(user.Email),
			formatConfigValue(user.Role),
		})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newUsersCreateCommand() *cobra.Command {
	var (
		username string
		password string
		role     string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedRole, err := parseRole(role)
			if err != nil {
				return err
			}

			if password == "" {
				password, err = readPassword("Password: ")
				if err != nil {
					return err
				}
			}

			request := &tourapi.CreateUserRequest{
				UserName: username,
				Password: password,
				Role:     parsedRole,
			}

			err = tourapi.Validate(request)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			return withClient(ctx, func(client tourapi.Client) error {
				resp, err := client.Users().Create(ctx, request)
				if err != nil {
					return fmt.Errorf("failed to create user: %w", err)
				}

				return printResult("Created user "+username, resp)
			})
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&role, "role", "customer", "role: customer or admin")

	return cmd
}

func newUsersUpdateCommand() *cobra.Command {
	var (
		name  string
		email string
	)

	cmd := &cobra.Command{
		Use:   "update USER_ID",
		Short: "Update a user's profile",
		Long:  "Update a user's name or email. Only the fields passed are sent.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &tourapi.UpdateUserRequest{}

			if cmd.Flags().Changed("name") {
				request.Name = &name
			}

			if cmd.Flags().Changed("email") {
				request.Email = &email
			}

			if request.Name == nil && request.Email == nil {
				return constants.ErrNothingToSave
			}

			err := tourapi.Validate(request)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			return withClient(ctx, func(client tourapi.Client) error {
				resp, err := client.Users().Update(ctx, args[0], request)
				if err != nil {
					return fmt.Errorf("failed to update user: %w", err)
				}

				return printResult("Updated user "+args[0], resp)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")

	return cmd
}

func newUsersSetRoleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-role USER_ID ROLE",
		Short: "Change a user's role",
		Long:  "Change a user's role. ROLE is customer, admin, 0 or 1.",
		Args:  cobra.ExactArgs(constants.TwoArgumentsRequired),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := parseRole(args[1])
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			return withClient(ctx, func(client tourapi.Client) error {
				resp, err := client.Users().UpdateRole(ctx, args[0], role)
				if err != nil {
					return fmt.Errorf("failed to update user role: %w", err)
				}

				return printResult(fmt.Sprintf("Set role of user %s to %s", args[0], roleName(role)), resp)
			})
		},
	}
}

func newUsersByRoleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "by-role ROLE",
		Short: "List users with a role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withClient(ctx, func(client tourapi.Client) error {
				resp, err := client.Users().ListByRole(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to list users by role: %w", err)
				}

				return renderOpaque(resp)
			})
		},
	}
}

// parseRole accepts a role name or its numeric value.
func parseRole(value string) (tourapi.UserRole, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "customer":
		return tourapi.UserRoleCustomer, nil
	case "admin":
		return tourapi.UserRoleAdmin, nil
	}

	number, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", constants.ErrInvalidRole, value)
	}

	role := tourapi.UserRole(number)
	if role != tourapi.UserRoleCustomer && role != tourapi.UserRoleAdmin {
		return 0, fmt.Errorf("%w: %s", constants.ErrInvalidRole, value)
	}

	return role, nil
}

func roleName(role tourapi.UserRole) string {
	if role == tourapi.UserRoleAdmin {
		return "admin"
	}

	return "customer"
}
