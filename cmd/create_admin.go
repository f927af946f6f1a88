package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VGOT23/rbac-project/internal/core/domain"
	"github.com/VGOT23/rbac-project/internal/core/ports"
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account, or promote an existing account to admin",
	Long: "Roles can only be changed by an admin through the API, so the first admin\n" +
		"is created here. If the email is already registered the account is promoted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		email = strings.ToLower(strings.TrimSpace(email))
		password, _ := cmd.Flags().GetString("password")

		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		result, err := a.auth.CreateAdmin(cmd.Context(), ports.RegisterInput{
			Name:     name,
			Email:    email,
			Password: password,
		})
		switch {
		case err == nil:
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s created with id %s\n", result.User.Email, result.User.ID)
			return nil
		case !errors.Is(err, domain.ErrUserExists):
			return err
		}

		existing, err := a.users.FindByEmail(cmd.Context(), email)
		if err != nil {
			return err
		}
		if existing.Role == domain.RoleAdmin {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is already an admin\n", existing.Email)
			return nil
		}
		if _, err := a.users.UpdateRole(cmd.Context(), existing.ID, domain.RoleAdmin); err != nil {
			return err
		}
		a.log.Info().Str("user_id", existing.ID).Msg("user promoted to admin from the command line")
		fmt.Fprintf(cmd.OutOrStdout(), "%s promoted to admin\n", existing.Email)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().String("name", "Administrator", "display name")
	createAdminCmd.Flags().String("email", "", "login email")
	createAdminCmd.Flags().String("password", "", "password (at least 6 characters)")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(createAdminCmd)
}
