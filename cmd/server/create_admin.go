package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yukikurage/rbac-task-api/internal/server"
	"github.com/yukikurage/rbac-task-api/internal/services"
	"github.com/yukikurage/rbac-task-api/internal/utils"
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account",
	Long:  "Create an admin account. When --password is omitted a random password is generated and printed once.",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := cmd.Flags().GetString("email")
		if err != nil {
			return err
		}
		password, err := cmd.Flags().GetString("password")
		if err != nil {
			return err
		}
		fullName, err := cmd.Flags().GetString("name")
		if err != nil {
			return err
		}

		generated := password == ""
		if generated {
			password, err = utils.GeneratePassword()
			if err != nil {
				return err
			}
		}

		cfg, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		svc := server.NewServices(cfg, db, log)
		user, err := svc.Auth.CreateAdmin(services.RegisterInput{
			Email:    email,
			Password: password,
			FullName: fullName,
		})
		if err != nil {
			return fmt.Errorf("unable to create admin: %w", err)
		}

		fmt.Printf("Admin user created: %s (id %d)\n", user.Email, user.ID)
		if generated {
			fmt.Printf("Generated password: %s\n", password)
		}
		return nil
	},
}

func init() {
	createAdminCmd.Flags().String("email", "admin@example.com", "admin email")
	createAdminCmd.Flags().String("password", "", "admin password (generated when empty)")
	createAdminCmd.Flags().String("name", "Admin User", "admin full name")
}
