package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gemaura-backend-go/internal/config"
	"gemaura-backend-go/internal/db"
	"gemaura-backend-go/internal/migrations"
	"gemaura-backend-go/internal/services"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Admin accounts are only ever created or reset here; the HTTP API has no
// user-management surface by design.
func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:          "provision",
		Short:        "Offline admin-account provisioning",
		SilenceUsage: true,
	}
	root.AddCommand(createAdminCmd(), resetPasswordCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func createAdminCmd() *cobra.Command {
	var username, email, password, role string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin user",
		RunE: func(cmd *cobra.Command, args []string) error {
			username = strings.TrimSpace(username)
			email = strings.TrimSpace(email)
			if username == "" || email == "" {
				return fmt.Errorf("username and email are required")
			}
			if len(password) < 6 {
				return fmt.Errorf("password must be at least 6 characters")
			}
			database, tokens, err := open()
			if err != nil {
				return err
			}
			defer database.Close()

			hash, err := tokens.HashPassword(password)
			if err != nil {
				return err
			}
			userID := uuid.NewString()
			_, err = database.Exec(`
INSERT INTO admin_users (id, username, email, password_hash, role, is_active, created_at)
VALUES ($1,$2,$3,$4,$5,TRUE,$6)
`, userID, username, email, hash, role, time.Now().UTC())
			if err != nil {
				return err
			}
			fmt.Printf("created admin %s (%s)\n", username, userID)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "login username")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().StringVar(&role, "role", "admin", "account role")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func resetPasswordCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Reset an admin user's password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(password) < 6 {
				return fmt.Errorf("password must be at least 6 characters")
			}
			database, tokens, err := open()
			if err != nil {
				return err
			}
			defer database.Close()

			hash, err := tokens.HashPassword(password)
			if err != nil {
				return err
			}
			result, err := database.Exec(`UPDATE admin_users SET password_hash = $1 WHERE username = $2`,
				hash, strings.TrimSpace(username))
			if err != nil {
				return err
			}
			if affected, _ := result.RowsAffected(); affected == 0 {
				return fmt.Errorf("no such user: %s", username)
			}
			fmt.Printf("password reset for %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "login username")
	cmd.Flags().StringVar(&password, "password", "", "new password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func open() (database *sqlx.DB, tokens services.TokenService, err error) {
	cfg := config.Load()
	database, err = db.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, services.TokenService{}, err
	}
	if err := migrations.Apply(database, "migrations"); err != nil {
		database.Close()
		return nil, services.TokenService{}, err
	}
	tokens = services.TokenService{Secret: []byte(cfg.JWTSecret), Issuer: cfg.JWTIssuer, TTL: cfg.SessionTTL()}
	return database, tokens, nil
}
