package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"quill/internal/model/auth"
	"quill/internal/pkg/id"
	"quill/internal/pkg/mongodb"
	"quill/internal/pkg/password"
	"quill/internal/repository"
	authrepo "quill/internal/repository/auth"
)

var initAdminCmd = &cobra.Command{
	Use:   "init-admin",
	Short: "Create or promote the initial admin user",
	Long: `Create the admin account if it does not exist, otherwise promote the
existing account to an active admin. Values can also be supplied through
QUILL_ADMIN_USERNAME, QUILL_ADMIN_PASSWORD and QUILL_ADMIN_EMAIL.`,
	RunE: runInitAdmin,
}

func init() {
	rootCmd.AddCommand(initAdminCmd)

	flags := initAdminCmd.Flags()
	flags.String("username", "admin", "admin username")
	flags.String("password", "", "admin password (required when creating)")
	flags.String("email", "admin@example.com", "admin email")

	_ = viper.BindPFlag("admin.username", flags.Lookup("username"))
	_ = viper.BindPFlag("admin.password", flags.Lookup("password"))
	_ = viper.BindPFlag("admin.email", flags.Lookup("email"))
}

func runInitAdmin(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongodb.New(ctx, &cfg.Mongo)
	if err != nil {
		return fmt.Errorf("failed to connect mongo: %w", err)
	}
	defer func() {
		_ = client.Close(context.Background())
	}()

	if err := mongodb.EnsureIndexes(ctx, client.Database()); err != nil {
		log.Warn().Err(err).Msg("failed to ensure indexes")
	}

	users := authrepo.NewUserRepo(client.Database())
	username := viper.GetString("admin.username")
	email := viper.GetString("admin.email")

	user, err := users.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		pwd := viper.GetString("admin.password")
		if len(pwd) < password.MinLength {
			return fmt.Errorf("admin password must be at least %d characters", password.MinLength)
		}
		log.Info().Str("username", username).Msg("admin user not found, will create")
		if err := createAdmin(ctx, users, username, email, pwd); err != nil {
			return fmt.Errorf("create admin user failed: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to query user: %w", err)
	default:
		log.Info().Str("username", username).Msg("admin user exists, will update role/status")
		if err := users.UpdateRoleStatus(ctx, user.ID, auth.RoleAdmin, auth.UserStatusActive); err != nil {
			return fmt.Errorf("update admin user failed: %w", err)
		}
	}

	fmt.Printf("Admin initialized: username=%s role=admin status=active\n", username)
	return nil
}

func createAdmin(ctx context.Context, repo *authrepo.UserRepo, username, email, pwd string) error {
	hashed, err := password.Hash(pwd)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &auth.User{
		ID:       id.New(),
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     auth.RoleAdmin,
		Status:   auth.UserStatusActive,
		Profile: &auth.UserProfile{
			Nickname: "管理员",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	return repo.Create(ctx, user)
}
