package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/stolasapp/courseware/internal/sec"
	"github.com/stolasapp/courseware/internal/storage"
	"github.com/stolasapp/courseware/internal/storage/db"
	"github.com/stolasapp/courseware/internal/validate"
)

func userCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User commands",
	}
	cmd.AddCommand(
		userCreateCommand(),
	)
	return cmd
}

func userCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create EMAIL",
		Short: "Create user",
		Long: "Registers a user with the provided email address. Names and the password\n" +
			"may be provided via stdin or through the interactive prompt.",

		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (runErr error) {
			_, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			email := args[0]
			firstName, err := prompt("first name: ", false)
			if err != nil {
				return err
			}
			lastName, err := prompt("last name: ", false)
			if err != nil {
				return err
			}
			passwd, err := prompt("password: ", true)
			if err != nil {
				return err
			}

			user, err := registerUser(cmd.Context(), store, registration{
				FirstName: string(firstName),
				LastName:  string(lastName),
				Email:     email,
				Password:  string(passwd),
			})
			if err != nil {
				return err
			}

			logger.InfoContext(cmd.Context(), "created user",
				slog.Int64("id", user.ID),
				slog.String("email", user.EmailAddress),
			)
			return nil
		},
	}
}

type registration struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// registerUser applies the same checks as registration over the API.
func registerUser(ctx context.Context, users storage.Users, reg registration) (db.User, error) {
	if err := validate.Registration(reg.FirstName, reg.LastName, reg.Email, reg.Password).Err(); err != nil {
		return db.User{}, err
	}

	hash, err := sec.HashPassword(reg.Password)
	if err != nil {
		return db.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := users.CreateUser(ctx, db.User{
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		EmailAddress: reg.Email,
		PasswordHash: hash,
	})
	if errors.Is(err, storage.ErrAlreadyExists) {
		return db.User{}, fmt.Errorf("user %q: %w", reg.Email, err)
	}
	return user, err
}
