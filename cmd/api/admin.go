package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/internal/service"
)

func newAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Account administration",
	}

	var name, email string
	create := &cobra.Command{
		Use:   "create",
		Short: "Provision an admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readPassword(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			deps, cleanup, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			users := repository.NewUserRepository(deps.pg.PoolHandle())
			authService := service.NewAuthService(deps.cfg.Auth, service.AuthDependencies{
				UserRepo: users,
				Hasher:   auth.NewPasswordHasher(deps.cfg.Auth.BcryptCost),
				Logger:   deps.logger,
			})
			user, err := authService.CreateAdmin(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			deps.logger.Info("admin created", zap.Int64("user_id", user.ID), zap.String("email", user.Email))
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %d <%s>\n", user.ID, user.Email)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "display name")
	create.Flags().StringVar(&email, "email", "", "login email")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("email")

	cmd.AddCommand(create)
	return cmd
}

// readPassword prompts without echo on a terminal and reads one line otherwise.
func readPassword(prompt io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(prompt, "Password: ")
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
