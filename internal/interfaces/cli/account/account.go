// Package account provides the authentication commands: login, signup,
// password reset and logout.
package account

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	sessionUsecases "chamado/internal/application/session/usecases"
	"chamado/internal/interfaces/cli/app"
)

func NewLoginCommand() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Bootstrap()
			if err != nil {
				return err
			}
			defer a.Close()

			password, err := promptPassword("Senha: ")
			if err != nil {
				return err
			}

			signIn := sessionUsecases.NewSignInUseCase(a.Auth, a.Users, a.Session, a.Logger)
			result, err := signIn.Execute(cmd.Context(), sessionUsecases.SignInCommand{
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}

			if err := a.SaveToken(result.Token); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logado como %s (%s)\n", result.Identity.DisplayName, result.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func NewSignupCommand() *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Bootstrap()
			if err != nil {
				return err
			}
			defer a.Close()

			password, err := promptPassword("Senha: ")
			if err != nil {
				return err
			}

			signUp := sessionUsecases.NewSignUpUseCase(a.Auth, a.Users, a.Logger)
			result, err := signUp.Execute(cmd.Context(), sessionUsecases.SignUpCommand{
				Name:     name,
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Usuário criado: %s\n", result.Identity.UID)
			fmt.Fprintln(cmd.OutOrStdout(), "Aguarde a atribuição de uma função para poder entrar.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func NewResetCommand() *cobra.Command {
	var confirmToken string

	cmd := &cobra.Command{
		Use:   "reset [email]",
		Short: "Request or confirm a password reset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Bootstrap()
			if err != nil {
				return err
			}
			defer a.Close()

			if confirmToken != "" {
				password, err := promptPassword("Nova senha: ")
				if err != nil {
					return err
				}
				if err := a.LocalAuth.ConfirmReset(cmd.Context(), confirmToken, password); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Senha redefinida.")
				return nil
			}

			if len(args) != 1 {
				return fmt.Errorf("an email argument is required to request a reset")
			}

			request := sessionUsecases.NewRequestPasswordResetUseCase(a.Auth, a.Logger)
			err = request.Execute(cmd.Context(), sessionUsecases.RequestPasswordResetCommand{
				Email: args[0],
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Instruções enviadas para seu e-mail.")
			return nil
		},
	}

	cmd.Flags().StringVar(&confirmToken, "confirm", "", "apply a reset token received by email")
	return cmd
}

func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Bootstrap()
			if err != nil {
				return err
			}
			defer a.Close()

			signOut := sessionUsecases.NewSignOutUseCase(a.Auth, a.Session, a.Logger)
			if err := signOut.Execute(cmd.Context()); err != nil {
				return err
			}
			a.ClearToken()

			fmt.Fprintln(cmd.OutOrStdout(), "Sessão encerrada.")
			return nil
		},
	}
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	data, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
