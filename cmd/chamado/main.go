package main

import (
	"os"

	"github.com/spf13/cobra"

	"chamado/internal/interfaces/cli/account"
	"chamado/internal/interfaces/cli/chat"
	"chamado/internal/interfaces/cli/profile"
	"chamado/internal/interfaces/cli/tickets"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chamado",
		Short: "Chamado - support ticket chat",
		Long:  `Chamado is a support ticket chat client: sign in, list open tickets, exchange messages in real time and edit your profile.`,
	}

	rootCmd.AddCommand(
		account.NewLoginCommand(),
		account.NewSignupCommand(),
		account.NewResetCommand(),
		account.NewLogoutCommand(),
		tickets.NewCommand(),
		chat.NewCommand(),
		profile.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
