// Package chat provides the interactive ticket chat command.
package chat

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	appchat "chamado/internal/application/chat"
	"chamado/internal/domain/ticket"
	ticketvo "chamado/internal/domain/ticket/valueobjects"
	"chamado/internal/interfaces/cli/app"
	apperrors "chamado/internal/shared/errors"
)

func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat <ticket-id>",
		Short: "Open the chat of a ticket",
		Long:  "Streams the ticket's messages and sends typed lines. /quit exits.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Bootstrap()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Resume(cmd.Context()); err != nil {
				return err
			}

			ticketID := args[0]
			out := cmd.OutOrStdout()

			controller := appchat.NewController(ticketID, a.Tickets, a.Session, a.Logger)
			err = controller.Open(
				func(messages []*ticket.Message) {
					printMessages(cmd, messages)
				},
				func(status ticketvo.Status, known bool) {
					if known && status.IsClosed() {
						fmt.Fprintln(out, "-- chamado encerrado --")
					}
				},
			)
			if err != nil {
				return err
			}
			defer controller.Close()

			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "/quit" {
					return nil
				}

				if err := controller.SendMessage(cmd.Context(), line); err != nil {
					if apperrors.IsTicketClosedError(err) {
						fmt.Fprintln(out, "Este chamado está encerrado. Não é possível enviar mensagens.")
						continue
					}
					return err
				}
			}
			return scanner.Err()
		},
	}
}

func printMessages(cmd *cobra.Command, messages []*ticket.Message) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "----")
	for _, m := range messages {
		fmt.Fprintf(out, "[%s] %s: %s\n", m.CreatedAt().Format("15:04"), m.AuthorName(), m.Text())
	}
}
