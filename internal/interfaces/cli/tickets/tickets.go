// Package tickets provides the ticket list commands.
package tickets

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	ticketUsecases "chamado/internal/application/ticket/usecases"
	"chamado/internal/domain/ticket"
	"chamado/internal/interfaces/cli/app"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "List and create tickets",
	}

	cmd.AddCommand(newListCommand(), newNewCommand())
	return cmd
}

func newListCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show open tickets, most recently active first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Bootstrap()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Resume(cmd.Context()); err != nil {
				return err
			}

			first := make(chan struct{})
			var once sync.Once

			subscribe := ticketUsecases.NewSubscribeTicketListUseCase(a.Tickets, a.Logger)
			unsubscribe, err := subscribe.Execute(func(tickets []*ticket.Ticket) {
				printTickets(cmd, tickets)
				once.Do(func() { close(first) })
			})
			if err != nil {
				return err
			}
			defer unsubscribe()

			if watch {
				<-cmd.Context().Done()
				return nil
			}

			<-first
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep streaming updates until interrupted")
	return cmd
}

func newNewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "new <title>",
		Short: "Open a new ticket",
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

			create := ticketUsecases.NewCreateTicketUseCase(a.Tickets, a.Session, a.Logger)
			result, err := create.Execute(cmd.Context(), ticketUsecases.CreateTicketCommand{
				Title: args[0],
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Chamado criado: %s\n", result.TicketID)
			return nil
		},
	}
}

func printTickets(cmd *cobra.Command, tickets []*ticket.Ticket) {
	out := cmd.OutOrStdout()
	if len(tickets) == 0 {
		fmt.Fprintln(out, "Nenhum chamado.")
		return
	}
	for _, t := range tickets {
		preview := t.LastMessage()
		if preview == "" {
			preview = "(sem mensagens)"
		}
		fmt.Fprintf(out, "%s  [%s]  %s | %s\n", t.ID(), t.Status(), t.Title(), preview)
	}
}
