package usecases

import (
	"chamado/internal/domain/ticket"
	"chamado/internal/shared/logger"
)

// SubscribeTicketListUseCase delivers the full ticket collection on every
// change notification, rebuilt and sorted most recently active first.
type SubscribeTicketListUseCase struct {
	tickets ticket.Repository
	logger  logger.Interface
}

func NewSubscribeTicketListUseCase(tickets ticket.Repository, log logger.Interface) *SubscribeTicketListUseCase {
	return &SubscribeTicketListUseCase{
		tickets: tickets,
		logger:  log,
	}
}

// Execute registers the continuous subscription and returns its cancel
// func. The subscription stays active until canceled; the consuming view
// must cancel it on teardown.
func (uc *SubscribeTicketListUseCase) Execute(fn ticket.ListSnapshotFunc) (func(), error) {
	unsubscribe, err := uc.tickets.SubscribeList(func(tickets []*ticket.Ticket) {
		ticket.SortByActivity(tickets)
		fn(tickets)
	})
	if err != nil {
		uc.logger.Errorw("failed to subscribe to ticket list", "error", err)
		return nil, err
	}
	return unsubscribe, nil
}
