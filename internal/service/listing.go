package service

import (
	"context"
	"sort"
	"time"

	"github.com/spec-kit/helpdesk-console/internal/domain"
	"github.com/spec-kit/helpdesk-console/internal/upstream"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util"
)

// Tab selects one of the console list views.
type Tab string

const (
	TabAll               Tab = "all"
	TabStatus            Tab = "status"
	TabPendingSplit      Tab = "pending-split"
	TabWaitingAcceptance Tab = "waiting-acceptance"
	TabOverdue           Tab = "overdue"
)

// SortOrder toggles the priority sort direction.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// ListQuery captures the view selection for a ticket listing.
type ListQuery struct {
	Tab            Tab
	Status         domain.TicketStatus
	SortByPriority bool
	Order          SortOrder
}

// TicketRow decorates a ticket with the actions the view may offer for it.
type TicketRow struct {
	domain.Ticket
	Actions   []domain.Action `json:"actions"`
	IsOverdue bool            `json:"overdue"`
}

// SubTicketRow decorates a sub-ticket for the staff queue view.
type SubTicketRow struct {
	domain.SubTicket
	Actions   []domain.Action `json:"actions"`
	IsOverdue bool            `json:"overdue"`
}

// ListingService loads filtered ticket and sub-ticket collections. Every
// load is a fresh upstream fetch; nothing authoritative is kept locally.
type ListingService struct {
	tickets    upstream.TicketAPI
	subTickets upstream.SubTicketAPI
}

// ListingDependencies bundles upstream access for the listing service.
type ListingDependencies struct {
	TicketAPI    upstream.TicketAPI
	SubTicketAPI upstream.SubTicketAPI
}

// NewListingService constructs the service.
func NewListingService(deps ListingDependencies) *ListingService {
	return &ListingService{
		tickets:    deps.TicketAPI,
		subTickets: deps.SubTicketAPI,
	}
}

// ListTickets fetches one tab of the admin ticket view. Status filtering is
// pushed upstream where the contract supports it; the pending-split,
// waiting-acceptance, and overdue tabs are derived client-side from the
// fetched snapshot.
func (s *ListingService) ListTickets(ctx context.Context, query ListQuery) ([]TicketRow, error) {
	upstreamQuery := upstream.TicketQuery{}
	if query.Tab == TabStatus {
		if query.Status == "" {
			return nil, apperrors.NewValidationError("status required for status tab", nil)
		}
		upstreamQuery.Status = string(query.Status)
	}

	tickets, err := s.tickets.ListTickets(ctx, upstreamQuery)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rows := make([]TicketRow, 0, len(tickets))
	for i := range tickets {
		ticket := tickets[i]
		if !matchesTab(&ticket, query.Tab, now) {
			continue
		}
		rows = append(rows, TicketRow{
			Ticket:    ticket,
			Actions:   ticket.EligibleActions(),
			IsOverdue: ticket.Overdue(now),
		})
	}

	if query.SortByPriority {
		sortTicketRows(rows, query.Order)
	}
	return rows, nil
}

// ListQueue fetches the caller's sub-ticket queue. The staff view re-polls
// this endpoint on a timer; each call is independent.
func (s *ListingService) ListQueue(ctx context.Context, query ListQuery) ([]SubTicketRow, error) {
	subTickets, err := s.subTickets.ListAssignedSubTickets(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rows := make([]SubTicketRow, 0, len(subTickets))
	for i := range subTickets {
		subTicket := subTickets[i]
		rows = append(rows, SubTicketRow{
			SubTicket: subTicket,
			Actions:   subTicket.EligibleActions(),
			IsOverdue: subTicket.Overdue(now),
		})
	}

	if query.SortByPriority {
		sortSubTicketRows(rows, query.Order)
	}
	return rows, nil
}

func matchesTab(t *domain.Ticket, tab Tab, now time.Time) bool {
	switch tab {
	case TabPendingSplit:
		return t.PendingSplit() && t.CanSplit()
	case TabWaitingAcceptance:
		return t.WaitingAcceptance()
	case TabOverdue:
		return t.Overdue(now)
	default:
		return true
	}
}

// Sorting is stable: rows with equal priority rank keep the order the
// backend returned them in, so toggling asc/desc reverses groups but not
// ties.
func sortTicketRows(rows []TicketRow, order SortOrder) {
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rows[i].Priority.Rank(), rows[j].Priority.Rank()
		if order == SortDescending {
			return ri > rj
		}
		return ri < rj
	})
}

func sortSubTicketRows(rows []SubTicketRow, order SortOrder) {
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rows[i].Priority.Rank(), rows[j].Priority.Rank()
		if order == SortDescending {
			return ri > rj
		}
		return ri < rj
	})
}
