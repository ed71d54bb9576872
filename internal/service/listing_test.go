package service

import (
	"context"
	"testing"
	"time"

	"github.com/spec-kit/helpdesk-console/internal/domain"
)

func ticketWithPriority(id string, priority domain.TicketPriority) *domain.Ticket {
	return &domain.Ticket{
		ID:       id,
		Status:   domain.TicketStatusOpen,
		Priority: priority,
		Categories: []domain.TicketCategory{
			{CategoryID: "c1"},
		},
	}
}

func TestListTicketsPrioritySort(t *testing.T) {
	tickets := newFakeTicketAPI(
		ticketWithPriority("t-low", domain.TicketPriorityLow),
		ticketWithPriority("t-critical", domain.TicketPriorityCritical),
		ticketWithPriority("t-medium", domain.TicketPriorityMedium),
		ticketWithPriority("t-high", domain.TicketPriorityHigh),
	)
	listing := NewListingService(ListingDependencies{TicketAPI: tickets, SubTicketAPI: newFakeSubTicketAPI()})

	tests := []struct {
		name  string
		order SortOrder
		want  []string
	}{
		{"ascending", SortAscending, []string{"t-low", "t-medium", "t-high", "t-critical"}},
		{"descending", SortDescending, []string{"t-critical", "t-high", "t-medium", "t-low"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := listing.ListTickets(context.Background(), ListQuery{
				Tab:            TabAll,
				SortByPriority: true,
				Order:          tt.order,
			})
			if err != nil {
				t.Fatalf("ListTickets() error = %v", err)
			}
			if len(rows) != len(tt.want) {
				t.Fatalf("got %d rows, want %d", len(rows), len(tt.want))
			}
			for i, id := range tt.want {
				if rows[i].ID != id {
					t.Errorf("row %d = %s, want %s", i, rows[i].ID, id)
				}
			}
		})
	}
}

func TestListTicketsUnknownPriorityRanksLowest(t *testing.T) {
	tickets := newFakeTicketAPI(
		ticketWithPriority("t-unknown", domain.TicketPriority("urgent")),
		ticketWithPriority("t-low", domain.TicketPriorityLow),
	)
	listing := NewListingService(ListingDependencies{TicketAPI: tickets, SubTicketAPI: newFakeSubTicketAPI()})

	rows, err := listing.ListTickets(context.Background(), ListQuery{
		Tab:            TabAll,
		SortByPriority: true,
		Order:          SortAscending,
	})
	if err != nil {
		t.Fatalf("ListTickets() error = %v", err)
	}
	if rows[0].ID != "t-unknown" {
		t.Errorf("unmapped priority should sort below low ascending, got %s first", rows[0].ID)
	}
}

func TestListTicketsSortStability(t *testing.T) {
	// equal ranks keep backend order in both directions
	tickets := newFakeTicketAPI(
		ticketWithPriority("first", domain.TicketPriorityMedium),
		ticketWithPriority("second", domain.TicketPriorityMedium),
		ticketWithPriority("third", domain.TicketPriorityMedium),
	)
	listing := NewListingService(ListingDependencies{TicketAPI: tickets, SubTicketAPI: newFakeSubTicketAPI()})

	for _, order := range []SortOrder{SortAscending, SortDescending} {
		rows, err := listing.ListTickets(context.Background(), ListQuery{
			Tab:            TabAll,
			SortByPriority: true,
			Order:          order,
		})
		if err != nil {
			t.Fatalf("ListTickets() error = %v", err)
		}
		want := []string{"first", "second", "third"}
		for i, id := range want {
			if rows[i].ID != id {
				t.Errorf("order %s: row %d = %s, want %s", order, i, rows[i].ID, id)
			}
		}
	}
}

func TestListTicketsNoSortKeepsBackendOrder(t *testing.T) {
	tickets := newFakeTicketAPI(
		ticketWithPriority("t-low", domain.TicketPriorityLow),
		ticketWithPriority("t-critical", domain.TicketPriorityCritical),
	)
	listing := NewListingService(ListingDependencies{TicketAPI: tickets, SubTicketAPI: newFakeSubTicketAPI()})

	rows, err := listing.ListTickets(context.Background(), ListQuery{Tab: TabAll})
	if err != nil {
		t.Fatalf("ListTickets() error = %v", err)
	}
	if rows[0].ID != "t-low" || rows[1].ID != "t-critical" {
		t.Errorf("unsorted listing reordered rows: %s, %s", rows[0].ID, rows[1].ID)
	}
}

func TestListTicketsStatusTabRequiresStatus(t *testing.T) {
	listing := NewListingService(ListingDependencies{TicketAPI: newFakeTicketAPI(), SubTicketAPI: newFakeSubTicketAPI()})

	if _, err := listing.ListTickets(context.Background(), ListQuery{Tab: TabStatus}); err == nil {
		t.Error("expected validation error for empty status")
	}
}

func TestListTicketsDerivedTabs(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)

	pendingSplit := &domain.Ticket{
		ID:     "t-split",
		Status: domain.TicketStatusOpen,
		Categories: []domain.TicketCategory{
			{CategoryID: "c1"}, {CategoryID: "c2"},
		},
	}
	waiting := &domain.Ticket{
		ID:         "t-waiting",
		Status:     domain.TicketStatusAssigned,
		AssigneeID: ptr("s1"),
		Categories: []domain.TicketCategory{{CategoryID: "c1"}},
	}
	overdue := &domain.Ticket{
		ID:         "t-overdue",
		Status:     domain.TicketStatusInProgress,
		DueDate:    &past,
		Categories: []domain.TicketCategory{{CategoryID: "c1"}},
	}

	tickets := newFakeTicketAPI(pendingSplit, waiting, overdue)
	listing := NewListingService(ListingDependencies{TicketAPI: tickets, SubTicketAPI: newFakeSubTicketAPI()})

	tests := []struct {
		tab  Tab
		want []string
	}{
		{TabPendingSplit, []string{"t-split"}},
		{TabWaitingAcceptance, []string{"t-waiting"}},
		{TabOverdue, []string{"t-overdue"}},
		{TabAll, []string{"t-split", "t-waiting", "t-overdue"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.tab), func(t *testing.T) {
			rows, err := listing.ListTickets(context.Background(), ListQuery{Tab: tt.tab})
			if err != nil {
				t.Fatalf("ListTickets() error = %v", err)
			}
			if len(rows) != len(tt.want) {
				t.Fatalf("got %d rows, want %d", len(rows), len(tt.want))
			}
			for i, id := range tt.want {
				if rows[i].ID != id {
					t.Errorf("row %d = %s, want %s", i, rows[i].ID, id)
				}
			}
		})
	}
}

func TestListQueueDecoratesRows(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)

	subTickets := newFakeSubTicketAPI(
		&domain.SubTicket{ID: "st1", Status: domain.SubTicketStatusAssigned, Priority: domain.TicketPriorityHigh},
		&domain.SubTicket{ID: "st2", Status: domain.SubTicketStatusInProgress, Priority: domain.TicketPriorityLow, DueDate: &past},
	)
	listing := NewListingService(ListingDependencies{TicketAPI: newFakeTicketAPI(), SubTicketAPI: subTickets})

	rows, err := listing.ListQueue(context.Background(), ListQuery{})
	if err != nil {
		t.Fatalf("ListQueue() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].IsOverdue {
		t.Error("st1 has no due date, should not be overdue")
	}
	if !rows[1].IsOverdue {
		t.Error("st2 passed its due date, should be overdue")
	}
	if len(rows[0].Actions) == 0 {
		t.Error("assigned sub-ticket should offer actions")
	}
}
