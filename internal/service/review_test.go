package service

import (
	"context"
	"testing"

	"github.com/spec-kit/helpdesk-console/internal/domain"
	"github.com/spec-kit/helpdesk-console/internal/upstream"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util"
)

func newReviewService(tickets *fakeTicketAPI, subTickets *fakeSubTicketAPI, recorder *fakeRecorder) *ReviewService {
	deps := ReviewDependencies{TicketAPI: tickets, SubTicketAPI: subTickets}
	if recorder != nil {
		deps.AuditLog = recorder
	}
	return NewReviewService(deps)
}

func TestDenyTicketEmptyReasonNoUpstreamCall(t *testing.T) {
	tickets := newFakeTicketAPI(&domain.Ticket{ID: "t1", Status: domain.TicketStatusOpen})
	review := newReviewService(tickets, newFakeSubTicketAPI(), nil)

	for _, reason := range []string{"", "   ", "\t\n"} {
		err := review.DenyTicket(context.Background(), adminActor(), "t1", reason)
		if err == nil {
			t.Fatalf("DenyTicket(%q) expected error", reason)
		}
		if apperrors.ToDomainError(err).Code != "VALIDATION_FAILED" {
			t.Errorf("DenyTicket(%q) code = %s, want VALIDATION_FAILED", reason, apperrors.ToDomainError(err).Code)
		}
	}
	if len(tickets.calls) != 0 {
		t.Errorf("blank reason must be rejected before any upstream call, got calls %v", tickets.calls)
	}
}

func TestResolveTicketEmptyNoteNoUpstreamCall(t *testing.T) {
	tickets := newFakeTicketAPI(&domain.Ticket{ID: "t1", Status: domain.TicketStatusInProgress})
	review := newReviewService(tickets, newFakeSubTicketAPI(), nil)

	if err := review.ResolveTicket(context.Background(), adminActor(), "t1", "  "); err == nil {
		t.Fatal("expected error for blank resolution note")
	}
	if len(tickets.calls) != 0 {
		t.Errorf("blank note must be rejected before any upstream call, got calls %v", tickets.calls)
	}
}

func TestDenyTicket(t *testing.T) {
	recorder := &fakeRecorder{}
	tickets := newFakeTicketAPI(&domain.Ticket{ID: "t1", Status: domain.TicketStatusOpen})
	review := newReviewService(tickets, newFakeSubTicketAPI(), recorder)

	if err := review.DenyTicket(context.Background(), adminActor(), "t1", "  duplicate report  "); err != nil {
		t.Fatalf("DenyTicket() error = %v", err)
	}
	if tickets.denied["t1"] != "duplicate report" {
		t.Errorf("reason = %q, want trimmed %q", tickets.denied["t1"], "duplicate report")
	}
	if len(recorder.entries) != 1 {
		t.Fatalf("got %d audit entries, want 1", len(recorder.entries))
	}
	entry := recorder.entries[0]
	if entry.Action != "deny" || entry.TargetID != "t1" {
		t.Errorf("audit entry = %s on %s, want deny on t1", entry.Action, entry.TargetID)
	}
}

func TestDenyTicketTerminalStatusConflict(t *testing.T) {
	tickets := newFakeTicketAPI(&domain.Ticket{ID: "t1", Status: domain.TicketStatusResolved})
	review := newReviewService(tickets, newFakeSubTicketAPI(), nil)

	err := review.DenyTicket(context.Background(), adminActor(), "t1", "too late")
	if err == nil {
		t.Fatal("expected conflict")
	}
	if apperrors.ToDomainError(err).Code != "CONFLICT" {
		t.Errorf("code = %s, want CONFLICT", apperrors.ToDomainError(err).Code)
	}
	if _, called := tickets.denied["t1"]; called {
		t.Error("deny must not reach upstream for a terminal ticket")
	}
}

func TestAcceptTicketRequiresAssigned(t *testing.T) {
	tests := []struct {
		status  domain.TicketStatus
		wantErr bool
	}{
		{domain.TicketStatusAssigned, false},
		{domain.TicketStatusOpen, true},
		{domain.TicketStatusInProgress, true},
		{domain.TicketStatusResolved, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			tickets := newFakeTicketAPI(&domain.Ticket{ID: "t1", Status: tt.status, AssigneeID: ptr("s1")})
			review := newReviewService(tickets, newFakeSubTicketAPI(), nil)

			err := review.AcceptTicket(context.Background(), adminActor(), "t1")
			if (err != nil) != tt.wantErr {
				t.Errorf("AcceptTicket() from %s error = %v, wantErr %v", tt.status, err, tt.wantErr)
			}
		})
	}
}

func TestAssignTicket(t *testing.T) {
	singleCategory := []domain.TicketCategory{{CategoryID: "c1"}}

	t.Run("defaults priority to medium", func(t *testing.T) {
		tickets := newFakeTicketAPI(&domain.Ticket{ID: "t1", Status: domain.TicketStatusOpen, Categories: singleCategory})
		review := newReviewService(tickets, newFakeSubTicketAPI(), nil)

		if err := review.AssignTicket(context.Background(), adminActor(), "t1", "s1", ""); err != nil {
			t.Fatalf("AssignTicket() error = %v", err)
		}
		got := tickets.assigned["t1"]
		if got.Priority != domain.TicketPriorityMedium {
			t.Errorf("priority = %s, want medium", got.Priority)
		}
		if got.StaffID != "s1" {
			t.Errorf("staffId = %s, want s1", got.StaffID)
		}
	})

	t.Run("rejects unknown priority", func(t *testing.T) {
		tickets := newFakeTicketAPI(&domain.Ticket{ID: "t1", Status: domain.TicketStatusOpen, Categories: singleCategory})
		review := newReviewService(tickets, newFakeSubTicketAPI(), nil)

		if err := review.AssignTicket(context.Background(), adminActor(), "t1", "s1", "urgent"); err == nil {
			t.Error("expected error for unknown priority")
		}
	})

	t.Run("rejects pending split ticket", func(t *testing.T) {
		tickets := newFakeTicketAPI(&domain.Ticket{
			ID:         "t1",
			Status:     domain.TicketStatusOpen,
			Categories: []domain.TicketCategory{{CategoryID: "c1"}, {CategoryID: "c2"}},
		})
		review := newReviewService(tickets, newFakeSubTicketAPI(), nil)

		err := review.AssignTicket(context.Background(), adminActor(), "t1", "s1", "high")
		if err == nil {
			t.Fatal("expected conflict for multi-category ticket")
		}
		if apperrors.ToDomainError(err).Code != "CONFLICT" {
			t.Errorf("code = %s, want CONFLICT", apperrors.ToDomainError(err).Code)
		}
	})

	t.Run("rejects already assigned ticket", func(t *testing.T) {
		tickets := newFakeTicketAPI(&domain.Ticket{
			ID:         "t1",
			Status:     domain.TicketStatusAssigned,
			AssigneeID: ptr("other"),
			Categories: singleCategory,
		})
		review := newReviewService(tickets, newFakeSubTicketAPI(), nil)

		if err := review.AssignTicket(context.Background(), adminActor(), "t1", "s1", "high"); err == nil {
			t.Error("expected conflict for assigned ticket")
		}
	})
}

func TestSubTicketActions(t *testing.T) {
	subTickets := newFakeSubTicketAPI(
		&domain.SubTicket{ID: "st1", Status: domain.SubTicketStatusAssigned},
		&domain.SubTicket{ID: "st2", Status: domain.SubTicketStatusInProgress},
		&domain.SubTicket{ID: "st3", Status: domain.SubTicketStatusEscalated},
	)
	review := newReviewService(newFakeTicketAPI(), subTickets, nil)
	ctx := context.Background()
	actor := staffActor("s1", nil)

	if err := review.AcceptSubTicket(ctx, actor, "st1"); err != nil {
		t.Errorf("AcceptSubTicket(assigned) error = %v", err)
	}
	if err := review.AcceptSubTicket(ctx, actor, "st2"); err == nil {
		t.Error("AcceptSubTicket(in_progress) expected error")
	}
	if err := review.ResolveSubTicket(ctx, actor, "st2", "done"); err != nil {
		t.Errorf("ResolveSubTicket(in_progress) error = %v", err)
	}
	if err := review.ResolveSubTicket(ctx, actor, "st3", "done after escalation"); err != nil {
		t.Errorf("ResolveSubTicket(escalated) error = %v", err)
	}
	if err := review.DenySubTicket(ctx, actor, "st1", "wrong queue"); err != nil {
		t.Errorf("DenySubTicket(assigned) error = %v", err)
	}
}

var _ upstream.TicketAPI = (*fakeTicketAPI)(nil)
var _ upstream.SubTicketAPI = (*fakeSubTicketAPI)(nil)
var _ upstream.ReassignAPI = (*fakeReassignAPI)(nil)
var _ upstream.DirectoryAPI = (*fakeDirectoryAPI)(nil)
