package service

import (
	"context"
	"testing"

	"github.com/spec-kit/helpdesk-console/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util"
)

func multiCategoryTicket(categoryIDs ...string) *domain.Ticket {
	categories := make([]domain.TicketCategory, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		categories = append(categories, domain.TicketCategory{CategoryID: id})
	}
	return &domain.Ticket{ID: "t1", Status: domain.TicketStatusOpen, Categories: categories}
}

func TestBuildSplitsOnePerCategory(t *testing.T) {
	ticket := multiCategoryTicket("a", "b", "c")

	splits, err := BuildSplits(ticket, nil)
	if err != nil {
		t.Fatalf("BuildSplits() error = %v", err)
	}
	if len(splits) != 3 {
		t.Fatalf("got %d splits, want 3", len(splits))
	}
	wantCategories := []string{"a", "b", "c"}
	for i, split := range splits {
		if len(split.CategoryIDs) != 1 {
			t.Errorf("split %d carries %d categories, want exactly 1", i, len(split.CategoryIDs))
		}
		if split.CategoryIDs[0] != wantCategories[i] {
			t.Errorf("split %d category = %s, want %s", i, split.CategoryIDs[0], wantCategories[i])
		}
		if split.Priority != domain.TicketPriorityMedium {
			t.Errorf("split %d priority = %s, want default medium", i, split.Priority)
		}
		if split.StaffID != nil {
			t.Errorf("split %d has staff %s, want none", i, *split.StaffID)
		}
	}
}

func TestBuildSplitsAppliesSelections(t *testing.T) {
	ticket := multiCategoryTicket("a", "b")

	splits, err := BuildSplits(ticket, []SplitSelection{
		{CategoryID: "b", Priority: domain.TicketPriorityCritical, StaffID: " s1 "},
	})
	if err != nil {
		t.Fatalf("BuildSplits() error = %v", err)
	}
	if splits[0].Priority != domain.TicketPriorityMedium {
		t.Errorf("unselected category priority = %s, want medium", splits[0].Priority)
	}
	if splits[1].Priority != domain.TicketPriorityCritical {
		t.Errorf("selected category priority = %s, want critical", splits[1].Priority)
	}
	if splits[1].StaffID == nil || *splits[1].StaffID != "s1" {
		t.Errorf("selected category staff = %v, want trimmed s1", splits[1].StaffID)
	}
}

func TestBuildSplitsRejections(t *testing.T) {
	tests := []struct {
		name       string
		ticket     *domain.Ticket
		selections []SplitSelection
	}{
		{
			name:   "single category ticket",
			ticket: multiCategoryTicket("a"),
		},
		{
			name:   "duplicate selection",
			ticket: multiCategoryTicket("a", "b"),
			selections: []SplitSelection{
				{CategoryID: "a"},
				{CategoryID: "a", Priority: domain.TicketPriorityHigh},
			},
		},
		{
			name:       "selection for foreign category",
			ticket:     multiCategoryTicket("a", "b"),
			selections: []SplitSelection{{CategoryID: "z"}},
		},
		{
			name:       "unknown priority",
			ticket:     multiCategoryTicket("a", "b"),
			selections: []SplitSelection{{CategoryID: "a", Priority: "urgent"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildSplits(tt.ticket, tt.selections); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSplitGuardsStatus(t *testing.T) {
	ticket := multiCategoryTicket("a", "b")
	ticket.Status = domain.TicketStatusInProgress
	tickets := newFakeTicketAPI(ticket)
	service := NewSplitService(SplitDependencies{TicketAPI: tickets, DirectoryAPI: &fakeDirectoryAPI{}})

	err := service.Split(context.Background(), adminActor(), "t1", nil)
	if err == nil {
		t.Fatal("expected conflict")
	}
	if apperrors.ToDomainError(err).Code != "CONFLICT" {
		t.Errorf("code = %s, want CONFLICT", apperrors.ToDomainError(err).Code)
	}
	if _, called := tickets.splits["t1"]; called {
		t.Error("split must not reach upstream when the guard fails")
	}
}

func TestSplitSubmitsUpstream(t *testing.T) {
	tickets := newFakeTicketAPI(multiCategoryTicket("a", "b", "c"))
	service := NewSplitService(SplitDependencies{TicketAPI: tickets, DirectoryAPI: &fakeDirectoryAPI{}})

	err := service.Split(context.Background(), adminActor(), "t1", []SplitSelection{
		{CategoryID: "a", Priority: domain.TicketPriorityHigh},
	})
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	submitted := tickets.splits["t1"]
	if len(submitted) != 3 {
		t.Fatalf("submitted %d splits, want 3", len(submitted))
	}
	if submitted[0].Priority != domain.TicketPriorityHigh {
		t.Errorf("first split priority = %s, want high", submitted[0].Priority)
	}
}

func TestPlanBuildsPerCategoryPickers(t *testing.T) {
	ticket := &domain.Ticket{
		ID:     "t1",
		Status: domain.TicketStatusOpen,
		Categories: []domain.TicketCategory{
			{CategoryID: "c-wifi"},
			{CategoryID: "c-unknown"},
		},
	}
	service := NewSplitService(SplitDependencies{TicketAPI: newFakeTicketAPI(ticket), DirectoryAPI: departmentStaff()})

	plan, err := service.Plan(context.Background(), "t1")
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(plan.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(plan.Entries))
	}

	wifi := plan.Entries[0]
	if !wifi.Filtered {
		t.Error("c-wifi resolves to d-net, picker should be filtered")
	}
	for _, member := range wifi.Staff {
		if !member.InDepartment("d-net") {
			t.Errorf("staff %s outside d-net offered for c-wifi", member.ID)
		}
	}

	unknown := plan.Entries[1]
	if unknown.Filtered {
		t.Error("unresolvable category should fail open")
	}
	if len(unknown.Staff) != 3 {
		t.Errorf("fail-open picker has %d staff, want all 3", len(unknown.Staff))
	}
}

func TestPlanRejectsSingleCategory(t *testing.T) {
	service := NewSplitService(SplitDependencies{TicketAPI: newFakeTicketAPI(multiCategoryTicket("a")), DirectoryAPI: &fakeDirectoryAPI{}})

	if _, err := service.Plan(context.Background(), "t1"); err == nil {
		t.Error("expected conflict for single-category ticket")
	}
}
