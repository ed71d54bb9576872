package service

import (
	"context"
	"strings"

	"github.com/spec-kit/helpdesk-console/internal/audit"
	"github.com/spec-kit/helpdesk-console/internal/domain"
	"github.com/spec-kit/helpdesk-console/internal/events"
	"github.com/spec-kit/helpdesk-console/internal/upstream"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util"
)

// SplitService converts a multi-category ticket into per-category
// sub-tickets. The gateway is stateless around the operation: a rejected
// split leaves the parent unsplit and the caller may retry with the same
// selections.
type SplitService struct {
	tickets    upstream.TicketAPI
	directory  upstream.DirectoryAPI
	auditLog   audit.Recorder
	dispatcher events.Dispatcher
}

// SplitDependencies bundles collaborators.
type SplitDependencies struct {
	TicketAPI    upstream.TicketAPI
	DirectoryAPI upstream.DirectoryAPI
	AuditLog     audit.Recorder
	Dispatcher   events.Dispatcher
}

// NewSplitService constructs the service.
func NewSplitService(deps SplitDependencies) *SplitService {
	return &SplitService{
		tickets:    deps.TicketAPI,
		directory:  deps.DirectoryAPI,
		auditLog:   deps.AuditLog,
		dispatcher: deps.Dispatcher,
	}
}

// SplitSelection is the admin's per-category choice: a priority and an
// optional pre-assigned staff member.
type SplitSelection struct {
	CategoryID string
	Priority   domain.TicketPriority
	StaffID    string
}

// PlanEntry is one category of the split modal: the category plus the staff
// options scoped to its department (unfiltered when the category has none).
type PlanEntry struct {
	CategoryID   string           `json:"categoryId"`
	Category     *domain.Category `json:"category,omitempty"`
	DepartmentID *string          `json:"departmentId,omitempty"`
	Staff        []domain.User    `json:"staff"`
	Filtered     bool             `json:"filtered"`
}

// SplitPlan is the data backing the category-split modal.
type SplitPlan struct {
	Ticket  *domain.Ticket `json:"ticket"`
	Entries []PlanEntry    `json:"entries"`
}

// Plan loads the split modal data for a pending-split ticket.
func (s *SplitService) Plan(ctx context.Context, ticketID string) (*SplitPlan, error) {
	ticket, err := s.tickets.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !ticket.PendingSplit() {
		return nil, apperrors.NewConflict("ticket has fewer than two categories; nothing to split", nil)
	}

	staff, err := s.directory.ListStaff(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]PlanEntry, 0, len(ticket.Categories))
	for _, association := range ticket.Categories {
		entry := PlanEntry{CategoryID: association.CategoryID, Category: association.Category}
		departmentID := s.categoryDepartment(ctx, association)
		if departmentID == nil {
			entry.Staff = staff
		} else {
			entry.DepartmentID = departmentID
			entry.Filtered = true
			for _, member := range staff {
				if member.InDepartment(*departmentID) {
					entry.Staff = append(entry.Staff, member)
				}
			}
		}
		entries = append(entries, entry)
	}
	return &SplitPlan{Ticket: ticket, Entries: entries}, nil
}

// BuildSplits turns the ticket's categories plus the admin's selections into
// the upstream payload: exactly one split per original category, each naming
// a single category id, defaulting to medium priority. Selections for
// categories the ticket does not carry are rejected.
func BuildSplits(ticket *domain.Ticket, selections []SplitSelection) ([]upstream.SplitInput, error) {
	if !ticket.PendingSplit() {
		return nil, apperrors.NewConflict("ticket has fewer than two categories; nothing to split", nil)
	}

	byCategory := make(map[string]SplitSelection, len(selections))
	for _, selection := range selections {
		if _, dup := byCategory[selection.CategoryID]; dup {
			return nil, apperrors.NewValidationError("duplicate selection for category", map[string]any{"categoryId": selection.CategoryID})
		}
		byCategory[selection.CategoryID] = selection
	}

	splits := make([]upstream.SplitInput, 0, len(ticket.Categories))
	for _, association := range ticket.Categories {
		split := upstream.SplitInput{
			CategoryIDs: []string{association.CategoryID},
			Priority:    domain.TicketPriorityMedium,
		}
		if selection, ok := byCategory[association.CategoryID]; ok {
			if selection.Priority != "" {
				if selection.Priority.Rank() == 0 {
					return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": selection.Priority})
				}
				split.Priority = selection.Priority
			}
			if staffID := strings.TrimSpace(selection.StaffID); staffID != "" {
				split.StaffID = &staffID
			}
			delete(byCategory, association.CategoryID)
		}
		splits = append(splits, split)
	}
	for categoryID := range byCategory {
		return nil, apperrors.NewValidationError("selection references a category the ticket does not have", map[string]any{"categoryId": categoryID})
	}
	return splits, nil
}

// Split submits the category split as a single upstream request.
func (s *SplitService) Split(ctx context.Context, actor *domain.User, ticketID string, selections []SplitSelection) error {
	ticket, err := s.tickets.GetTicket(ctx, ticketID)
	if err != nil {
		return err
	}
	if !ticket.CanSplit() {
		return apperrors.NewConflict("ticket cannot be split in current status", statusDetail(string(ticket.Status)))
	}
	splits, err := BuildSplits(ticket, selections)
	if err != nil {
		return err
	}
	if err := s.tickets.SplitCategories(ctx, ticketID, splits); err != nil {
		return err
	}

	categoryIDs := make([]string, 0, len(splits))
	for _, split := range splits {
		categoryIDs = append(categoryIDs, split.CategoryIDs[0])
	}
	if s.auditLog != nil {
		_ = s.auditLog.Record(ctx, &audit.Entry{
			ActorID:    actor.ID,
			ActorRole:  actor.Role,
			Action:     string(domain.ActionSplit),
			TargetKind: string(events.TargetTicket),
			TargetID:   ticketID,
			OldValue:   map[string]any{"categories": len(ticket.Categories)},
			NewValue:   map[string]any{"sub_tickets": len(splits)},
		})
	}
	publishEvent(ctx, s.dispatcher, actor, events.EventTicketSplit, events.TargetTicket, ticketID, events.TicketSplitPayload{
		CategoryIDs: categoryIDs,
		SplitCount:  len(splits),
	})
	return nil
}

func (s *SplitService) categoryDepartment(ctx context.Context, association domain.TicketCategory) *string {
	if association.Category != nil && association.Category.DepartmentID != nil {
		return association.Category.DepartmentID
	}
	if association.CategoryID == "" {
		return nil
	}
	category, err := s.directory.GetCategory(ctx, association.CategoryID)
	if err != nil {
		return nil
	}
	return category.DepartmentID
}
