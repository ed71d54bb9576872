package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-console/internal/audit"
	"github.com/spec-kit/helpdesk-console/internal/domain"
	"github.com/spec-kit/helpdesk-console/internal/events"
	"github.com/spec-kit/helpdesk-console/internal/upstream"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util"
)

// ReviewService performs the accept/deny/resolve/assign actions. Each action
// is fire-and-forget: one guarded upstream call, no optimistic update, no
// rollback because nothing was applied locally.
type ReviewService struct {
	tickets    upstream.TicketAPI
	subTickets upstream.SubTicketAPI
	auditLog   audit.Recorder
	dispatcher events.Dispatcher
}

// ReviewDependencies bundles collaborators for the review service.
type ReviewDependencies struct {
	TicketAPI    upstream.TicketAPI
	SubTicketAPI upstream.SubTicketAPI
	AuditLog     audit.Recorder
	Dispatcher   events.Dispatcher
}

// NewReviewService constructs the service.
func NewReviewService(deps ReviewDependencies) *ReviewService {
	return &ReviewService{
		tickets:    deps.TicketAPI,
		subTickets: deps.SubTicketAPI,
		auditLog:   deps.AuditLog,
		dispatcher: deps.Dispatcher,
	}
}

// AcceptTicket accepts an assigned ticket. The backend performs the
// assigned -> in_progress transition; no body is sent.
func (s *ReviewService) AcceptTicket(ctx context.Context, actor *domain.User, ticketID string) error {
	ticket, err := s.tickets.GetTicket(ctx, ticketID)
	if err != nil {
		return err
	}
	if !ticket.CanAccept() {
		return apperrors.NewConflict("ticket cannot be accepted in current status", statusDetail(string(ticket.Status)))
	}
	if err := s.tickets.AcceptTicket(ctx, ticketID); err != nil {
		return err
	}
	s.recordAction(ctx, actor, domain.ActionAccept, events.TargetTicket, ticketID,
		string(ticket.Status), string(domain.TicketStatusInProgress), "")
	s.publish(ctx, actor, events.EventTicketAccepted, events.TargetTicket, ticketID, events.ReviewActionPayload{Action: domain.ActionAccept})
	return nil
}

// DenyTicket denies a ticket with a mandatory free-text reason. A blank
// reason is rejected before any upstream call.
func (s *ReviewService) DenyTicket(ctx context.Context, actor *domain.User, ticketID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return apperrors.NewValidationError("reason required", nil)
	}
	ticket, err := s.tickets.GetTicket(ctx, ticketID)
	if err != nil {
		return err
	}
	if !ticket.CanDeny() {
		return apperrors.NewConflict("ticket cannot be denied in current status", statusDetail(string(ticket.Status)))
	}
	if err := s.tickets.DenyTicket(ctx, ticketID, reason); err != nil {
		return err
	}
	s.recordAction(ctx, actor, domain.ActionDeny, events.TargetTicket, ticketID,
		string(ticket.Status), string(domain.TicketStatusDenied), reason)
	s.publish(ctx, actor, events.EventTicketDenied, events.TargetTicket, ticketID, events.ReviewActionPayload{Action: domain.ActionDeny, Note: reason})
	return nil
}

// ResolveTicket resolves a ticket with a mandatory resolution note.
func (s *ReviewService) ResolveTicket(ctx context.Context, actor *domain.User, ticketID, resolutionNote string) error {
	resolutionNote = strings.TrimSpace(resolutionNote)
	if resolutionNote == "" {
		return apperrors.NewValidationError("resolution note required", nil)
	}
	ticket, err := s.tickets.GetTicket(ctx, ticketID)
	if err != nil {
		return err
	}
	if !ticket.CanResolve() {
		return apperrors.NewConflict("ticket cannot be resolved in current status", statusDetail(string(ticket.Status)))
	}
	if err := s.tickets.ResolveTicket(ctx, ticketID, resolutionNote); err != nil {
		return err
	}
	s.recordAction(ctx, actor, domain.ActionResolve, events.TargetTicket, ticketID,
		string(ticket.Status), string(domain.TicketStatusResolved), resolutionNote)
	s.publish(ctx, actor, events.EventTicketResolved, events.TargetTicket, ticketID, events.ReviewActionPayload{Action: domain.ActionResolve, Note: resolutionNote})
	return nil
}

// AssignTicket assigns a single-category ticket directly to a staff member.
// Eligible only while the ticket has no assignee and exactly one category;
// multi-category tickets must be split instead.
func (s *ReviewService) AssignTicket(ctx context.Context, actor *domain.User, ticketID, staffID string, priority domain.TicketPriority) error {
	if strings.TrimSpace(staffID) == "" {
		return apperrors.NewValidationError("staffId required", nil)
	}
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	if priority.Rank() == 0 {
		return apperrors.NewValidationError("unknown priority", map[string]any{"priority": priority})
	}
	ticket, err := s.tickets.GetTicket(ctx, ticketID)
	if err != nil {
		return err
	}
	if !ticket.CanAssign() {
		if ticket.PendingSplit() {
			return apperrors.NewConflict("ticket is pending split; split categories before assigning", nil)
		}
		return apperrors.NewConflict("ticket already has an assignee", nil)
	}
	if err := s.tickets.AssignCategory(ctx, ticketID, upstream.AssignInput{StaffID: staffID, Priority: priority}); err != nil {
		return err
	}
	s.recordAction(ctx, actor, domain.ActionAssign, events.TargetTicket, ticketID,
		string(ticket.Status), string(domain.TicketStatusAssigned), "")
	s.publish(ctx, actor, events.EventTicketAssigned, events.TargetTicket, ticketID, events.ReviewActionPayload{Action: domain.ActionAssign})
	return nil
}

// AcceptSubTicket accepts an assigned sub-ticket.
func (s *ReviewService) AcceptSubTicket(ctx context.Context, actor *domain.User, subTicketID string) error {
	subTicket, err := s.subTickets.GetSubTicket(ctx, subTicketID)
	if err != nil {
		return err
	}
	if !subTicket.CanAccept() {
		return apperrors.NewConflict("sub-ticket cannot be accepted in current status", statusDetail(string(subTicket.Status)))
	}
	if err := s.subTickets.AcceptSubTicket(ctx, subTicketID); err != nil {
		return err
	}
	s.recordAction(ctx, actor, domain.ActionAccept, events.TargetSubTicket, subTicketID,
		string(subTicket.Status), string(domain.SubTicketStatusInProgress), "")
	s.publish(ctx, actor, events.EventTicketAccepted, events.TargetSubTicket, subTicketID, events.ReviewActionPayload{Action: domain.ActionAccept})
	return nil
}

// DenySubTicket denies a sub-ticket with a mandatory reason.
func (s *ReviewService) DenySubTicket(ctx context.Context, actor *domain.User, subTicketID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return apperrors.NewValidationError("reason required", nil)
	}
	subTicket, err := s.subTickets.GetSubTicket(ctx, subTicketID)
	if err != nil {
		return err
	}
	if !subTicket.CanDeny() {
		return apperrors.NewConflict("sub-ticket cannot be denied in current status", statusDetail(string(subTicket.Status)))
	}
	if err := s.subTickets.DenySubTicket(ctx, subTicketID, reason); err != nil {
		return err
	}
	s.recordAction(ctx, actor, domain.ActionDeny, events.TargetSubTicket, subTicketID,
		string(subTicket.Status), string(domain.SubTicketStatusDenied), reason)
	s.publish(ctx, actor, events.EventTicketDenied, events.TargetSubTicket, subTicketID, events.ReviewActionPayload{Action: domain.ActionDeny, Note: reason})
	return nil
}

// ResolveSubTicket resolves a sub-ticket with a mandatory resolution note.
func (s *ReviewService) ResolveSubTicket(ctx context.Context, actor *domain.User, subTicketID, resolutionNote string) error {
	resolutionNote = strings.TrimSpace(resolutionNote)
	if resolutionNote == "" {
		return apperrors.NewValidationError("resolution note required", nil)
	}
	subTicket, err := s.subTickets.GetSubTicket(ctx, subTicketID)
	if err != nil {
		return err
	}
	if !subTicket.CanResolve() {
		return apperrors.NewConflict("sub-ticket cannot be resolved in current status", statusDetail(string(subTicket.Status)))
	}
	if err := s.subTickets.ResolveSubTicket(ctx, subTicketID, resolutionNote); err != nil {
		return err
	}
	s.recordAction(ctx, actor, domain.ActionResolve, events.TargetSubTicket, subTicketID,
		string(subTicket.Status), string(domain.SubTicketStatusResolved), resolutionNote)
	s.publish(ctx, actor, events.EventTicketResolved, events.TargetSubTicket, subTicketID, events.ReviewActionPayload{Action: domain.ActionResolve, Note: resolutionNote})
	return nil
}

func (s *ReviewService) recordAction(ctx context.Context, actor *domain.User, action domain.Action, kind events.TargetKind, targetID, oldStatus, newStatus, note string) {
	if s.auditLog == nil {
		return
	}
	_ = s.auditLog.Record(ctx, &audit.Entry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     string(action),
		TargetKind: string(kind),
		TargetID:   targetID,
		OldValue:   map[string]any{"status": oldStatus},
		NewValue:   map[string]any{"status": newStatus},
		Note:       note,
	})
}

func (s *ReviewService) publish(ctx context.Context, actor *domain.User, eventType events.EventType, kind events.TargetKind, targetID string, payload interface{}) {
	publishEvent(ctx, s.dispatcher, actor, eventType, kind, targetID, payload)
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, actor *domain.User, eventType events.EventType, kind events.TargetKind, targetID string, payload interface{}) {
	if dispatcher == nil {
		return
	}
	_ = dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		TargetKind: kind,
		TargetID:   targetID,
		Actor:      events.Actor{UserID: actor.ID, Role: actor.Role},
		Timestamp:  time.Now(),
		Payload:    payload,
	})
}

func statusDetail(status string) map[string]any {
	return map[string]any{"status": status}
}
