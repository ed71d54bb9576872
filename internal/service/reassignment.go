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

// ReassignmentService runs the staff-initiated, admin-reviewed reassignment
// workflow: pending -> approved | rejected, terminal once reviewed.
type ReassignmentService struct {
	tickets    upstream.TicketAPI
	subTickets upstream.SubTicketAPI
	requests   upstream.ReassignAPI
	directory  upstream.DirectoryAPI
	auditLog   audit.Recorder
	dispatcher events.Dispatcher
}

// ReassignmentDependencies bundles collaborators.
type ReassignmentDependencies struct {
	TicketAPI    upstream.TicketAPI
	SubTicketAPI upstream.SubTicketAPI
	ReassignAPI  upstream.ReassignAPI
	DirectoryAPI upstream.DirectoryAPI
	AuditLog     audit.Recorder
	Dispatcher   events.Dispatcher
}

// NewReassignmentService constructs the service.
func NewReassignmentService(deps ReassignmentDependencies) *ReassignmentService {
	return &ReassignmentService{
		tickets:    deps.TicketAPI,
		subTickets: deps.SubTicketAPI,
		requests:   deps.ReassignAPI,
		directory:  deps.DirectoryAPI,
		auditLog:   deps.AuditLog,
		dispatcher: deps.Dispatcher,
	}
}

// CreateRequestInput is the staff submission. Exactly one of TicketID and
// SubTicketID must be set.
type CreateRequestInput struct {
	TicketID    string
	SubTicketID string
	Reason      string
	StaffID     string
}

// EligibleStaff is the picker offered when suggesting or choosing a
// replacement assignee. Filtered is false when no department could be
// resolved and the full staff list is offered instead — the workflow fails
// open rather than blocking the review step on incomplete department data.
type EligibleStaff struct {
	Staff        []domain.User `json:"staff"`
	DepartmentID *string       `json:"departmentId,omitempty"`
	Filtered     bool          `json:"filtered"`
}

// ReviewContext bundles everything the admin review modal needs: the
// request, the eligible staff picker, and the requester's suggestion to
// pre-fill.
type ReviewContext struct {
	Request        *domain.ReassignRequest `json:"request"`
	EligibleStaff  EligibleStaff           `json:"eligibleStaff"`
	SuggestedStaff *domain.User            `json:"suggestedStaff,omitempty"`
}

// ReviewDecision is the admin submission for a pending request.
type ReviewDecision struct {
	Action      domain.ReviewAction
	ReviewNote  string
	NewAssignee string
}

// Create opens a reassignment request on behalf of the staff member holding
// the item.
func (s *ReassignmentService) Create(ctx context.Context, actor *domain.User, input CreateRequestInput) (*domain.ReassignRequest, error) {
	input.Reason = strings.TrimSpace(input.Reason)
	if input.Reason == "" {
		return nil, apperrors.NewValidationError("reason required", nil)
	}
	if (input.TicketID == "") == (input.SubTicketID == "") {
		return nil, apperrors.NewValidationError("exactly one of ticketId and subTicketId required", nil)
	}

	var (
		eligible EligibleStaff
		err      error
	)
	upstreamInput := upstream.ReassignCreateInput{Reason: input.Reason}

	if input.TicketID != "" {
		ticket, getErr := s.tickets.GetTicket(ctx, input.TicketID)
		if getErr != nil {
			return nil, getErr
		}
		if !ticket.CanRequestReassign() {
			return nil, apperrors.NewConflict("ticket is not reassignable in current status", statusDetail(string(ticket.Status)))
		}
		if ticket.AssigneeID == nil || *ticket.AssigneeID != actor.ID {
			return nil, apperrors.NewForbidden("only the current assignee may request reassignment")
		}
		upstreamInput.TicketID = &input.TicketID
		eligible, err = s.eligibleStaffForTicket(ctx, ticket)
	} else {
		subTicket, getErr := s.subTickets.GetSubTicket(ctx, input.SubTicketID)
		if getErr != nil {
			return nil, getErr
		}
		if !subTicket.CanRequestReassign() {
			return nil, apperrors.NewConflict("sub-ticket is not reassignable in current status", statusDetail(string(subTicket.Status)))
		}
		if subTicket.AssigneeID == nil || *subTicket.AssigneeID != actor.ID {
			return nil, apperrors.NewForbidden("only the current assignee may request reassignment")
		}
		upstreamInput.SubTicketID = &input.SubTicketID
		eligible, err = s.eligibleStaffForSubTicket(ctx, subTicket)
	}
	if err != nil {
		return nil, err
	}
	upstreamInput.DepartmentID = eligible.DepartmentID

	if staffID := strings.TrimSpace(input.StaffID); staffID != "" {
		if !containsStaff(eligible.Staff, staffID) {
			return nil, apperrors.NewValidationError("suggested staff is not eligible for this item", map[string]any{"staffId": staffID})
		}
		upstreamInput.StaffID = &staffID
	}

	request, err := s.requests.CreateReassignRequest(ctx, upstreamInput)
	if err != nil {
		return nil, err
	}

	target, targetID := requestTarget(request)
	s.record(ctx, actor, "reassign_request", target, targetID,
		map[string]any{"status": nil},
		map[string]any{"status": domain.ReassignStatusPending, "request_id": request.ID},
		input.Reason)
	publishEvent(ctx, s.dispatcher, actor, events.EventReassignRequested, target, targetID, events.ReassignRequestedPayload{
		RequestID:        request.ID,
		Reason:           request.Reason,
		SuggestedStaffID: request.SuggestedStaffID,
	})
	return request, nil
}

// List returns reassignment requests, optionally filtered by status.
func (s *ReassignmentService) List(ctx context.Context, status string) ([]domain.ReassignRequest, error) {
	return s.requests.ListReassignRequests(ctx, status)
}

// Context loads the review modal data for a pending request.
func (s *ReassignmentService) Context(ctx context.Context, requestID string) (*ReviewContext, error) {
	request, err := s.requests.GetReassignRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	eligible, err := s.eligibleStaffForRequest(ctx, request)
	if err != nil {
		return nil, err
	}

	reviewCtx := &ReviewContext{Request: request, EligibleStaff: eligible}
	if request.SuggestedStaffID != nil {
		for i := range eligible.Staff {
			if eligible.Staff[i].ID == *request.SuggestedStaffID {
				reviewCtx.SuggestedStaff = &eligible.Staff[i]
				break
			}
		}
	}
	return reviewCtx, nil
}

// Review applies the admin decision. Approval may carry a replacement
// assignee; an empty NewAssignee is omitted from the upstream payload so the
// backend auto-assigns.
func (s *ReassignmentService) Review(ctx context.Context, actor *domain.User, requestID string, decision ReviewDecision) (*domain.ReassignRequest, error) {
	if decision.Action != domain.ReviewActionApprove && decision.Action != domain.ReviewActionReject {
		return nil, apperrors.NewValidationError("action must be approve or reject", nil)
	}
	request, err := s.requests.GetReassignRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Terminal() {
		return nil, apperrors.NewConflict("request already reviewed", map[string]any{"status": request.Status})
	}

	newAssignee := strings.TrimSpace(decision.NewAssignee)
	if newAssignee != "" {
		if decision.Action != domain.ReviewActionApprove {
			return nil, apperrors.NewValidationError("newAssignee only applies to approval", nil)
		}
		eligible, err := s.eligibleStaffForRequest(ctx, request)
		if err != nil {
			return nil, err
		}
		if !containsStaff(eligible.Staff, newAssignee) {
			return nil, apperrors.NewValidationError("selected staff is not eligible for this item", map[string]any{"staffId": newAssignee})
		}
	}

	reviewed, err := s.requests.ReviewReassignRequest(ctx, requestID, upstream.ReviewInput{
		Action:      decision.Action,
		ReviewNote:  strings.TrimSpace(decision.ReviewNote),
		NewAssignee: newAssignee,
	})
	if err != nil {
		return nil, err
	}

	target, targetID := requestTarget(reviewed)
	s.record(ctx, actor, "reassign_review", target, targetID,
		map[string]any{"status": domain.ReassignStatusPending, "request_id": reviewed.ID},
		map[string]any{"status": reviewed.Status, "request_id": reviewed.ID},
		decision.ReviewNote)
	payload := events.ReassignReviewedPayload{
		RequestID: reviewed.ID,
		Action:    decision.Action,
		Status:    reviewed.Status,
	}
	if newAssignee != "" {
		payload.NewAssignee = &newAssignee
	}
	publishEvent(ctx, s.dispatcher, actor, events.EventReassignReviewed, target, targetID, payload)
	return reviewed, nil
}

// eligibleStaffForRequest resolves the picker for whichever item the request
// targets.
func (s *ReassignmentService) eligibleStaffForRequest(ctx context.Context, request *domain.ReassignRequest) (EligibleStaff, error) {
	if request.TicketID != nil {
		ticket, err := s.tickets.GetTicket(ctx, *request.TicketID)
		if err != nil {
			return EligibleStaff{}, err
		}
		return s.eligibleStaffForTicket(ctx, ticket)
	}
	if request.SubTicketID != nil {
		subTicket, err := s.subTickets.GetSubTicket(ctx, *request.SubTicketID)
		if err != nil {
			return EligibleStaff{}, err
		}
		return s.eligibleStaffForSubTicket(ctx, subTicket)
	}
	return EligibleStaff{}, apperrors.NewValidationError("request targets neither ticket nor sub-ticket", nil)
}

func (s *ReassignmentService) eligibleStaffForTicket(ctx context.Context, ticket *domain.Ticket) (EligibleStaff, error) {
	departmentID := s.resolveTicketDepartment(ctx, ticket)
	return s.eligibleStaff(ctx, departmentID)
}

func (s *ReassignmentService) eligibleStaffForSubTicket(ctx context.Context, subTicket *domain.SubTicket) (EligibleStaff, error) {
	departmentID := s.resolveCategoryDepartment(ctx, subTicket.Category, subTicket.CategoryID)
	if departmentID == nil {
		// fall back to the parent ticket's department
		if parent, err := s.tickets.GetTicket(ctx, subTicket.TicketID); err == nil {
			departmentID = s.resolveTicketDepartment(ctx, parent)
		}
	}
	return s.eligibleStaff(ctx, departmentID)
}

// eligibleStaff filters the staff list to a department when one resolved.
// With no department the full list is offered, fail-open.
func (s *ReassignmentService) eligibleStaff(ctx context.Context, departmentID *string) (EligibleStaff, error) {
	staff, err := s.directory.ListStaff(ctx)
	if err != nil {
		return EligibleStaff{}, err
	}
	if departmentID == nil {
		return EligibleStaff{Staff: staff, Filtered: false}, nil
	}
	filtered := make([]domain.User, 0, len(staff))
	for _, member := range staff {
		if member.InDepartment(*departmentID) {
			filtered = append(filtered, member)
		}
	}
	return EligibleStaff{Staff: filtered, DepartmentID: departmentID, Filtered: true}, nil
}

// resolveTicketDepartment returns the ticket's department, chasing the
// single category's department when the ticket itself carries none.
func (s *ReassignmentService) resolveTicketDepartment(ctx context.Context, ticket *domain.Ticket) *string {
	if ticket.DepartmentID != nil {
		return ticket.DepartmentID
	}
	if len(ticket.Categories) != 1 {
		return nil
	}
	association := ticket.Categories[0]
	return s.resolveCategoryDepartment(ctx, association.Category, association.CategoryID)
}

// resolveCategoryDepartment prefers the embedded category record and falls
// back to fetching it. A lookup failure resolves to no department rather
// than failing the action.
func (s *ReassignmentService) resolveCategoryDepartment(ctx context.Context, embedded *domain.Category, categoryID string) *string {
	if embedded != nil && embedded.DepartmentID != nil {
		return embedded.DepartmentID
	}
	if categoryID == "" {
		return nil
	}
	category, err := s.directory.GetCategory(ctx, categoryID)
	if err != nil {
		return nil
	}
	return category.DepartmentID
}

func (s *ReassignmentService) record(ctx context.Context, actor *domain.User, action string, kind events.TargetKind, targetID string, oldValue, newValue map[string]any, note string) {
	if s.auditLog == nil {
		return
	}
	_ = s.auditLog.Record(ctx, &audit.Entry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		TargetKind: string(kind),
		TargetID:   targetID,
		OldValue:   oldValue,
		NewValue:   newValue,
		Note:       note,
	})
}

func requestTarget(request *domain.ReassignRequest) (events.TargetKind, string) {
	if request.SubTicketID != nil {
		return events.TargetSubTicket, *request.SubTicketID
	}
	if request.TicketID != nil {
		return events.TargetTicket, *request.TicketID
	}
	return events.TargetTicket, ""
}

func containsStaff(staff []domain.User, id string) bool {
	for _, member := range staff {
		if member.ID == id {
			return true
		}
	}
	return false
}
