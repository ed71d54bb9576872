package service

import (
	"context"
	"encoding/json"

	"github.com/spec-kit/helpdesk-console/internal/audit"
	"github.com/spec-kit/helpdesk-console/internal/domain"
	"github.com/spec-kit/helpdesk-console/internal/upstream"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util"
)

// fakeTicketAPI serves canned tickets and records every mutating call so
// tests can assert nothing reached the backend.
type fakeTicketAPI struct {
	tickets map[string]*domain.Ticket
	listing []domain.Ticket
	calls   []string

	denied   map[string]string
	resolved map[string]string
	assigned map[string]upstream.AssignInput
	splits   map[string][]upstream.SplitInput
}

func newFakeTicketAPI(tickets ...*domain.Ticket) *fakeTicketAPI {
	f := &fakeTicketAPI{
		tickets:  map[string]*domain.Ticket{},
		denied:   map[string]string{},
		resolved: map[string]string{},
		assigned: map[string]upstream.AssignInput{},
		splits:   map[string][]upstream.SplitInput{},
	}
	for _, ticket := range tickets {
		f.tickets[ticket.ID] = ticket
		f.listing = append(f.listing, *ticket)
	}
	return f
}

func (f *fakeTicketAPI) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeTicketAPI) ListTickets(ctx context.Context, query upstream.TicketQuery) ([]domain.Ticket, error) {
	f.record("list")
	if query.Status == "" {
		return f.listing, nil
	}
	var out []domain.Ticket
	for _, ticket := range f.listing {
		if string(ticket.Status) == query.Status {
			out = append(out, ticket)
		}
	}
	return out, nil
}

func (f *fakeTicketAPI) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	f.record("get:" + id)
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, apperrors.NewNotFound("ticket", nil)
	}
	return ticket, nil
}

func (f *fakeTicketAPI) CreateTicket(ctx context.Context, input upstream.CreateTicketInput) (*domain.Ticket, error) {
	f.record("create")
	return &domain.Ticket{ID: "new", Title: input.Title}, nil
}

func (f *fakeTicketAPI) UpdateTicket(ctx context.Context, id string, input upstream.UpdateTicketInput) (*domain.Ticket, error) {
	f.record("update:" + id)
	return f.GetTicket(ctx, id)
}

func (f *fakeTicketAPI) DeleteTicket(ctx context.Context, id string) error {
	f.record("delete:" + id)
	return nil
}

func (f *fakeTicketAPI) AcceptTicket(ctx context.Context, id string) error {
	f.record("accept:" + id)
	return nil
}

func (f *fakeTicketAPI) DenyTicket(ctx context.Context, id, reason string) error {
	f.record("deny:" + id)
	f.denied[id] = reason
	return nil
}

func (f *fakeTicketAPI) ResolveTicket(ctx context.Context, id, resolutionNote string) error {
	f.record("resolve:" + id)
	f.resolved[id] = resolutionNote
	return nil
}

func (f *fakeTicketAPI) AssignCategory(ctx context.Context, id string, input upstream.AssignInput) error {
	f.record("assign:" + id)
	f.assigned[id] = input
	return nil
}

func (f *fakeTicketAPI) SplitCategories(ctx context.Context, id string, splits []upstream.SplitInput) error {
	f.record("split:" + id)
	f.splits[id] = splits
	return nil
}

type fakeSubTicketAPI struct {
	subTickets map[string]*domain.SubTicket
	listing    []domain.SubTicket
	calls      []string

	denied   map[string]string
	resolved map[string]string
}

func newFakeSubTicketAPI(subTickets ...*domain.SubTicket) *fakeSubTicketAPI {
	f := &fakeSubTicketAPI{
		subTickets: map[string]*domain.SubTicket{},
		denied:     map[string]string{},
		resolved:   map[string]string{},
	}
	for _, subTicket := range subTickets {
		f.subTickets[subTicket.ID] = subTicket
		f.listing = append(f.listing, *subTicket)
	}
	return f
}

func (f *fakeSubTicketAPI) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeSubTicketAPI) ListAssignedSubTickets(ctx context.Context) ([]domain.SubTicket, error) {
	f.record("list")
	return f.listing, nil
}

func (f *fakeSubTicketAPI) GetSubTicket(ctx context.Context, id string) (*domain.SubTicket, error) {
	f.record("get:" + id)
	subTicket, ok := f.subTickets[id]
	if !ok {
		return nil, apperrors.NewNotFound("sub-ticket", nil)
	}
	return subTicket, nil
}

func (f *fakeSubTicketAPI) AcceptSubTicket(ctx context.Context, id string) error {
	f.record("accept:" + id)
	return nil
}

func (f *fakeSubTicketAPI) DenySubTicket(ctx context.Context, id, reason string) error {
	f.record("deny:" + id)
	f.denied[id] = reason
	return nil
}

func (f *fakeSubTicketAPI) ResolveSubTicket(ctx context.Context, id, resolutionNote string) error {
	f.record("resolve:" + id)
	f.resolved[id] = resolutionNote
	return nil
}

type fakeReassignAPI struct {
	requests map[string]*domain.ReassignRequest
	created  []upstream.ReassignCreateInput
	reviewed map[string]upstream.ReviewInput
}

func newFakeReassignAPI(requests ...*domain.ReassignRequest) *fakeReassignAPI {
	f := &fakeReassignAPI{
		requests: map[string]*domain.ReassignRequest{},
		reviewed: map[string]upstream.ReviewInput{},
	}
	for _, request := range requests {
		f.requests[request.ID] = request
	}
	return f
}

func (f *fakeReassignAPI) ListReassignRequests(ctx context.Context, status string) ([]domain.ReassignRequest, error) {
	var out []domain.ReassignRequest
	for _, request := range f.requests {
		if status == "" || string(request.Status) == status {
			out = append(out, *request)
		}
	}
	return out, nil
}

func (f *fakeReassignAPI) GetReassignRequest(ctx context.Context, id string) (*domain.ReassignRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return nil, apperrors.NewNotFound("reassign request", nil)
	}
	return request, nil
}

func (f *fakeReassignAPI) CreateReassignRequest(ctx context.Context, input upstream.ReassignCreateInput) (*domain.ReassignRequest, error) {
	f.created = append(f.created, input)
	request := &domain.ReassignRequest{
		ID:               "r-new",
		TicketID:         input.TicketID,
		SubTicketID:      input.SubTicketID,
		Reason:           input.Reason,
		SuggestedStaffID: input.StaffID,
		DepartmentID:     input.DepartmentID,
		Status:           domain.ReassignStatusPending,
	}
	f.requests[request.ID] = request
	return request, nil
}

func (f *fakeReassignAPI) ReviewReassignRequest(ctx context.Context, id string, input upstream.ReviewInput) (*domain.ReassignRequest, error) {
	f.reviewed[id] = input
	request, ok := f.requests[id]
	if !ok {
		return nil, apperrors.NewNotFound("reassign request", nil)
	}
	reviewed := *request
	if input.Action == domain.ReviewActionApprove {
		reviewed.Status = domain.ReassignStatusApproved
	} else {
		reviewed.Status = domain.ReassignStatusRejected
	}
	return &reviewed, nil
}

type fakeDirectoryAPI struct {
	staff      []domain.User
	categories map[string]*domain.Category
}

func (f *fakeDirectoryAPI) ListStaff(ctx context.Context) ([]domain.User, error) {
	return f.staff, nil
}

func (f *fakeDirectoryAPI) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, apperrors.NewNotFound("category", nil)
	}
	return category, nil
}

func (f *fakeDirectoryAPI) GetDepartment(ctx context.Context, id string) (*domain.Department, error) {
	return nil, apperrors.NewNotFound("department", nil)
}

func (f *fakeDirectoryAPI) ListResource(ctx context.Context, resource string) ([]json.RawMessage, error) {
	return nil, nil
}

func (f *fakeDirectoryAPI) GetResource(ctx context.Context, resource, id string) (json.RawMessage, error) {
	return nil, apperrors.NewNotFound(resource, nil)
}

func (f *fakeDirectoryAPI) CreateResource(ctx context.Context, resource string, body json.RawMessage) (json.RawMessage, error) {
	return body, nil
}

func (f *fakeDirectoryAPI) UpdateResource(ctx context.Context, resource, id string, body json.RawMessage) (json.RawMessage, error) {
	return body, nil
}

func (f *fakeDirectoryAPI) DeleteResource(ctx context.Context, resource, id string) error {
	return nil
}

// fakeRecorder captures audit entries in memory.
type fakeRecorder struct {
	entries []*audit.Entry
}

func (f *fakeRecorder) Record(ctx context.Context, entry *audit.Entry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func ptr(s string) *string { return &s }

func adminActor() *domain.User {
	return &domain.User{ID: "admin-1", Username: "admin", Role: domain.RoleAdmin}
}

func staffActor(id string, departmentID *string) *domain.User {
	return &domain.User{ID: id, Role: domain.RoleStaff, DepartmentID: departmentID}
}
