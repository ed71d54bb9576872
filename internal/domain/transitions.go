package domain

// Action enumerates the review actions the console can perform on a ticket
// or sub-ticket row.
type Action string

const (
	ActionAccept   Action = "accept"
	ActionDeny     Action = "deny"
	ActionResolve  Action = "resolve"
	ActionAssign   Action = "assign"
	ActionSplit    Action = "split"
	ActionReassign Action = "reassign"
)

// Allowed status transitions as triggered by console actions. The backend is
// authoritative; this table decides which actions a view may offer and lets
// the gateway reject obviously invalid submissions before the round trip.
var ticketTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusOpen:       {TicketStatusAssigned, TicketStatusDenied},
	TicketStatusAssigned:   {TicketStatusInProgress, TicketStatusDenied},
	TicketStatusInProgress: {TicketStatusResolved, TicketStatusDenied},
	TicketStatusResolved:   {TicketStatusClosed},
	TicketStatusClosed:     {},
	TicketStatusDenied:     {},
}

var subTicketTransitions = map[SubTicketStatus][]SubTicketStatus{
	SubTicketStatusAssigned:   {SubTicketStatusInProgress, SubTicketStatusDenied, SubTicketStatusEscalated},
	SubTicketStatusInProgress: {SubTicketStatusResolved, SubTicketStatusDenied, SubTicketStatusEscalated},
	SubTicketStatusEscalated:  {SubTicketStatusResolved, SubTicketStatusDenied},
	SubTicketStatusResolved:   {},
	SubTicketStatusDenied:     {},
}

// ValidTicketTransition reports whether the backend would accept moving a
// ticket from current to next.
func ValidTicketTransition(current, next TicketStatus) bool {
	for _, candidate := range ticketTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ValidSubTicketTransition reports whether moving a sub-ticket from current
// to next is allowed.
func ValidSubTicketTransition(current, next SubTicketStatus) bool {
	for _, candidate := range subTicketTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// reassignableStatuses covers tickets and sub-tickets alike. "accepted" is
// not one of the enumerated statuses but the backend surfaces it between
// acceptance and in_progress, so the guard keeps it.
var reassignableStatuses = map[string]struct{}{
	"assigned":    {},
	"in_progress": {},
	"accepted":    {},
	"escalated":   {},
}

// Reassignable reports whether an item in the given status may be the target
// of a reassignment request.
func Reassignable(status string) bool {
	_, ok := reassignableStatuses[status]
	return ok
}

// CanAccept reports whether Accept may be offered for the ticket.
func (t *Ticket) CanAccept() bool {
	return t.Status == TicketStatusAssigned
}

// CanDeny reports whether Deny may be offered for the ticket.
func (t *Ticket) CanDeny() bool {
	return ValidTicketTransition(t.Status, TicketStatusDenied)
}

// CanResolve reports whether Resolve may be offered for the ticket.
func (t *Ticket) CanResolve() bool {
	return t.Status == TicketStatusInProgress
}

// CanAssign reports whether direct single-staff assignment is meaningful:
// no assignee yet and exactly one category.
func (t *Ticket) CanAssign() bool {
	return t.AssigneeID == nil && len(t.Categories) == 1
}

// CanSplit reports whether the ticket is eligible for a category split.
func (t *Ticket) CanSplit() bool {
	return t.PendingSplit() && (t.Status == TicketStatusOpen || t.Status == TicketStatusAssigned)
}

// CanRequestReassign reports whether staff may open a reassignment request
// for the ticket.
func (t *Ticket) CanRequestReassign() bool {
	return Reassignable(string(t.Status))
}

// EligibleActions lists the actions a view may offer for the ticket row.
func (t *Ticket) EligibleActions() []Action {
	var actions []Action
	if t.CanAccept() {
		actions = append(actions, ActionAccept)
	}
	if t.CanDeny() {
		actions = append(actions, ActionDeny)
	}
	if t.CanResolve() {
		actions = append(actions, ActionResolve)
	}
	if t.CanAssign() {
		actions = append(actions, ActionAssign)
	}
	if t.CanSplit() {
		actions = append(actions, ActionSplit)
	}
	if t.CanRequestReassign() {
		actions = append(actions, ActionReassign)
	}
	return actions
}

// CanAccept reports whether Accept may be offered for the sub-ticket.
func (s *SubTicket) CanAccept() bool {
	return s.Status == SubTicketStatusAssigned
}

// CanDeny reports whether Deny may be offered for the sub-ticket.
func (s *SubTicket) CanDeny() bool {
	return ValidSubTicketTransition(s.Status, SubTicketStatusDenied)
}

// CanResolve reports whether Resolve may be offered for the sub-ticket.
func (s *SubTicket) CanResolve() bool {
	return ValidSubTicketTransition(s.Status, SubTicketStatusResolved)
}

// CanRequestReassign reports whether staff may open a reassignment request
// for the sub-ticket.
func (s *SubTicket) CanRequestReassign() bool {
	return Reassignable(string(s.Status))
}

// EligibleActions lists the actions a queue view may offer for the
// sub-ticket row.
func (s *SubTicket) EligibleActions() []Action {
	var actions []Action
	if s.CanAccept() {
		actions = append(actions, ActionAccept)
	}
	if s.CanDeny() {
		actions = append(actions, ActionDeny)
	}
	if s.CanResolve() {
		actions = append(actions, ActionResolve)
	}
	if s.CanRequestReassign() {
		actions = append(actions, ActionReassign)
	}
	return actions
}
