package domain

import "time"

// ReassignStatus enumerates reassignment request states. Requests are
// reviewed exactly once; approved and rejected are terminal.
type ReassignStatus string

const (
	ReassignStatusPending  ReassignStatus = "pending"
	ReassignStatusApproved ReassignStatus = "approved"
	ReassignStatusRejected ReassignStatus = "rejected"
)

// ReviewAction is the admin decision applied to a pending request.
type ReviewAction string

const (
	ReviewActionApprove ReviewAction = "approve"
	ReviewActionReject  ReviewAction = "reject"
)

// ReassignRequest is a staff-initiated, admin-reviewed request to change a
// ticket or sub-ticket assignee. Exactly one of TicketID and SubTicketID is
// set.
type ReassignRequest struct {
	ID               string         `json:"id"`
	RequesterID      string         `json:"requesterId"`
	TicketID         *string        `json:"ticketId"`
	SubTicketID      *string        `json:"subTicketId"`
	Reason           string         `json:"reason"`
	SuggestedStaffID *string        `json:"staffId"`
	DepartmentID     *string        `json:"departmentId"`
	Status           ReassignStatus `json:"status"`
	ReviewerID       *string        `json:"reviewerId"`
	ReviewNote       *string        `json:"reviewNote"`
	CreatedAt        time.Time      `json:"createdAt"`
	ReviewedAt       *time.Time     `json:"reviewedAt"`
}

// Terminal reports whether the request has been reviewed.
func (r *ReassignRequest) Terminal() bool {
	return r.Status == ReassignStatusApproved || r.Status == ReassignStatusRejected
}
