package dto

import (
	"github.com/spec-kit/helpdesk-console/internal/domain"
)

// ReassignCreateRequest opens a reassignment request for a ticket XOR a
// sub-ticket. StaffID optionally suggests a replacement assignee.
type ReassignCreateRequest struct {
	TicketID    string `json:"ticketId"`
	SubTicketID string `json:"subTicketId"`
	Reason      string `json:"reason"`
	StaffID     string `json:"staffId"`
}

// ReassignReviewRequest is the admin decision on a pending request.
type ReassignReviewRequest struct {
	Action      domain.ReviewAction `json:"action"`
	ReviewNote  string              `json:"reviewNote"`
	NewAssignee string              `json:"newAssignee"`
}
