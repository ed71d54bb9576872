package domain

// Category is a routing unit for tickets. A category may belong to a
// department, which scopes the eligible staff for work split into it.
type Category struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	Description  string  `json:"description"`
	DepartmentID *string `json:"departmentId"`
	Active       bool    `json:"active"`
}

// Department is an organizational unit owning categories and staff.
type Department struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// Room identifies a physical location a ticket refers to.
type Room struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Building    string `json:"building"`
	Floor       string `json:"floor"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// SLAPolicy names response/resolution time targets per priority. Computation
// against these targets happens in the backend.
type SLAPolicy struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Priority          TicketPriority `json:"priority"`
	ResponseMinutes   int            `json:"responseMinutes"`
	ResolutionMinutes int            `json:"resolutionMinutes"`
	Active            bool           `json:"active"`
}
