package models

// Payment statuses as stored in the Registrations sheet.
const (
	StatusPending  = "Pending"
	StatusPaid     = "Paid"
	StatusWaitlist = "Waitlist"
	StatusRejected = "Rejected"
)

// Session statuses as stored in the Sessions sheet.
const (
	SessionOpen   = "Open"
	SessionClosed = "Closed"
)

type Session struct {
	ID       string
	Name     string
	Date     string
	Time     string
	Location string
	Fee      string
	Status   string
	Capacity int
}

// Label is how a session is shown in pickers: name + date.
func (s Session) Label() string {
	return s.Name + " (" + s.Date + ")"
}

type Registration struct {
	SessionID   string
	SessionDate string
	PlayerName  string
	Phone       string
	Status      string
	Fee         string // snapshot of the session fee at submission time
	CreatedAt   string
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPaid, StatusWaitlist, StatusRejected:
		return true
	}
	return false
}

// CountsTowardCapacity reports whether a registration consumes a slot.
// Waitlist and Rejected entries never do.
func (r Registration) CountsTowardCapacity() bool {
	return r.Status == StatusPending || r.Status == StatusPaid
}

// BelongsTo matches a registration to a session, by surrogate ID when the
// row carries one, by date otherwise (rows written before the ID column
// existed).
func (r Registration) BelongsTo(s Session) bool {
	if r.SessionID != "" && s.ID != "" {
		return r.SessionID == s.ID
	}
	return r.SessionDate == s.Date
}
