package model

import "time"

// LeadStatus tracks where a consultation request sits in the follow-up
// pipeline.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusArchived  LeadStatus = "archived"
)

// Valid reports whether s is one of the known lead statuses.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusArchived:
		return true
	}
	return false
}

// Lead is an inbound consultation request submitted through the public
// contact form.
type Lead struct {
	ID             string     `json:"id" db:"id"`
	FirstName      string     `json:"first_name" db:"first_name"`
	LastName       string     `json:"last_name" db:"last_name"`
	Email          string     `json:"email" db:"email"`
	PhoneNumber    string     `json:"phone_number,omitempty" db:"phone_number"`
	Message        string     `json:"message,omitempty" db:"message"`
	SourcePageSlug string     `json:"source_page_slug,omitempty" db:"source_page_slug"`
	Status         LeadStatus `json:"status" db:"status"`
	RequestedAt    time.Time  `json:"requested_at" db:"requested_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// FullName returns the lead's name as submitted on the contact form.
func (l *Lead) FullName() string {
	if l.LastName == "" {
		return l.FirstName
	}
	return l.FirstName + " " + l.LastName
}
