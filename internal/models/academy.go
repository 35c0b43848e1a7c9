package models

import "time"

type AcademyStatus string

const (
	AcademyStatusPending  AcademyStatus = "pending"
	AcademyStatusApproved AcademyStatus = "approved"
	AcademyStatusRejected AcademyStatus = "rejected"
)

// Terminal reports whether no further transition is defined from the status.
func (s AcademyStatus) Terminal() bool {
	return s == AcademyStatusApproved || s == AcademyStatusRejected
}

type Academy struct {
	ID                 string
	Name               string
	Location           string
	Description        string
	ContactEmail       string
	ContactPhone       string
	ContactName        string
	ContactPersonPhone string
	LogoURL            *string
	Status             AcademyStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
