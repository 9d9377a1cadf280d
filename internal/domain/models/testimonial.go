package models

import "time"

type TestimonialStatus string

const (
	TestimonialPending  TestimonialStatus = "pending"
	TestimonialApproved TestimonialStatus = "approved"
	TestimonialRejected TestimonialStatus = "rejected"
)

// Testimonial is written by the candidate after a completed application and
// moderated by the company. The candidate cannot touch it once submitted.
type Testimonial struct {
	ID            int `gorm:"primaryKey"`
	ApplicationID int
	CandidateID   string `gorm:"index"`
	CompanyID     string `gorm:"index"`
	JobTitle      string
	Comment       string
	Status        TestimonialStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewTestimonial(applicationID int, candidateID, companyID, jobTitle, comment string) Testimonial {
	return Testimonial{
		ApplicationID: applicationID,
		CandidateID:   candidateID,
		CompanyID:     companyID,
		JobTitle:      jobTitle,
		Comment:       comment,
		Status:        TestimonialPending,
	}
}
