package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is a customer record, optionally linked to a portal user and a
// Freshbooks client.
type Client struct {
	ID           uuid.UUID  `json:"id"`
	UserID       *uuid.UUID `json:"userId,omitempty"`
	FreshbooksID string     `json:"freshbooksId,omitempty"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone,omitempty"`
	Address      string     `json:"address,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// ProjectStatus enumerates the lifecycle states of a client project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectOnHold    ProjectStatus = "on_hold"
)

// Project is a piece of work tracked for a client.
type Project struct {
	ID           uuid.UUID     `json:"id"`
	ClientID     *uuid.UUID    `json:"clientId,omitempty"`
	FreshbooksID string        `json:"freshbooksId,omitempty"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Status       ProjectStatus `json:"status"`
	Budget       *int          `json:"budget,omitempty"`
	DueDate      *time.Time    `json:"dueDate,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// InquiryStatus enumerates the review states of a contact inquiry.
type InquiryStatus string

const (
	InquiryPending  InquiryStatus = "pending"
	InquiryApproved InquiryStatus = "approved"
	InquiryRejected InquiryStatus = "rejected"
)

// Inquiry is a contact-form submission from the public site.
type Inquiry struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Company   string        `json:"company,omitempty"`
	Message   string        `json:"message"`
	Status    InquiryStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}
