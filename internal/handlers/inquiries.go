// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	"github.com/go-chi/chi/v5"

	"clientportal/internal/models"
)

// InquirySource is the subset of store.InquiryStore the handlers need.
type InquirySource interface {
	Create(ctx context.Context, name, email, company, message string) (*models.Inquiry, error)
	List(ctx context.Context) ([]models.Inquiry, error)
	SetStatus(ctx context.Context, id string, status models.InquiryStatus) error
}

// Inquiries serves the contact-form endpoints. Submission is public;
// review is admin-only.
type Inquiries struct {
	inquiries  InquirySource
	activities ActivityRecorder
}

// NewInquiries creates the inquiries handler group.
func NewInquiries(inquiries InquirySource, activities ActivityRecorder) *Inquiries {
	return &Inquiries{inquiries: inquiries, activities: activities}
}

type inquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Message string `json:"message"`
}

// Create accepts a public contact-form submission.
func (i *Inquiries) Create(w http.ResponseWriter, r *http.Request) {
	var req inquiryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required.")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeError(w, http.StatusBadRequest, "A valid email address is required.")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "Message is required.")
		return
	}

	inquiry, err := i.inquiries.Create(r.Context(), req.Name, req.Email, req.Company, req.Message)
	if err != nil {
		slog.Error("inquiry create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not submit your inquiry.")
		return
	}

	if err := i.activities.Record(r.Context(), "inquiry", "New inquiry from "+inquiry.Name); err != nil {
		slog.Warn("activity record failed", "error", err)
	}

	writeJSON(w, http.StatusCreated, inquiry)
}

// List returns all inquiries for admin review.
func (i *Inquiries) List(w http.ResponseWriter, r *http.Request) {
	inquiries, err := i.inquiries.List(r.Context())
	if err != nil {
		slog.Error("inquiries query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not load inquiries.")
		return
	}
	if inquiries == nil {
		inquiries = []models.Inquiry{}
	}
	writeJSON(w, http.StatusOK, inquiries)
}

type inquiryStatusRequest struct {
	Status models.InquiryStatus `json:"status"`
}

// SetStatus updates the review status of one inquiry.
func (i *Inquiries) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req inquiryStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch req.Status {
	case models.InquiryPending, models.InquiryApproved, models.InquiryRejected:
	default:
		writeError(w, http.StatusBadRequest, "Unknown inquiry status.")
		return
	}

	id := chi.URLParam(r, "id")
	if err := i.inquiries.SetStatus(r.Context(), id, req.Status); err != nil {
		slog.Error("inquiry status update failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Could not update the inquiry.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
