package store

import (
	"context"
	"database/sql"
	"fmt"

	"clientportal/internal/models"
)

// InquiryStore handles contact-form submissions from the public site.
type InquiryStore struct {
	db *sql.DB
}

// NewInquiryStore creates a new InquiryStore with the given database connection.
func NewInquiryStore(db *sql.DB) *InquiryStore {
	return &InquiryStore{db: db}
}

// Create inserts a new inquiry in the pending state.
func (s *InquiryStore) Create(ctx context.Context, name, email, company, message string) (*models.Inquiry, error) {
	inq := &models.Inquiry{Name: name, Email: email, Company: company, Message: message}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO inquiries (name, email, company, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at
	`, name, email, nullStr(company), message).Scan(&inq.ID, &inq.Status, &inq.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create inquiry: %w", err)
	}
	return inq, nil
}

// List returns all inquiries, newest first.
func (s *InquiryStore) List(ctx context.Context) ([]models.Inquiry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, company, message, status, created_at
		FROM inquiries ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	defer rows.Close()

	var items []models.Inquiry
	for rows.Next() {
		var (
			inq     models.Inquiry
			company sql.NullString
		)
		if err := rows.Scan(&inq.ID, &inq.Name, &inq.Email, &company, &inq.Message, &inq.Status, &inq.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inquiry: %w", err)
		}
		inq.Company = company.String
		items = append(items, inq)
	}
	return items, rows.Err()
}

// SetStatus moves an inquiry between pending/approved/rejected.
func (s *InquiryStore) SetStatus(ctx context.Context, id string, status models.InquiryStatus) error {
	_, err := s.db.ExecContext(ctx, `UPDATE inquiries SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("set inquiry status: %w", err)
	}
	return nil
}
