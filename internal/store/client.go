package store

import (
	"context"
	"database/sql"
	"fmt"

	"clientportal/internal/models"
)

// ClientStore handles customer records and their linked projects.
type ClientStore struct {
	db *sql.DB
}

// NewClientStore creates a new ClientStore with the given database connection.
func NewClientStore(db *sql.DB) *ClientStore {
	return &ClientStore{db: db}
}

// List returns all clients ordered by creation date.
func (s *ClientStore) List(ctx context.Context) ([]models.Client, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, freshbooks_id, name, email, phone, address, created_at
		FROM clients ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		var (
			c                 models.Client
			fbID, phone, addr sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.UserID, &fbID, &c.Name, &c.Email, &phone, &addr, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		c.FreshbooksID = fbID.String
		c.Phone = phone.String
		c.Address = addr.String
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// Create inserts a new client record.
func (s *ClientStore) Create(ctx context.Context, c *models.Client) (*models.Client, error) {
	out := *c
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO clients (user_id, freshbooks_id, name, email, phone, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, c.UserID, nullStr(c.FreshbooksID), c.Name, c.Email, nullStr(c.Phone), nullStr(c.Address)).
		Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return &out, nil
}

// UpsertByFreshbooksID inserts or updates a client keyed by its Freshbooks
// identifier. Used by the sync path so re-syncing is idempotent.
func (s *ClientStore) UpsertByFreshbooksID(ctx context.Context, c *models.Client) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO clients (freshbooks_id, name, email, phone, address)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (freshbooks_id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address
	`, c.FreshbooksID, c.Name, c.Email, nullStr(c.Phone), nullStr(c.Address))
	if err != nil {
		return fmt.Errorf("upsert client: %w", err)
	}
	return nil
}

// UpsertProjectByFreshbooksID inserts or updates a project keyed by its
// Freshbooks identifier, same idempotency contract as the client upsert.
func (s *ClientStore) UpsertProjectByFreshbooksID(ctx context.Context, p *models.Project) error {
	var due any
	if p.DueDate != nil {
		due = *p.DueDate
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (freshbooks_id, name, description, status, due_date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (freshbooks_id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			status = EXCLUDED.status,
			due_date = EXCLUDED.due_date
	`, p.FreshbooksID, p.Name, nullStr(p.Description), p.Status, due)
	if err != nil {
		return fmt.Errorf("upsert project: %w", err)
	}
	return nil
}

// Stats computes the aggregate dashboard counters in a single round trip.
// Invoices live in Freshbooks, not locally, so that counter stays zero
// until a sync implementation lands.
func (s *ClientStore) Stats(ctx context.Context) (*models.Stats, error) {
	st := &models.Stats{}
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM clients),
			(SELECT COUNT(*) FROM projects WHERE status = 'active'),
			(SELECT COUNT(*) FROM inquiries WHERE status = 'pending')
	`).Scan(&st.ClientCount, &st.ActiveProjects, &st.NewInquiries)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return st, nil
}
