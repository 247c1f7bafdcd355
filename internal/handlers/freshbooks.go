// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"clientportal/internal/freshbooks"
	"clientportal/internal/models"
)

// ClientSyncer persists clients and projects pulled from Freshbooks.
// Satisfied by store.ClientStore.
type ClientSyncer interface {
	UpsertByFreshbooksID(ctx context.Context, c *models.Client) error
	UpsertProjectByFreshbooksID(ctx context.Context, p *models.Project) error
}

// Freshbooks serves the accounting integration endpoints: the OAuth
// connect/callback pair and the manual sync trigger.
type Freshbooks struct {
	client     *freshbooks.Client
	clients    ClientSyncer
	activities ActivityRecorder
}

// NewFreshbooks creates the Freshbooks handler group. A nil syncer
// disables local client persistence on sync.
func NewFreshbooks(client *freshbooks.Client, clients ClientSyncer, activities ActivityRecorder) *Freshbooks {
	return &Freshbooks{client: client, clients: clients, activities: activities}
}

// Connect returns the authorization URL the admin visits to grant access.
func (f *Freshbooks) Connect(w http.ResponseWriter, r *http.Request) {
	if !f.client.Configured() {
		writeError(w, http.StatusServiceUnavailable, "Freshbooks integration is not configured.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": f.client.AuthorizeURL()})
}

// Callback completes the OAuth flow with the authorization code.
func (f *Freshbooks) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "Missing authorization code.")
		return
	}

	if err := f.client.Exchange(r.Context(), code); err != nil {
		slog.Error("freshbooks token exchange failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not connect to Freshbooks.")
		return
	}

	if err := f.activities.Record(r.Context(), "sync", "Freshbooks account connected"); err != nil {
		slog.Warn("activity record failed", "error", err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Sync pulls clients, projects and invoices from Freshbooks, upserts
// the clients locally, and returns the raw payloads.
func (f *Freshbooks) Sync(w http.ResponseWriter, r *http.Request) {
	result, err := f.client.Sync(r.Context())
	if err != nil {
		if errors.Is(err, freshbooks.ErrNotConnected) {
			writeError(w, http.StatusConflict, "Freshbooks is not connected. Authorize access first.")
			return
		}
		slog.Error("freshbooks sync failed", "error", err)
		writeError(w, http.StatusBadGateway, "Could not sync with Freshbooks.")
		return
	}

	f.persistSync(r.Context(), result)

	if err := f.activities.Record(r.Context(), "sync", "Freshbooks data synced"); err != nil {
		slog.Warn("activity record failed", "error", err)
	}

	writeJSON(w, http.StatusOK, result)
}

// persistSync upserts synced clients and projects into the local store.
// Failures are logged; the sync response is returned regardless.
func (f *Freshbooks) persistSync(ctx context.Context, result *freshbooks.SyncResult) {
	if f.clients == nil {
		return
	}

	clients, err := freshbooks.ParseClients(result.Clients)
	if err != nil {
		slog.Warn("freshbooks clients payload not parseable", "error", err)
	}
	for _, rec := range clients {
		err := f.clients.UpsertByFreshbooksID(ctx, &models.Client{
			FreshbooksID: strconv.FormatInt(rec.ID, 10),
			Name:         rec.DisplayName(),
			Email:        rec.Email,
			Phone:        rec.Phone,
		})
		if err != nil {
			slog.Warn("freshbooks client upsert failed", "freshbooksId", rec.ID, "error", err)
		}
	}

	projects, err := freshbooks.ParseProjects(result.Projects)
	if err != nil {
		slog.Warn("freshbooks projects payload not parseable", "error", err)
	}
	for _, rec := range projects {
		status := models.ProjectCompleted
		if rec.Active {
			status = models.ProjectActive
		}
		p := &models.Project{
			FreshbooksID: strconv.FormatInt(rec.ID, 10),
			Name:         rec.Title,
			Description:  rec.Description,
			Status:       status,
		}
		if due, err := time.Parse("2006-01-02", rec.DueDate); err == nil {
			p.DueDate = &due
		}
		if err := f.clients.UpsertProjectByFreshbooksID(ctx, p); err != nil {
			slog.Warn("freshbooks project upsert failed", "freshbooksId", rec.ID, "error", err)
		}
	}
}
