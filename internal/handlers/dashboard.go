// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"clientportal/internal/models"
)

// ClientSource is the subset of store.ClientStore the dashboard needs.
type ClientSource interface {
	List(ctx context.Context) ([]models.Client, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

// ActivitySource lists recent activity feed entries.
// Satisfied by store.ActivityStore.
type ActivitySource interface {
	Recent(ctx context.Context, limit int) ([]models.Activity, error)
}

// Dashboard serves the authenticated dashboard endpoints.
type Dashboard struct {
	clients    ClientSource
	activities ActivitySource
}

// NewDashboard creates the dashboard handler group.
func NewDashboard(clients ClientSource, activities ActivitySource) *Dashboard {
	return &Dashboard{clients: clients, activities: activities}
}

// Stats returns the aggregate dashboard counters.
func (d *Dashboard) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := d.clients.Stats(r.Context())
	if err != nil {
		slog.Error("stats query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not load statistics.")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Clients lists all client records. Admin only (enforced by the router).
func (d *Dashboard) Clients(w http.ResponseWriter, r *http.Request) {
	clients, err := d.clients.List(r.Context())
	if err != nil {
		slog.Error("clients query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not load clients.")
		return
	}
	if clients == nil {
		clients = []models.Client{}
	}
	writeJSON(w, http.StatusOK, clients)
}

// Activities returns the recent activity feed. An optional "limit" query
// parameter caps the number of entries.
func (d *Dashboard) Activities(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer.")
			return
		}
		limit = n
	}

	activities, err := d.activities.Recent(r.Context(), limit)
	if err != nil {
		slog.Error("activities query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not load activities.")
		return
	}
	if activities == nil {
		activities = []models.Activity{}
	}
	writeJSON(w, http.StatusOK, activities)
}
