// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity is one entry in the dashboard's recent-activity feed.
type Activity struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"` // "user", "sync", "branding", ...
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Stats holds the aggregate counters shown on the dashboard.
type Stats struct {
	ClientCount     int `json:"clientCount"`
	ActiveProjects  int `json:"activeProjects"`
	PendingInvoices int `json:"pendingInvoices"`
	NewInquiries    int `json:"newInquiries"`
}
