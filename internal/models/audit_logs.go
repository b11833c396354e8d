package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records one admin mutation for the activity trail.
type AuditLog struct {
	ID         uuid.UUID      `json:"id" db:"id"`
	Action     string         `json:"action" db:"action"`
	EntityType string         `json:"entityType" db:"entity_type"`
	EntityID   string         `json:"entityId" db:"entity_id"`
	AdminID    *uuid.UUID     `json:"adminId" db:"admin_id"`
	Detail     map[string]any `json:"detail" db:"detail"`
	CreatedAt  time.Time      `json:"createdAt" db:"created_at"`
}

// Audit actions.
const (
	AuditActionCreate       = "create"
	AuditActionUpdate       = "update"
	AuditActionDelete       = "delete"
	AuditActionStatusChange = "status_change"
	AuditActionSeed         = "seed"
)
