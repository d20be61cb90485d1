package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"focolare/internal/logger"
	"focolare/internal/models"
)

// auditService records mutations for traceability. Logging is best effort:
// a failed audit write never fails the operation it describes.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

func (s *auditService) Log(profileID, householdID, action, resourceType, resourceID string, changes map[string]interface{}) {
	entry := &models.AuditLog{
		ProfileID:    profileID,
		HouseholdID:  householdID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
	if changes != nil {
		if data, err := json.Marshal(changes); err == nil {
			entry.Changes = string(data)
		}
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Warnw("audit log write failed",
			"action", action,
			"resource_type", resourceType,
			"error", err.Error(),
		)
	}
}
