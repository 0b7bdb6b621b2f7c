package services

import (
	"encoding/json"
	"reflect"

	"gorm.io/gorm"

	"expensetracker/internal/logger"
	"expensetracker/internal/models"
)

// auditIgnoredFields are bookkeeping columns left out of change sets.
var auditIgnoredFields = map[string]bool{"id": true, "created_at": true, "updated_at": true}

// auditService records API mutations in the audit_logs table.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log stores one audit entry. Failures are logged and swallowed so the
// mutation that triggered them still succeeds.
func (s *auditService) Log(action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	entry := &models.AuditLog{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
	}

	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Warnw("Audit changes not serializable", "action", action, "error", err)
			data = []byte("{}")
		}
		entry.Changes = string(data)
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("Failed to write audit entry",
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
			"error", err,
		)
	}
}

// AuditDiff returns the fields that differ between before and after as
// {"field": {"from": old, "to": new}}. A nil before records only "to"
// values and a nil after records only "from" values. Both sides are
// compared in their JSON form.
func AuditDiff(before, after any) map[string]any {
	from := auditFields(before)
	to := auditFields(after)

	changes := make(map[string]any)
	for field, old := range from {
		if auditIgnoredFields[field] {
			continue
		}
		cur, ok := to[field]
		switch {
		case !ok:
			changes[field] = map[string]any{"from": old}
		case !reflect.DeepEqual(old, cur):
			changes[field] = map[string]any{"from": old, "to": cur}
		}
	}
	for field, cur := range to {
		if auditIgnoredFields[field] {
			continue
		}
		if _, ok := from[field]; !ok {
			changes[field] = map[string]any{"to": cur}
		}
	}
	return changes
}

func auditFields(v any) map[string]any {
	if v == nil || reflect.ValueOf(v).Kind() == reflect.Pointer && reflect.ValueOf(v).IsNil() {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	return fields
}
