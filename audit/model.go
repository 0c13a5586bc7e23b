// audit/model.go
package audit

import (
	"encoding/json"
	"time"
)

// AuditLog is one access-state transition or session event.
type AuditLog struct {
	EventID                string          `json:"eventId,omitempty"`
	Timestamp              time.Time       `json:"timestamp"`
	Event                  string          `json:"event"`
	UserID                 string          `json:"userId"`
	Role                   string          `json:"role,omitempty"`
	PreviousClassification string          `json:"previousClassification,omitempty"`
	Classification         string          `json:"classification,omitempty"`
	AccessGranted          bool            `json:"accessGranted"`
	PlacementID            string          `json:"placementId,omitempty"`
	ChangeDetails          json.RawMessage `json:"changeDetails,omitempty"`
}
