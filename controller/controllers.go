// controller/controllers.go
package controller

import (
	"github.com/dev-mohitbeniwal/offerwall/audit"
	"github.com/dev-mohitbeniwal/offerwall/service"
)

type Controllers struct {
	Session   *SessionController
	Access    *AccessController
	Placement *PlacementController
	Audit     *AuditController
}

// InitializeControllers builds the HTTP controllers. auditService may be nil,
// in which case the audit trail is not served.
func InitializeControllers(services *service.Services, auditService audit.Service) *Controllers {
	controllers := &Controllers{
		Session:   NewSessionController(services.Approval),
		Access:    NewAccessController(services.Approval),
		Placement: NewPlacementController(services.Approval),
	}
	if auditService != nil {
		controllers.Audit = NewAuditController(services.Approval, auditService)
	}
	return controllers
}
