package worker

import (
	"github.com/spec-kit/identity-service/internal/service"
)

// StartAuditWorker registers the auth event subscribers.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
