package bootstrap

import "context"

// AuditLog is a lifecycle event of the process, not of a request.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

const (
	AuditServerStarted  = "SERVER_STARTED"
	AuditServerShutdown = "SERVER_SHUTDOWN"
	AuditAdminDefault   = "ADMIN_DEFAULT_PASSWORD"
)
