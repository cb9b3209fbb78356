package auth

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// Guard wraps route handlers with token and permission checks.
// A disabled Guard passes every request through untouched.
type Guard struct {
	enabled  bool
	verifier Verifier
	perms    Permissions
	metrics  MetricsRecorder
	log      logrus.FieldLogger
}

func NewGuard(enabled bool, verifier Verifier, perms Permissions, metrics MetricsRecorder, log logrus.FieldLogger) *Guard {
	return &Guard{
		enabled:  enabled,
		verifier: verifier,
		perms:    perms,
		metrics:  metrics,
		log:      log,
	}
}

// Enabled reports whether requests are authenticated
func (g *Guard) Enabled() bool {
	return g != nil && g.enabled
}

// Require protects h with the given permission
func (g *Guard) Require(permission string, h http.HandlerFunc) http.Handler {
	if !g.Enabled() {
		return h
	}
	return Middleware(g.verifier, g.metrics, g.log)(
		RequirePermission(permission, g.perms, g.log)(h),
	)
}
