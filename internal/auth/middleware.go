package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type principalKey struct{}

var tracer = otel.Tracer("github.com/clinic-management/clinic-service/auth")

// MetricsRecorder records authentication failures by reason
type MetricsRecorder interface {
	RecordAuthFailure(ctx context.Context, reason string)
}

// authFailure is a rejected credential: reason feeds metrics, message goes to the client
type authFailure struct {
	reason  string
	message string
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header
func bearerToken(r *http.Request) (string, *authFailure) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", &authFailure{"missing_authorization", "Authorization header required"}
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", &authFailure{"invalid_header_format", "Authorization header must be Bearer <token>"}
	}
	return strings.TrimSpace(token), nil
}

// Middleware authenticates the bearer token and stores the Principal in the request context
func Middleware(ver Verifier, metrics MetricsRecorder, log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracer.Start(r.Context(), "auth.authenticate", trace.WithSpanKind(trace.SpanKindInternal))
			defer span.End()

			token, failure := bearerToken(r)
			var pr *Principal
			if failure == nil {
				var err error
				if pr, err = ver.ParseAndVerifyToken(token); err != nil {
					log.WithError(err).WithField("path", r.URL.Path).Warn("Rejected bearer token")
					failure = &authFailure{"invalid_token", "Invalid or expired token"}
				}
			}

			if failure != nil {
				span.SetStatus(codes.Error, failure.reason)
				span.SetAttributes(attribute.String("auth.failure", failure.reason))
				if metrics != nil {
					metrics.RecordAuthFailure(ctx, failure.reason)
				}
				respondError(w, http.StatusUnauthorized, "unauthenticated", failure.message)
				return
			}

			span.SetAttributes(
				attribute.String("user.id", pr.UserID),
				attribute.StringSlice("user.roles", pr.Roles),
			)
			next.ServeHTTP(w, r.WithContext(withPrincipal(ctx, pr)))
		})
	}
}

// RequirePermission lets the request through only when the caller's roles grant permission
func RequirePermission(permission string, perms Permissions, log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := tracer.Start(r.Context(), "auth.authorize",
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attribute.String("auth.permission", permission)),
			)
			defer span.End()

			pr, ok := FromContext(r.Context())
			if !ok {
				span.SetStatus(codes.Error, "no principal")
				respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
				return
			}

			if !perms.Allows(pr.Roles, permission) {
				log.WithFields(logrus.Fields{
					"user":       pr.UserID,
					"roles":      pr.Roles,
					"permission": permission,
				}).Warn("Permission denied")
				span.SetStatus(codes.Error, "forbidden")
				respondError(w, http.StatusForbidden, "forbidden", "Missing permission "+permission)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func withPrincipal(ctx context.Context, pr *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, pr)
}

// FromContext returns the Principal set by Middleware
func FromContext(ctx context.Context) (*Principal, bool) {
	pr, ok := ctx.Value(principalKey{}).(*Principal)
	return pr, ok && pr != nil
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   errorType,
		"message": message,
	})
}
