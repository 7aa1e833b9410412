// Package shield provides the HTTP middleware stack of the protoboard server:
// security headers, HEAD handling, form body limits, request tracing and
// flash messages.
//
// Usage:
//
//	r := chi.NewRouter()
//	for _, mw := range shield.DefaultStack(logger) {
//	    r.Use(mw)
//	}
package shield

import (
	"context"
	"log/slog"
	"net/http"
)

type contextKey string

const (
	// LoggerKey is the context key for the per-request structured logger.
	LoggerKey contextKey = "shield_logger"

	// FlashKey is the context key for flash messages.
	FlashKey contextKey = "shield_flash"
)

// MaxFormBytes caps form-encoded request bodies in DefaultStack.
const MaxFormBytes = 64 * 1024

// FlashMessage is a one-time notification shown on the next page load.
type FlashMessage struct {
	Type    string // FlashSuccess or FlashError
	Message string
}

// GetFlash retrieves the flash message from the request context.
func GetFlash(ctx context.Context) *FlashMessage {
	v, _ := ctx.Value(FlashKey).(*FlashMessage)
	return v
}

// DefaultStack returns the middleware stack of the editor server, ordered
// HeadToGet → SecurityHeaders → MaxFormBody → RequestLog → Flash.
func DefaultStack(logger *slog.Logger) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		HeadToGet,
		SecurityHeaders(DefaultHeaders()),
		MaxFormBody(MaxFormBytes),
		RequestLog(logger),
		Flash,
	}
}

// HeadToGet converts HEAD requests to GET so routes registered with r.Get()
// answer HEAD too. net/http drops the body of HEAD responses.
func HeadToGet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			r.Method = http.MethodGet
		}
		next.ServeHTTP(w, r)
	})
}

// MaxFormBody limits the body of form-encoded requests to maxBytes. Other
// content types pass through; JSON handlers apply their own limit.
func MaxFormBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Content-Type") == "application/x-www-form-urlencoded" {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
