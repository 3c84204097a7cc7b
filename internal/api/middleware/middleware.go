package middleware

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/ZertGraf/team-feedback/internal/api/handler"
	"github.com/ZertGraf/team-feedback/internal/domain"
	"github.com/ZertGraf/team-feedback/internal/pkg/logger"
	"github.com/go-chi/chi/v5/middleware"
)

var errPanic = errors.New("panic recovered")

// RequestLogger creates HTTP request logging middleware
func RequestLogger(logger *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"member_id", r.Header.Get(handler.ViewerHeader),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// Security adds basic security headers
func Security() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("Cache-Control", "no-store")
			next.ServeHTTP(w, r)
		})
	}
}

// Recovery recovers from panics and logs them
func Recovery(logger *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						"error", rec,
						"stack", string(debug.Stack()),
					)

					handler.WriteError(w, errPanic, logger)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// Timeout adds request timeout
func Timeout(timeout time.Duration) func(next http.Handler) http.Handler {
	return middleware.Timeout(timeout)
}

// ViewerResolver finds the current member for an id.
type ViewerResolver interface {
	ResolveViewer(ctx context.Context, id int64) (domain.TeamMember, error)
}

// Viewer resolves the X-Member-ID header into the current member. Requests
// without a usable header get 401.
func Viewer(resolver ViewerResolver, logger *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(handler.ViewerHeader)
			id, err := strconv.ParseInt(raw, 10, 64)
			if raw == "" || err != nil {
				handler.WriteError(w, domain.ErrUnauthorized, logger)
				return
			}

			viewer, err := resolver.ResolveViewer(r.Context(), id)
			if err != nil {
				handler.WriteError(w, domain.ErrUnauthorized, logger)
				return
			}

			next.ServeHTTP(w, r.WithContext(handler.WithViewer(r.Context(), viewer)))
		})
	}
}
