package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/masjid-digital/admin-backend/api/responses"
	pkgerrors "github.com/masjid-digital/admin-backend/pkg/errors"
	"github.com/masjid-digital/admin-backend/pkg/logger"
)

// Recoverer turns panics into 500 responses instead of dropping the
// connection. Keep this outermost so it covers the rest of the stack.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err := pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("panic: %v", rec))
					if logg != nil {
						ctx := logg.WithField(r.Context(), "stack", string(debug.Stack()))
						logg.Error(ctx, "panic recovered", err)
					}
					responses.WriteError(r.Context(), logg, w, err)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
