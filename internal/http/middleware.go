package http

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/Festongithub/onesoko-storefront/internal/monitor"
	"github.com/go-chi/chi/v5"
)

type contextKey string

const ownerIDKey contextKey = "owner_id"

// SessionMiddleware resolves the cart owner for the request. A bearer
// token identifies the user (the token itself stays opaque here; the
// backend validates it), an X-Session-ID header identifies a guest
// session. Requests with neither get no owner and cart endpoints reject
// them.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID := ""

		if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			token := strings.TrimPrefix(auth, "Bearer ")
			if token != "" {
				// Hash the token so raw credentials never become a
				// storage key or file name.
				sum := sha256.Sum256([]byte(token))
				ownerID = hex.EncodeToString(sum[:16])
			}
		}
		if ownerID == "" {
			ownerID = strings.TrimSpace(r.Header.Get("X-Session-ID"))
		}

		ctx := context.WithValue(r.Context(), ownerIDKey, ownerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ownerFromContext(ctx context.Context) string {
	if ownerID, ok := ctx.Value(ownerIDKey).(string); ok {
		return ownerID
	}
	return ""
}

// MonitorMiddleware counts requests per route pattern for the debug
// snapshot. With monitoring disabled (nil monitor) it is a pass-through.
func MonitorMiddleware(m *monitor.Monitor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)

			// Route pattern is only known after routing has run;
			// recording it keeps counter cardinality bounded.
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					m.Record(r.Method + " " + pattern)
					return
				}
			}
			m.Record(r.Method + " " + r.URL.Path)
		})
	}
}
