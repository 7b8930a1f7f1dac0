package middleware

import (
	"net/http"

	"github.com/mjgrant/bookrec-api/internal/api/shared"
)

// TraceID assigns every request a fresh trace ID, carried in the request
// context and echoed in error responses and logs.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
