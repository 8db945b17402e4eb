package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/saleslt/catalog/pkg/correlationid"
)

// CorrelationID reads the correlation ID from the request, generating one when
// absent, and echoes it on the response.
func CorrelationID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid := r.Header.Get(correlationid.Header)
			if cid == "" {
				cid = uuid.NewString()
			}

			ctx := correlationid.NewContext(r.Context(), cid)
			w.Header().Set(correlationid.Header, cid)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
