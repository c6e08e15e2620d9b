package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/veritasnetwork/veritas-core/internal/domain"
)

type contextKey string

const callerContextKey contextKey = "caller"

// CallerHeader carries the sender address the enclosing ledger runtime has
// already authenticated. Signature verification is the host's job; this
// core trusts the header per the ledger boundary contract.
const CallerHeader = "X-Caller-Address"

// CallerFromContext returns the authenticated caller address, if any.
func CallerFromContext(ctx context.Context) (domain.Address, bool) {
	addr, ok := ctx.Value(callerContextKey).(domain.Address)
	return addr, ok
}

// CallerAuth requires a valid caller address header on every request it
// guards and stores the parsed address in the request context.
func CallerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(CallerHeader)
		if raw == "" {
			writeError(w, http.StatusUnauthorized, "missing caller address header")
			return
		}

		addr, err := domain.ParseAddress(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid caller address")
			return
		}

		ctx := context.WithValue(r.Context(), callerContextKey, addr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
