package interfaces

import (
	"context"
	"net/http"
)

const userIDHeader = "X-User-ID"

// UserIdentityMiddleware resolves the acting user from the X-User-ID header
// and stores it on the request context. Requests without the header are
// rejected before they reach a handler.
func UserIdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(userIDHeader)
		if userID == "" {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		ctx := context.WithValue(r.Context(), "userID", userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFromRequest(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value("userID").(string)
	return userID, ok
}
