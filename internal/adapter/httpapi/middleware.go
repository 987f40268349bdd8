package httpapi

import "net/http"

// Auth returns middleware that validates the authorization token carried by
// every request. Missing or mismatched tokens get 401 and the handler is
// never reached. Identity of the employee behind the terminal is a separate
// concern (see resolveEmployee).
func Auth(validToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}
			if header != validToken {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
