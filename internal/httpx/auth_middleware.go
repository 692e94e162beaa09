package httpx

import (
	"net/http"
	"strings"

	"bookshelf/internal/platform/crypto"
)

const (
	CodeCredentialsRequired  = "credentials_required"
	CodeCredentialsBadFormat = "credentials_bad_format"
	CodeCredentialsBadScheme = "credentials_bad_scheme"
	CodeInvalidToken         = "invalid_token"
)

const badFormatMessage = "Format is Authorization: Bearer [token]"

// AuthMiddleware authenticates the bearer token and stores the caller on the request context.
// Missing or bad credentials are raised as KindUnauthorized failures.
func AuthMiddleware(secret string, errs *ErrorTranslator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				errs.Handle(w, r, Unauthorized(CodeCredentialsRequired, "No authorization token was found"))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[1] == "" {
				errs.Handle(w, r, Unauthorized(CodeCredentialsBadFormat, badFormatMessage))
				return
			}
			if !strings.EqualFold(parts[0], "Bearer") {
				errs.Handle(w, r, Unauthorized(CodeCredentialsBadScheme, badFormatMessage))
				return
			}
			token := parts[1]

			claims, err := crypto.ParseToken(secret, token)
			if err != nil {
				errs.Handle(w, r, Unauthorized(CodeInvalidToken, err.Error()))
				return
			}

			ctx := ContextWithUser(r.Context(), claims.Sub, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
