// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package middleware

import (
	"net/http"
	"strings"

	"github.com/quangdm/revio/internal/platform/ctxutil"
	"github.com/quangdm/revio/internal/platform/perm"
	"github.com/quangdm/revio/internal/platform/respond"
	"github.com/quangdm/revio/internal/platform/sec"
)

// # Identity & Access Control

// TokenVerifier abstracts JWT validation for the authentication middleware.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

// Authenticate parses the Authorization header and, when a valid bearer token
// is present, attaches the user claims to the request context.
//
// It never rejects a request on its own: anonymous traffic passes through
// untouched so read-only endpoints stay public. An invalid or expired token is
// treated as anonymous. Enforcement happens downstream via RequireAuth,
// RequireRole or RequirePermission.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Extract the bearer token from the Authorization header
			authHeader := request.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				next.ServeHTTP(writer, request)
				return
			}
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			// 2. Verify the token signature and standard claims
			claims, err := verifier.VerifyToken(tokenString)
			if err != nil {
				// Malformed or expired tokens degrade to anonymous access
				next.ServeHTTP(writer, request)
				return
			}

			// 3. Attach the verified identity to the request context
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that carry no authenticated identity.
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			if ctxutil.GetAuthUser(request.Context()) == nil {
				writeError(writer, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// RequireRole allows the request through only when the authenticated user's
// role is at least the given minimum. Anonymous requests receive 401, while
// authenticated users with an insufficient role receive 403.
func RequireRole(minimum sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			claims := ctxutil.GetAuthUser(request.Context())
			if claims == nil {
				writeError(writer, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
				return
			}

			if !claims.Role.AtLeast(minimum) {
				writeError(writer, http.StatusForbidden, "FORBIDDEN", "You do not have permission to perform this action")
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// RequirePermission runs the request-level phase of a permission rule before
// the handler executes. Object-level checks, which need the loaded resource,
// remain the responsibility of the domain services.
func RequirePermission(rule perm.Rule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			actor := ctxutil.GetAuthUser(request.Context())
			if err := perm.Authorize(actor, request.Method, rule); err != nil {
				respond.Error(writer, request, err)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// GetUser returns the authenticated claims for the request, or nil when anonymous.
func GetUser(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}
