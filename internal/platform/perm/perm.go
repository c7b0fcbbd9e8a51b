// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

/*
Package perm implements the composable authorization model for Revio.

A permission is a predicate over (actor, HTTP method, target object) that is
evaluated in two phases:

  - Request-level: before any specific resource is loaded (listing, creation).
  - Object-level: once the target resource is in hand (update, deletion).

Rules compose with logical OR only — [AnyOf] short-circuits on the first rule
that authorizes the request. AND-composition is intentionally absent because
no endpoint requires it.

# Status Mapping

A denied check yields 401 when the actor is anonymous and 403 otherwise, via
[Authorize] and [AuthorizeObject].
*/
package perm

import (
	"net/http"

	"github.com/quangdm/revio/internal/platform/apperr"
	"github.com/quangdm/revio/internal/platform/sec"
)

// Safe reports whether the HTTP method is read-only.
func Safe(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// Rule is a single permission predicate.
//
// Request decides the coarse, object-free phase. Object decides the fine
// phase given the owner identity of the loaded resource; a nil Object falls
// back to Request, which matches rules that make no per-object distinction.
type Rule struct {
	// Name identifies the rule in logs and tests.
	Name string

	// Request evaluates the object-free phase. The actor is nil for
	// anonymous requests.
	Request func(actor *sec.AuthClaims, method string) bool

	// Object evaluates the per-object phase. ownerID is the user ID of the
	// resource's author; it is empty for resources without an owner.
	Object func(actor *sec.AuthClaims, method string, ownerID string) bool
}

// allowsRequest runs the request-level phase.
func (r Rule) allowsRequest(actor *sec.AuthClaims, method string) bool {
	return r.Request != nil && r.Request(actor, method)
}

// allowsObject runs the object-level phase, falling back to the
// request-level predicate when no object-level one is defined.
func (r Rule) allowsObject(actor *sec.AuthClaims, method, ownerID string) bool {
	if r.Object != nil {
		return r.Object(actor, method, ownerID)
	}
	return r.allowsRequest(actor, method)
}

// # Base Rules

// Admin authorizes authenticated actors holding the admin role.
var Admin = Rule{
	Name: "admin",
	Request: func(actor *sec.AuthClaims, method string) bool {
		return actor != nil && actor.IsAdmin()
	},
}

// Moderator authorizes authenticated actors holding at least the moderator
// role. Admins pass implicitly through the role hierarchy.
var Moderator = Rule{
	Name: "moderator",
	Request: func(actor *sec.AuthClaims, method string) bool {
		return actor != nil && actor.IsModerator()
	},
}

// ReadOnly authorizes safe methods for everyone, including anonymous actors.
var ReadOnly = Rule{
	Name: "read_only",
	Request: func(actor *sec.AuthClaims, method string) bool {
		return Safe(method)
	},
}

// AuthorOrReadOnly authorizes reads for everyone and unsafe methods for
// authenticated actors; at the object level the actor must own the resource
// unless the method is safe.
var AuthorOrReadOnly = Rule{
	Name: "author_or_read_only",
	Request: func(actor *sec.AuthClaims, method string) bool {
		return actor != nil || Safe(method)
	},
	Object: func(actor *sec.AuthClaims, method, ownerID string) bool {
		if Safe(method) {
			return true
		}
		return actor != nil && ownerID != "" && actor.UserID == ownerID
	},
}

// AdminOrReadOnly authorizes safe methods for everyone and unsafe methods
// for admins only. No separate object-level phase is defined.
var AdminOrReadOnly = Rule{
	Name: "admin_or_read_only",
	Request: func(actor *sec.AuthClaims, method string) bool {
		return Safe(method) || (actor != nil && actor.IsAdmin())
	},
}

// # Composition

// AnyOf combines rules with logical OR, short-circuiting per phase.
func AnyOf(rules ...Rule) Rule {
	return Rule{
		Name: "any_of",
		Request: func(actor *sec.AuthClaims, method string) bool {
			for _, rule := range rules {
				if rule.allowsRequest(actor, method) {
					return true
				}
			}
			return false
		},
		Object: func(actor *sec.AuthClaims, method, ownerID string) bool {
			for _, rule := range rules {
				if rule.allowsObject(actor, method, ownerID) {
					return true
				}
			}
			return false
		},
	}
}

// # Endpoint Policies

// CatalogWrite guards titles, categories and genres: everyone reads,
// only admins mutate.
var CatalogWrite = AdminOrReadOnly

// ReviewMutation guards reviews and comments: safe methods always pass,
// creation requires authentication, mutation requires the author, a
// moderator, or an admin.
var ReviewMutation = AnyOf(AuthorOrReadOnly, ReadOnly, Admin, Moderator)

// # Evaluation

// Authorize runs the request-level phase of a rule and maps a denial to the
// proper transport error: 401 for anonymous actors, 403 otherwise.
func Authorize(actor *sec.AuthClaims, method string, rule Rule) error {
	if rule.allowsRequest(actor, method) {
		return nil
	}
	return denied(actor)
}

// AuthorizeObject runs the object-level phase of a rule against the loaded
// resource's owner.
func AuthorizeObject(actor *sec.AuthClaims, method, ownerID string, rule Rule) error {
	if rule.allowsObject(actor, method, ownerID) {
		return nil
	}
	return denied(actor)
}

// denied builds the rejection error for a failed check.
func denied(actor *sec.AuthClaims) error {
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}
	return apperr.Forbidden("Insufficient permissions")
}
