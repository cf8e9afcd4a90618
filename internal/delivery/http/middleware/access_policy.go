package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	deliverycontext "passport/internal/delivery/context"
	domainerrors "passport/internal/domain/errors"
)

// AccessPolicy classifies a route's authentication requirement.
type AccessPolicy int

const (
	// PolicyPublic routes are served regardless of authentication state.
	PolicyPublic AccessPolicy = iota

	// PolicyAuthenticated routes require a resolved identity.
	PolicyAuthenticated
)

// PolicyRule binds a path pattern to an access policy. A pattern is either an
// exact path or a prefix pattern ending in "/*".
type PolicyRule struct {
	Pattern string
	Policy  AccessPolicy
}

// PolicyMiddleware enforces the route policy table. Identity resolution
// happens earlier, in AuthMiddleware.Resolve; this middleware only decides
// whether an unauthenticated request may proceed.
type PolicyMiddleware struct {
	rules []PolicyRule
}

// NewPolicyMiddleware creates the enforcement middleware from an ordered rule
// table. The first matching rule wins; a path no rule matches is treated as
// PolicyAuthenticated, so forgetting to register a route fails closed.
func NewPolicyMiddleware(rules []PolicyRule) *PolicyMiddleware {
	return &PolicyMiddleware{rules: rules}
}

// Enforce rejects unauthenticated requests to protected paths with 401.
func (m *PolicyMiddleware) Enforce(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.policyFor(c.Request().URL.Path) == PolicyPublic {
			return next(c)
		}

		if deliverycontext.GetIdentity(c) == nil {
			return domainerrors.ErrUnauthorized.WrapMessage("authentication required")
		}

		return next(c)
	}
}

func (m *PolicyMiddleware) policyFor(path string) AccessPolicy {
	for _, rule := range m.rules {
		if matchPattern(rule.Pattern, path) {
			return rule.Policy
		}
	}

	return PolicyAuthenticated
}

// matchPattern matches an exact path, or any path under a "/*" prefix pattern.
func matchPattern(pattern, path string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}

	return pattern == path
}
