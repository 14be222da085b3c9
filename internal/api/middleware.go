package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"backoffice-service/internal/auth"
	"backoffice-service/internal/models"
	"backoffice-service/internal/util"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	ctxUsername = "auth.username"
	ctxRole     = "auth.role"
	ctxUserID   = "auth.user_id"
)

// SessionCookie is the browser session cookie name.
const SessionCookie = "SESSION_ID"

// Authenticator resolves the two credential kinds the service accepts.
type Authenticator interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
	GetSession(ctx context.Context, sessionID string) (*auth.Session, error)
}

// RouteRule gates a path prefix behind a set of roles. Rules are
// checked in order; the first matching prefix decides.
type RouteRule struct {
	Prefix string
	// Roles allowed through. Empty means public; a single "*" means any
	// authenticated identity.
	Roles []string
}

// DefaultRouteRules is the route table, most specific first. Everything
// that matches no rule requires authentication.
func DefaultRouteRules() []RouteRule {
	public := []string{
		"/api/v1/auth", "/api/auth",
		"/health", "/metrics",
		"/css", "/js", "/static", "/favicon.ico",
		"/register", "/perform_login", "/perform_logout", "/error",
	}
	rules := make([]RouteRule, 0, len(public)+6)
	for _, prefix := range public {
		rules = append(rules, RouteRule{Prefix: prefix})
	}
	rules = append(rules,
		RouteRule{Prefix: "/api/v1/admin", Roles: []string{models.RoleAdministrator}},
		RouteRule{Prefix: "/api/admin", Roles: []string{models.RoleAdministrator}},
		RouteRule{Prefix: "/admin", Roles: []string{models.RoleAdministrator}},
		RouteRule{Prefix: "/api/manager", Roles: []string{models.RoleAdministrator, models.RoleManager}},
		RouteRule{Prefix: "/api/client", Roles: []string{models.RoleAdministrator, models.RoleManager, models.RoleClient}},
		RouteRule{Prefix: "/profile", Roles: []string{"*"}},
	)
	return rules
}

func matchRule(rules []RouteRule, path string) *RouteRule {
	for i := range rules {
		if strings.HasPrefix(path, rules[i].Prefix) {
			return &rules[i]
		}
	}
	return nil
}

// AuthMiddleware authenticates by bearer token or session cookie and
// enforces the route table. The index page is the only path that is
// public without a rule.
func AuthMiddleware(authn Authenticator, rules []RouteRule) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		rule := matchRule(rules, path)

		if rule != nil && len(rule.Roles) == 0 {
			c.Next()
			return
		}
		if rule == nil && path == "/" {
			c.Next()
			return
		}

		username, role, userID, ok := identify(c, authn)
		if !ok {
			unauthorized(c, "authentication required")
			return
		}

		if rule != nil && !roleAllowed(rule.Roles, role) {
			forbidden(c, "insufficient role")
			return
		}

		c.Set(ctxUsername, username)
		c.Set(ctxRole, role)
		c.Set(ctxUserID, userID)
		c.Next()
	}
}

// identify resolves the caller from the Authorization header first,
// then from the session cookie.
func identify(c *gin.Context, authn Authenticator) (username, role string, userID int64, ok bool) {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		claims, err := authn.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return "", "", 0, false
		}
		return claims.Username, claims.Role, 0, true
	}

	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie == "" {
		return "", "", 0, false
	}
	session, err := authn.GetSession(c.Request.Context(), cookie)
	if err != nil || session == nil {
		return "", "", 0, false
	}
	return session.Username, session.Role, session.UserID, true
}

func roleAllowed(allowed []string, role string) bool {
	for _, a := range allowed {
		if a == "*" || a == role {
			return true
		}
	}
	return false
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, FailureResponse{
		Success: false,
		Message: message,
		Path:    c.Request.URL.Path,
	})
}

func forbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, FailureResponse{
		Success: false,
		Message: message,
		Path:    c.Request.URL.Path,
	})
}

// MetricsMiddleware records request count and latency.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		util.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		util.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}
