package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/pkg/session"
)

// Redirect targets of the authenticated flows.
const (
	PathLogin      = "/api/v1/login"
	PathGrades     = "/api/v1/grades"
	PathTrimesters = "/api/v1/trimesters"
	PathDashboard  = "/api/v1/admin/dashboard"
)

const sessionContextKey = "session"

// SessionMiddleware resolves the signed session cookie into a live
// server-side session and enforces the role gates.
type SessionMiddleware struct {
	store      *session.Store
	tokens     *session.TokenService
	cookieName string
	logger     zerolog.Logger
}

// NewSessionMiddleware creates a new SessionMiddleware
func NewSessionMiddleware(store *session.Store, tokens *session.TokenService, cookieName string, logger zerolog.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		store:      store,
		tokens:     tokens,
		cookieName: cookieName,
		logger:     logger,
	}
}

// Resolve attaches a session to every request. A missing, invalid or expired
// cookie silently degrades to a fresh anonymous session; anonymous sessions
// exist so flash messages survive redirects around login and logout.
func (m *SessionMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cookie, err := c.Cookie(m.cookieName); err == nil {
			if id, err := m.tokens.Validate(cookie); err == nil {
				if sess, ok := m.store.Get(id); ok {
					c.Set(sessionContextKey, sess)
					c.Next()
					return
				}
			}
		}

		sess := m.store.Create()
		m.setCookie(c, sess.ID)
		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests with a redirect to the login view.
func (m *SessionMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if sess == nil || !sess.IsAuthenticated() {
			if sess != nil {
				sess.PushFlash("Debes iniciar sesión para continuar", session.SeverityWarning)
			}
			c.Redirect(http.StatusSeeOther, PathLogin)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole rejects principals of any other role with a danger flash and a
// redirect to the caller's own home view. Runs after RequireAuth.
func (m *SessionMiddleware) RequireRole(role models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if sess == nil || sess.Role() != role {
			target := PathGrades
			if sess != nil {
				sess.PushFlash("No tienes permisos para realizar esta acción", session.SeverityDanger)
				if sess.Role() == models.RoleAdmin {
					target = PathDashboard
				}
				m.logger.Warn().
					Str("username", sess.Username()).
					Str("path", c.Request.URL.Path).
					Msg("Role gate rejected request")
			}
			c.Redirect(http.StatusSeeOther, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Renew rotates the request's session: the old one is destroyed and a fresh
// one takes its place, with a new cookie. Login rotates to defeat session
// fixation; logout rotates to an anonymous session that still carries the
// goodbye flash.
func (m *SessionMiddleware) Renew(c *gin.Context) *session.Session {
	if old := CurrentSession(c); old != nil {
		m.store.Destroy(old.ID)
	}
	sess := m.store.Create()
	m.setCookie(c, sess.ID)
	c.Set(sessionContextKey, sess)
	return sess
}

func (m *SessionMiddleware) setCookie(c *gin.Context, sessionID string) {
	signed, err := m.tokens.Issue(sessionID)
	if err != nil {
		m.logger.Error().Err(err).Msg("Failed to sign session cookie")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, signed, 0, "/", "", false, true)
}

// CurrentSession returns the session attached by Resolve, nil when absent.
func CurrentSession(c *gin.Context) *session.Session {
	value, exists := c.Get(sessionContextKey)
	if !exists {
		return nil
	}
	sess, ok := value.(*session.Session)
	if !ok {
		return nil
	}
	return sess
}
