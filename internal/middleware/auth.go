package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inklet-blog/core/internal/models"
	"github.com/inklet-blog/core/internal/pkg/jwt"
	"github.com/inklet-blog/core/internal/pkg/response"
	"gorm.io/gorm"
)

const contextKeyIdentity = "identity"

// Identity is the authenticated account resolved from a request's credential.
type Identity struct {
	ID   string
	Role models.Role
}

// CanModify reports whether the identity may update or delete a resource
// owned by authorID: permitted for the owner and for admins.
func (i Identity) CanModify(authorID string) bool {
	return i.Role == models.RoleAdmin || i.ID == authorID
}

// Auth returns a middleware that enforces bearer token authentication.
// The identity is resolved statelessly on every request: the token is
// parsed and the account row re-read, so no session state is held.
func Auth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, err := ResolveIdentity(db, extractToken(c))
		if err != nil {
			response.Unauthorized(c, "")
			return
		}
		c.Set(contextKeyIdentity, ident)
		c.Next()
	}
}

// OptionalAuth resolves the identity if a valid token is present, but does
// not block the request.
func OptionalAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ident, err := ResolveIdentity(db, extractToken(c)); err == nil {
			c.Set(contextKeyIdentity, ident)
		}
		c.Next()
	}
}

// RequireRoles returns a middleware that rejects authenticated requests
// whose role is not in the allowed set. Must run after Auth.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := CurrentIdentity(c)
		if !ok {
			response.Unauthorized(c, "")
			return
		}
		for _, r := range roles {
			if ident.Role == r {
				c.Next()
				return
			}
		}
		response.Forbidden(c, "Role '"+string(ident.Role)+"' is not allowed to access this route")
	}
}

// ResolveIdentity validates a raw token and loads the account it names.
func ResolveIdentity(db *gorm.DB, rawToken string) (Identity, error) {
	token := normalizeToken(rawToken)
	if token == "" {
		return Identity{}, errors.New("token is required")
	}

	claims, err := jwt.Parse(token)
	if err != nil {
		return Identity{}, err
	}

	var account models.AccountModel
	if err := db.Select("id, role").First(&account, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Identity{}, errors.New("account no longer exists")
		}
		return Identity{}, err
	}

	return Identity{ID: account.ID, Role: account.Role}, nil
}

// CurrentIdentity extracts the authenticated identity from context.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(contextKeyIdentity)
	if !ok {
		return Identity{}, false
	}
	ident, ok := v.(Identity)
	return ident, ok
}

// IsAuthenticated reports whether the request carries a valid identity.
func IsAuthenticated(c *gin.Context) bool {
	_, ok := CurrentIdentity(c)
	return ok
}

func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		return auth
	}
	return c.Query("token")
}

func normalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
