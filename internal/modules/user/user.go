// Package user exposes public account profiles.
package user

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inklet-blog/core/internal/models"
	"github.com/inklet-blog/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/:id", h.profile)
}

// profileResponse is the public view of an account: no email, no credential.
type profileResponse struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Role    models.Role `json:"role"`
	Bio     string      `json:"bio"`
	Created time.Time   `json:"createdAt"`
}

// profile GET /users/:id
func (h *Handler) profile(c *gin.Context) {
	var account models.AccountModel
	if err := h.db.First(&account, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Account not found")
			return
		}
		response.InternalError(c, err)
		return
	}

	response.OK(c, profileResponse{
		ID:      account.ID,
		Name:    account.Name,
		Role:    account.Role,
		Bio:     account.Bio,
		Created: account.CreatedAt,
	})
}
