package category

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/inklet-blog/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts category routes. Mutations require the admin role.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	cats := rg.Group("/categories")
	cats.GET("", h.list)
	cats.GET("/:identifier", h.getByIdentifier)

	admin := cats.Group("", authMW, adminMW)
	admin.POST("", h.create)
	admin.PUT("/:identifier", h.update)
	admin.DELETE("/:identifier", h.delete)
}

// list GET /categories
func (h *Handler) list(c *gin.Context) {
	cats, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, cats)
}

// getByIdentifier GET /categories/:identifier
func (h *Handler) getByIdentifier(c *gin.Context) {
	cat, err := h.svc.GetByIdentifier(c.Param("identifier"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if cat == nil {
		response.NotFound(c, "Category not found")
		return
	}
	response.OK(c, cat)
}

// create POST /categories  [admin]
func (h *Handler) create(c *gin.Context) {
	var dto CreateCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if errs := dto.Validate(); !errs.Empty() {
		response.ValidationFailed(c, errs)
		return
	}

	cat, err := h.svc.Create(&dto)
	if err != nil {
		if errors.Is(err, ErrNameTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, cat)
}

// update PUT /categories/:identifier  [admin]
func (h *Handler) update(c *gin.Context) {
	var dto UpdateCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if errs := dto.Validate(); !errs.Empty() {
		response.ValidationFailed(c, errs)
		return
	}

	cat, err := h.svc.Update(c.Param("identifier"), &dto)
	if err != nil {
		if errors.Is(err, ErrNameTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	if cat == nil {
		response.NotFound(c, "Category not found")
		return
	}
	response.OK(c, cat)
}

// delete DELETE /categories/:identifier  [admin]
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("identifier")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Category not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{})
}
