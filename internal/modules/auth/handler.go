package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/inklet-blog/core/internal/middleware"
	"github.com/inklet-blog/core/internal/pkg/response"
)

// Handler handles auth HTTP requests.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts auth routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	a := rg.Group("/auth")
	a.POST("/register", h.register)
	a.POST("/login", h.login)
	a.GET("/me", authMW, h.me)
}

// register POST /auth/register
func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if errs := dto.Validate(); !errs.Empty() {
		response.ValidationFailed(c, errs)
		return
	}

	account, token, err := h.svc.Register(&dto)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	response.Created(c, sessionResponse{Token: token, User: ToAccountResponse(account)})
}

// login POST /auth/login
func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if errs := dto.Validate(); !errs.Empty() {
		response.ValidationFailed(c, errs)
		return
	}

	account, token, err := h.svc.Login(dto.Email, dto.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	response.OK(c, sessionResponse{Token: token, User: ToAccountResponse(account)})
}

// me GET /auth/me  [auth]
func (h *Handler) me(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)

	account, err := h.svc.GetByID(ident.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if account == nil {
		response.NotFound(c, "Account not found")
		return
	}
	response.OK(c, ToAccountResponse(account))
}
