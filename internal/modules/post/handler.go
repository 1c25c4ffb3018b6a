package post

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/inklet-blog/core/internal/middleware"
	"github.com/inklet-blog/core/internal/pkg/pagination"
	"github.com/inklet-blog/core/internal/pkg/response"
	"github.com/inklet-blog/core/internal/pkg/validate"
	"gorm.io/gorm"
)

// Handler handles post HTTP requests.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts post routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	posts := rg.Group("/posts")

	posts.GET("", h.list)
	posts.GET("/:identifier", h.getByIdentifier)

	authed := posts.Group("", authMW)
	authed.POST("", h.create)
	authed.PUT("/:identifier", h.update)
	authed.DELETE("/:identifier", h.delete)
	authed.POST("/:identifier/comments", h.addComment)
}

// list GET /posts
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)

	var lq ListQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	posts, pag, err := h.svc.List(q, lq)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	items := make([]postResponse, len(posts))
	for i := range posts {
		items[i] = toResponse(&posts[i])
	}
	response.Paged(c, items, pag)
}

// getByIdentifier GET /posts/:identifier
// A successful read counts as a view: the counter is incremented by exactly
// one at the store and the response carries the incremented value.
func (h *Handler) getByIdentifier(c *gin.Context) {
	post, err := h.svc.GetByIdentifier(c.Param("identifier"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c, "Post not found")
		return
	}

	if err := h.svc.IncrementViewCount(post.ID); err != nil {
		response.InternalError(c, err)
		return
	}
	post.ViewCount++

	response.OK(c, toResponse(post))
}

// create POST /posts  [auth]
func (h *Handler) create(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)

	var dto CreatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if errs := dto.Validate(); !errs.Empty() {
		response.ValidationFailed(c, errs)
		return
	}

	post, err := h.svc.Create(ident.ID, &dto)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Created(c, toResponse(post))
}

// update PUT /posts/:identifier  [auth, owner-or-admin]
func (h *Handler) update(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)

	var dto UpdatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if errs := dto.Validate(); !errs.Empty() {
		response.ValidationFailed(c, errs)
		return
	}

	post, err := h.svc.Update(c.Param("identifier"), ident, &dto)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c, "Post not found")
		return
	}
	response.OK(c, toResponse(post))
}

// delete DELETE /posts/:identifier  [auth, owner-or-admin]
func (h *Handler) delete(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)

	if err := h.svc.Delete(c.Param("identifier"), ident); err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, gin.H{})
}

// addComment POST /posts/:identifier/comments  [auth]
func (h *Handler) addComment(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)

	var dto AddCommentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if errs := dto.Validate(); !errs.Empty() {
		response.ValidationFailed(c, errs)
		return
	}

	comments, err := h.svc.AddComment(c.Param("identifier"), ident.ID, dto.Content)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Created(c, comments)
}

// writeError maps service errors onto the response taxonomy.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTitleTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, ErrCategoryNotFound):
		response.ValidationFailed(c, validate.Errors{{Field: "category", Message: err.Error()}})
	case errors.Is(err, ErrForbidden):
		response.Forbidden(c, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.NotFound(c, "Post not found")
	default:
		response.InternalError(c, err)
	}
}
