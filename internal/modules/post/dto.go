package post

import (
	"strings"
	"time"

	"github.com/inklet-blog/core/internal/models"
	"github.com/inklet-blog/core/internal/pkg/validate"
)

// CreatePostDTO is the request body for creating a post. The author is never
// part of the body; it is forced to the authenticated identity.
type CreatePostDTO struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Excerpt     string   `json:"excerpt"`
	CategoryID  string   `json:"category"`
	Tags        []string `json:"tags"`
	IsPublished *bool    `json:"isPublished"`
}

func (d *CreatePostDTO) Validate() validate.Errors {
	var errs validate.Errors
	errs.Required("title", d.Title)
	errs.MaxLen("title", d.Title, 100)
	errs.Required("content", d.Content)
	errs.Required("category", d.CategoryID)
	errs.MaxLen("excerpt", d.Excerpt, 200)
	return errs
}

// UpdatePostDTO is the request body for updating a post (all fields optional,
// author excluded by design).
type UpdatePostDTO struct {
	Title       *string  `json:"title"`
	Content     *string  `json:"content"`
	Excerpt     *string  `json:"excerpt"`
	CategoryID  *string  `json:"category"`
	Tags        []string `json:"tags"`
	IsPublished *bool    `json:"isPublished"`
}

func (d *UpdatePostDTO) Validate() validate.Errors {
	var errs validate.Errors
	if d.Title != nil {
		errs.Required("title", *d.Title)
		errs.MaxLen("title", *d.Title, 100)
	}
	if d.Content != nil {
		errs.Required("content", *d.Content)
	}
	if d.CategoryID != nil {
		errs.Required("category", *d.CategoryID)
	}
	if d.Excerpt != nil {
		errs.MaxLen("excerpt", *d.Excerpt, 200)
	}
	return errs
}

// AddCommentDTO is the request body for appending a comment.
type AddCommentDTO struct {
	Content string `json:"content"`
}

func (d *AddCommentDTO) Validate() validate.Errors {
	var errs validate.Errors
	if strings.TrimSpace(d.Content) == "" {
		errs.Add("content", "comment content is required")
	}
	return errs
}

// ListQuery holds query params for listing posts.
type ListQuery struct {
	Category string `form:"category"`
	Search   string `form:"q"`
}

// postResponse is the API response shape for a post.
type postResponse struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Content     string                `json:"content"`
	Excerpt     string                `json:"excerpt"`
	Slug        string                `json:"slug"`
	CategoryID  *string               `json:"categoryId"`
	Category    *models.CategoryModel `json:"category"`
	AuthorID    string                `json:"authorId"`
	Author      *models.AccountModel  `json:"author"`
	Tags        []string              `json:"tags"`
	IsPublished bool                  `json:"isPublished"`
	ViewCount   int                   `json:"viewCount"`
	Comments    []models.CommentModel `json:"comments,omitempty"`
	Created     time.Time             `json:"createdAt"`
	Modified    time.Time             `json:"updatedAt"`
}

func toResponse(p *models.PostModel) postResponse {
	tags := []string(p.Tags)
	if tags == nil {
		tags = []string{}
	}
	return postResponse{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		Excerpt:     p.Excerpt,
		Slug:        p.Slug,
		CategoryID:  p.CategoryID,
		Category:    p.Category,
		AuthorID:    p.AuthorID,
		Author:      p.Author,
		Tags:        tags,
		IsPublished: p.IsPublished,
		ViewCount:   p.ViewCount,
		Comments:    p.Comments,
		Created:     p.CreatedAt,
		Modified:    p.UpdatedAt,
	}
}
