package post

import (
	"errors"
	"strings"

	"github.com/inklet-blog/core/internal/middleware"
	"github.com/inklet-blog/core/internal/models"
	"github.com/inklet-blog/core/internal/pkg/pagination"
	"github.com/inklet-blog/core/internal/pkg/response"
	"github.com/inklet-blog/core/internal/pkg/slug"
	"gorm.io/gorm"
)

var (
	ErrTitleTaken       = errors.New("post with this title already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrForbidden        = errors.New("not authorized to modify this post")
)

// likeEscaper neutralizes LIKE metacharacters in search input so "100%"
// matches literally instead of acting as a wildcard.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Service handles post business logic.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns a page of published posts, newest first. Search matches
// case-insensitively against title, content, or excerpt.
func (s *Service) List(q pagination.Query, lq ListQuery) ([]models.PostModel, response.Pagination, error) {
	tx := s.db.Model(&models.PostModel{}).
		Preload("Category").
		Preload("Author").
		Where("is_published = ?", true).
		Order("created_at DESC")

	if lq.Category != "" {
		tx = tx.Where("category_id = ?", lq.Category)
	}
	if lq.Search != "" {
		needle := "%" + likeEscaper.Replace(strings.ToLower(lq.Search)) + "%"
		tx = tx.Where(
			"LOWER(title) LIKE ? ESCAPE '!' OR LOWER(content) LIKE ? ESCAPE '!' OR LOWER(excerpt) LIKE ? ESCAPE '!'",
			needle, needle, needle,
		)
	}

	var posts []models.PostModel
	pag, err := pagination.Paginate(tx, q, &posts)
	return posts, pag, err
}

// GetByID fetches a post by ID with references populated. Returns (nil, nil) when absent.
func (s *Service) GetByID(id string) (*models.PostModel, error) {
	var post models.PostModel
	err := s.loaded().First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetByIdentifier fetches a post by ID first, then falls back to slug.
func (s *Service) GetByIdentifier(identifier string) (*models.PostModel, error) {
	if post, err := s.GetByID(identifier); err != nil {
		return nil, err
	} else if post != nil {
		return post, nil
	}

	var post models.PostModel
	err := s.loaded().Where("slug = ?", identifier).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// IncrementViewCount atomically increments the view counter by one.
// The increment happens at the store to avoid lost updates under
// concurrent reads; never read-modify-write here.
func (s *Service) IncrementViewCount(id string) error {
	return s.db.Model(&models.PostModel{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// Create inserts a new post authored by authorID with a slug derived from
// the title.
func (s *Service) Create(authorID string, dto *CreatePostDTO) (*models.PostModel, error) {
	if err := s.checkCategory(dto.CategoryID); err != nil {
		return nil, err
	}

	derived := slug.Make(dto.Title)
	var count int64
	if err := s.db.Model(&models.PostModel{}).
		Where("title = ? OR slug = ?", dto.Title, derived).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrTitleTaken
	}

	categoryID := dto.CategoryID
	post := models.PostModel{
		Title:      dto.Title,
		Content:    dto.Content,
		Excerpt:    dto.Excerpt,
		Slug:       derived,
		CategoryID: &categoryID,
		AuthorID:   authorID,
		Tags:       dto.Tags,
	}
	if dto.IsPublished != nil {
		post.IsPublished = *dto.IsPublished
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}
	return s.GetByID(post.ID)
}

// Update patches a post addressed by ID or slug. Existence is checked
// before authorization so a missing post reads as not found, never
// forbidden. The author reference never changes. Returns (nil, nil) when
// the post does not exist.
func (s *Service) Update(identifier string, ident middleware.Identity, dto *UpdatePostDTO) (*models.PostModel, error) {
	post, err := s.GetByIdentifier(identifier)
	if err != nil || post == nil {
		return post, err
	}
	if !ident.CanModify(post.AuthorID) {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}
	if dto.Title != nil && *dto.Title != post.Title {
		derived := slug.Make(*dto.Title)
		var count int64
		if err := s.db.Model(&models.PostModel{}).
			Where("(title = ? OR slug = ?) AND id <> ?", *dto.Title, derived, post.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrTitleTaken
		}
		updates["title"] = *dto.Title
		updates["slug"] = derived
	}
	if dto.Content != nil {
		updates["content"] = *dto.Content
	}
	if dto.Excerpt != nil {
		updates["excerpt"] = *dto.Excerpt
	}
	if dto.CategoryID != nil {
		if err := s.checkCategory(*dto.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *dto.CategoryID
	}
	if dto.Tags != nil {
		updates["tags"] = models.StringSlice(dto.Tags)
	}
	if dto.IsPublished != nil {
		updates["is_published"] = *dto.IsPublished
	}

	if err := s.db.Model(post).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(post.ID)
}

// Delete removes a post addressed by ID or slug, together with its comments,
// in one transaction. Existence is checked before authorization. Returns
// gorm.ErrRecordNotFound when absent.
func (s *Service) Delete(identifier string, ident middleware.Identity) error {
	id, authorID, err := s.resolveID(identifier)
	if err != nil {
		return err
	}
	if !ident.CanModify(authorID) {
		return ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.CommentModel{}, "post_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.PostModel{}, "id = ?", id).Error
	})
}

// AddComment appends a comment to a post addressed by ID or slug and
// returns the post's comments, oldest first. The append is a single atomic
// insert; no read-modify-write of the parent. Returns
// gorm.ErrRecordNotFound when the post is absent.
func (s *Service) AddComment(identifier, authorID, content string) ([]models.CommentModel, error) {
	postID, _, err := s.resolveID(identifier)
	if err != nil {
		return nil, err
	}

	comment := models.CommentModel{
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}

	var comments []models.CommentModel
	err = s.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// resolveID maps an id-or-slug identifier to the post's ID and author,
// preferring ID. Returns gorm.ErrRecordNotFound when neither matches.
func (s *Service) resolveID(identifier string) (id, authorID string, err error) {
	var post models.PostModel
	err = s.db.Select("id, author_id").Where("id = ?", identifier).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = s.db.Select("id, author_id").Where("slug = ?", identifier).First(&post).Error
	}
	if err != nil {
		return "", "", err
	}
	return post.ID, post.AuthorID, nil
}

func (s *Service) loaded() *gorm.DB {
	return s.db.
		Preload("Category").
		Preload("Author").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("comments.created_at ASC")
		}).
		Preload("Comments.Author")
}

func (s *Service) checkCategory(id string) error {
	var count int64
	if err := s.db.Model(&models.CategoryModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
