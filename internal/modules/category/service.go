package category

import (
	"errors"

	"github.com/inklet-blog/core/internal/models"
	"github.com/inklet-blog/core/internal/pkg/slug"
	"github.com/inklet-blog/core/internal/pkg/validate"
	"gorm.io/gorm"
)

var ErrNameTaken = errors.New("category with this name already exists")

// CreateCategoryDTO is the request body for creating a category.
type CreateCategoryDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

func (d *CreateCategoryDTO) Validate() validate.Errors {
	var errs validate.Errors
	errs.Required("name", d.Name)
	errs.MaxLen("name", d.Name, 50)
	errs.MaxLen("description", d.Description, 200)
	errs.HexColor("color", d.Color)
	return errs
}

// UpdateCategoryDTO is the request body for updating a category (all fields optional).
type UpdateCategoryDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

func (d *UpdateCategoryDTO) Validate() validate.Errors {
	var errs validate.Errors
	if d.Name != nil {
		errs.Required("name", *d.Name)
		errs.MaxLen("name", *d.Name, 50)
	}
	if d.Description != nil {
		errs.MaxLen("description", *d.Description, 200)
	}
	if d.Color != nil {
		errs.HexColor("color", *d.Color)
	}
	return errs
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns all categories sorted by name ascending.
func (s *Service) List() ([]models.CategoryModel, error) {
	var cats []models.CategoryModel
	return cats, s.db.Order("name ASC").Find(&cats).Error
}

// GetByID fetches a category by ID. Returns (nil, nil) when absent.
func (s *Service) GetByID(id string) (*models.CategoryModel, error) {
	var cat models.CategoryModel
	if err := s.db.First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

// GetByIdentifier fetches a category by ID first, then falls back to slug.
func (s *Service) GetByIdentifier(identifier string) (*models.CategoryModel, error) {
	if cat, err := s.GetByID(identifier); err != nil {
		return nil, err
	} else if cat != nil {
		return cat, nil
	}

	var cat models.CategoryModel
	if err := s.db.Where("slug = ?", identifier).First(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

// Create inserts a new category with a slug derived from its name.
func (s *Service) Create(dto *CreateCategoryDTO) (*models.CategoryModel, error) {
	derived := slug.Make(dto.Name)

	var count int64
	if err := s.db.Model(&models.CategoryModel{}).
		Where("name = ? OR slug = ?", dto.Name, derived).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrNameTaken
	}

	cat := models.CategoryModel{
		Name:        dto.Name,
		Description: dto.Description,
		Slug:        derived,
		Color:       dto.Color,
	}
	if cat.Color == "" {
		cat.Color = models.DefaultCategoryColor
	}
	return &cat, s.db.Create(&cat).Error
}

// Update patches a category addressed by ID or slug, re-deriving the slug
// when the name changes. Returns (nil, nil) when the category does not exist.
func (s *Service) Update(identifier string, dto *UpdateCategoryDTO) (*models.CategoryModel, error) {
	cat, err := s.GetByIdentifier(identifier)
	if err != nil || cat == nil {
		return cat, err
	}

	updates := map[string]interface{}{}
	if dto.Name != nil && *dto.Name != cat.Name {
		derived := slug.Make(*dto.Name)

		var count int64
		if err := s.db.Model(&models.CategoryModel{}).
			Where("(name = ? OR slug = ?) AND id <> ?", *dto.Name, derived, cat.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrNameTaken
		}

		updates["name"] = *dto.Name
		updates["slug"] = derived
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Color != nil {
		updates["color"] = *dto.Color
	}

	return cat, s.db.Model(cat).Updates(updates).Error
}

// Delete removes a category addressed by ID or slug. Posts referencing it
// keep working with the reference cleared. Returns gorm.ErrRecordNotFound
// when absent.
func (s *Service) Delete(identifier string) error {
	cat, err := s.GetByIdentifier(identifier)
	if err != nil {
		return err
	}
	if cat == nil {
		return gorm.ErrRecordNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PostModel{}).
			Where("category_id = ?", cat.ID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.CategoryModel{}, "id = ?", cat.ID).Error
	})
}
