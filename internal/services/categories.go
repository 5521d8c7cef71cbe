package services

import (
	"context"
	"fmt"

	"github.com/GiorgiUbiria/donation_platform/internal/access"
	"github.com/GiorgiUbiria/donation_platform/internal/apperr"
	"github.com/GiorgiUbiria/donation_platform/internal/models"
	"github.com/GiorgiUbiria/donation_platform/internal/validation"
	"gorm.io/gorm"
)

type CategoryInput struct {
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Description string `json:"description" validate:"required,min=5,max=255"`
}

type CategoryPatch struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=50"`
	Description *string `json:"description" validate:"omitempty,min=5,max=255"`
}

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id uint64) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, lookupError(err, "id", "category")
	}
	return &category, nil
}

func (s *CategoryService) Create(ctx context.Context, actorID uint64, in CategoryInput) (*models.Category, error) {
	if err := access.RequireActor(actorID); err != nil {
		return nil, err
	}
	in.Name = validation.Clean(in.Name)
	in.Description = validation.Clean(in.Description)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if err := s.nameAvailable(db, in.Name, 0); err != nil {
		return nil, err
	}
	category := models.Category{Name: in.Name, Description: in.Description}
	if err := db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", apperr.FromStore(err, "category"))
	}
	return &category, nil
}

func (s *CategoryService) Update(ctx context.Context, actorID, id uint64, patch CategoryPatch) (*models.Category, error) {
	if err := access.RequireActor(actorID); err != nil {
		return nil, err
	}
	if patch.Name != nil {
		*patch.Name = validation.Clean(*patch.Name)
	}
	if patch.Description != nil {
		*patch.Description = validation.Clean(*patch.Description)
	}
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}

	var category models.Category
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&category, id).Error; err != nil {
			return lookupError(err, "id", "category")
		}
		updates := map[string]any{}
		if patch.Name != nil && *patch.Name != category.Name {
			if err := s.nameAvailable(tx, *patch.Name, id); err != nil {
				return err
			}
			updates["name"] = *patch.Name
		}
		if patch.Description != nil {
			updates["description"] = *patch.Description
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&category).Updates(updates).Error; err != nil {
			return fmt.Errorf("update category: %w", apperr.FromStore(err, "category"))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete removes a category no campaign refers to.
func (s *CategoryService) Delete(ctx context.Context, actorID, id uint64) error {
	if err := access.RequireActor(actorID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			return lookupError(err, "id", "category")
		}
		var campaigns int64
		if err := tx.Model(&models.Campaign{}).Where("category_id = ?", id).Count(&campaigns).Error; err != nil {
			return fmt.Errorf("count campaigns: %w", err)
		}
		if campaigns > 0 {
			return apperr.Conflict("id", "category has campaigns and cannot be deleted")
		}
		if err := tx.Delete(&category).Error; err != nil {
			return fmt.Errorf("delete category: %w", apperr.FromStore(err, "category"))
		}
		return nil
	})
}

func (s *CategoryService) nameAvailable(db *gorm.DB, name string, exceptID uint64) error {
	var count int64
	q := db.Model(&models.Category{}).Where("name = ?", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("check category name: %w", err)
	}
	if count > 0 {
		return apperr.Conflict("name", "a category with this name already exists")
	}
	return nil
}
