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

type CommentInput struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

func (s *CommentService) Create(ctx context.Context, actorID, campaignID uint64, in CommentInput) (*models.Comment, error) {
	if err := access.RequireActor(actorID); err != nil {
		return nil, err
	}
	in.Text = validation.Clean(in.Text)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if err := db.Select("id").First(&models.Campaign{}, campaignID).Error; err != nil {
		return nil, lookupError(err, "campaign_id", "campaign")
	}
	comment := models.Comment{Text: in.Text, UserID: actorID, CampaignID: campaignID}
	if err := db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", apperr.FromStore(err, "comment"))
	}
	return s.Get(ctx, comment.ID)
}

func (s *CommentService) Get(ctx context.Context, id uint64) (*models.Comment, error) {
	var comment models.Comment
	err := s.db.WithContext(ctx).
		Preload("User", selectPublicUser).
		First(&comment, id).Error
	if err != nil {
		return nil, lookupError(err, "id", "comment")
	}
	return &comment, nil
}

func (s *CommentService) ListByCampaign(ctx context.Context, campaignID uint64, p Page) (PageResult[models.Comment], error) {
	result := PageResult[models.Comment]{Page: p, Items: []models.Comment{}}
	db := s.db.WithContext(ctx)
	if err := db.Select("id").First(&models.Campaign{}, campaignID).Error; err != nil {
		return result, lookupError(err, "campaign_id", "campaign")
	}
	if err := db.Model(&models.Comment{}).Where("campaign_id = ?", campaignID).Count(&result.Total).Error; err != nil {
		return result, fmt.Errorf("count comments: %w", err)
	}
	err := db.Where("campaign_id = ?", campaignID).
		Scopes(paginate(p)).
		Preload("User", selectPublicUser).
		Order("created_at DESC").
		Order("id DESC").
		Find(&result.Items).Error
	if err != nil {
		return result, fmt.Errorf("list comments: %w", err)
	}
	return result, nil
}

// Update changes the text of a comment; only its author may do so.
func (s *CommentService) Update(ctx context.Context, actorID, id uint64, in CommentInput) (*models.Comment, error) {
	if err := access.RequireActor(actorID); err != nil {
		return nil, err
	}
	in.Text = validation.Clean(in.Text)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, id).Error; err != nil {
			return lookupError(err, "id", "comment")
		}
		if err := access.RequireOwner(actorID, comment.UserID, "comments"); err != nil {
			return err
		}
		return tx.Model(&comment).Updates(map[string]any{"text": in.Text}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *CommentService) Delete(ctx context.Context, actorID, id uint64) error {
	if err := access.RequireActor(actorID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, id).Error; err != nil {
			return lookupError(err, "id", "comment")
		}
		if err := access.RequireOwner(actorID, comment.UserID, "comments"); err != nil {
			return err
		}
		return tx.Delete(&comment).Error
	})
}
