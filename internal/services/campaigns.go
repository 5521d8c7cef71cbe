package services

import (
	"context"
	"fmt"
	"time"

	"github.com/GiorgiUbiria/donation_platform/internal/access"
	"github.com/GiorgiUbiria/donation_platform/internal/apperr"
	"github.com/GiorgiUbiria/donation_platform/internal/ledger"
	"github.com/GiorgiUbiria/donation_platform/internal/models"
	"github.com/GiorgiUbiria/donation_platform/internal/validation"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var maxTargetAmount = decimal.RequireFromString("999999999.99")

type CampaignInput struct {
	Title        string          `json:"title" validate:"required,min=5,max=100"`
	Description  string          `json:"description" validate:"required,min=10,max=1000"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	Deadline     string          `json:"deadline" validate:"required"`
	CategoryID   uint64          `json:"category_id" validate:"required,gt=0"`
}

// CampaignPatch is a partial update; nil fields are left untouched.
type CampaignPatch struct {
	Title        *string                `json:"title" validate:"omitempty,min=5,max=100"`
	Description  *string                `json:"description" validate:"omitempty,min=10,max=1000"`
	TargetAmount *decimal.Decimal       `json:"target_amount"`
	Deadline     *string                `json:"deadline"`
	CategoryID   *uint64                `json:"category_id" validate:"omitempty,gt=0"`
	Status       *models.CampaignStatus `json:"status" validate:"omitempty,oneof=active completed cancelled"`
}

type CampaignFilter struct {
	CategoryID uint64
	OwnerID    uint64
	Status     models.CampaignStatus
}

type CampaignService struct {
	db     *gorm.DB
	ledger *ledger.Ledger
	log    *zap.Logger
}

func NewCampaignService(db *gorm.DB, l *ledger.Ledger, log *zap.Logger) *CampaignService {
	return &CampaignService{db: db, ledger: l, log: log.Named("campaigns")}
}

func (s *CampaignService) Create(ctx context.Context, actorID uint64, in CampaignInput) (*models.Campaign, error) {
	if err := access.RequireActor(actorID); err != nil {
		return nil, err
	}
	in.Title = validation.Clean(in.Title)
	in.Description = validation.Clean(in.Description)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := validation.Money("target_amount", in.TargetAmount, maxTargetAmount); err != nil {
		return nil, err
	}
	deadline, err := s.futureDeadline(in.Deadline)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if err := categoryExists(db, in.CategoryID); err != nil {
		return nil, err
	}

	campaign := models.Campaign{
		Title:         in.Title,
		Description:   in.Description,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: decimal.Zero,
		Deadline:      deadline,
		Status:        models.StatusActive,
		UserID:        actorID,
		CategoryID:    in.CategoryID,
	}
	if err := db.Create(&campaign).Error; err != nil {
		return nil, fmt.Errorf("create campaign: %w", apperr.FromStore(err, "campaign"))
	}
	s.log.Info("campaign created",
		zap.Uint64("campaign_id", campaign.ID),
		zap.Uint64("user_id", actorID),
		zap.String("target", campaign.TargetAmount.StringFixed(2)),
	)
	return s.Get(ctx, campaign.ID)
}

func (s *CampaignService) Get(ctx context.Context, id uint64) (*models.Campaign, error) {
	var campaign models.Campaign
	err := s.db.WithContext(ctx).
		Preload("User", selectPublicUser).
		Preload("Category").
		First(&campaign, id).Error
	if err != nil {
		return nil, lookupError(err, "id", "campaign")
	}
	return &campaign, nil
}

// List returns campaigns newest first. Reads take no locks, so totals may lag
// behind a donation that is still committing.
func (s *CampaignService) List(ctx context.Context, f CampaignFilter, p Page) (PageResult[models.Campaign], error) {
	if f.Status != "" && !f.Status.Valid() {
		return PageResult[models.Campaign]{}, apperr.Validation("status", "status must be one of: active, completed, cancelled")
	}
	filter := func(db *gorm.DB) *gorm.DB {
		if f.CategoryID != 0 {
			db = db.Where("category_id = ?", f.CategoryID)
		}
		if f.OwnerID != 0 {
			db = db.Where("user_id = ?", f.OwnerID)
		}
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		return db
	}

	db := s.db.WithContext(ctx)
	result := PageResult[models.Campaign]{Page: p, Items: []models.Campaign{}}
	if err := db.Model(&models.Campaign{}).Scopes(filter).Count(&result.Total).Error; err != nil {
		return result, fmt.Errorf("count campaigns: %w", err)
	}
	err := db.Scopes(filter, paginate(p)).
		Preload("User", selectPublicUser).
		Preload("Category").
		Order("created_at DESC").
		Order("id DESC").
		Find(&result.Items).Error
	if err != nil {
		return result, fmt.Errorf("list campaigns: %w", err)
	}
	return result, nil
}

// Update applies a partial update by the campaign owner. A status change must
// be allowed by ledger.ValidateStatusTransition; without one the automatic
// transitions are re-evaluated against the new values.
func (s *CampaignService) Update(ctx context.Context, actorID, id uint64, patch CampaignPatch) (*models.Campaign, error) {
	if err := access.RequireActor(actorID); err != nil {
		return nil, err
	}
	if patch.Title != nil {
		*patch.Title = validation.Clean(*patch.Title)
	}
	if patch.Description != nil {
		*patch.Description = validation.Clean(*patch.Description)
	}
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var campaign models.Campaign
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&campaign, id).Error; err != nil {
			return lookupError(err, "id", "campaign")
		}
		if err := access.RequireOwner(actorID, campaign.UserID, "campaigns"); err != nil {
			return err
		}

		updates := map[string]any{}
		if patch.Title != nil {
			updates["title"] = *patch.Title
		}
		if patch.Description != nil {
			updates["description"] = *patch.Description
		}
		if patch.TargetAmount != nil {
			if err := validation.Money("target_amount", *patch.TargetAmount, maxTargetAmount); err != nil {
				return err
			}
			updates["target_amount"] = *patch.TargetAmount
		}
		if patch.Deadline != nil {
			deadline, err := s.futureDeadline(*patch.Deadline)
			if err != nil {
				return err
			}
			updates["deadline"] = deadline
		}
		if patch.CategoryID != nil && *patch.CategoryID != campaign.CategoryID {
			if err := categoryExists(tx, *patch.CategoryID); err != nil {
				return err
			}
			updates["category_id"] = *patch.CategoryID
		}
		if patch.Status != nil {
			if err := ledger.ValidateStatusTransition(campaign.Status, *patch.Status); err != nil {
				return err
			}
			if *patch.Status != campaign.Status {
				updates["status"] = *patch.Status
				s.log.Info("campaign status changed manually",
					zap.Uint64("campaign_id", id),
					zap.String("from", string(campaign.Status)),
					zap.String("to", string(*patch.Status)),
				)
			}
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&campaign).Updates(updates).Error; err != nil {
			return fmt.Errorf("update campaign: %w", apperr.FromStore(err, "campaign"))
		}
		if patch.Status != nil {
			return nil
		}

		// a new target or deadline can satisfy an automatic transition
		if err := tx.First(&campaign, id).Error; err != nil {
			return lookupError(err, "id", "campaign")
		}
		t := s.ledger.RecomputeStatus(&campaign)
		if !t.Changed() {
			return nil
		}
		if err := tx.Model(&campaign).Updates(map[string]any{"status": campaign.Status}).Error; err != nil {
			return fmt.Errorf("update campaign status: %w", err)
		}
		s.log.Info("campaign status recomputed after update",
			zap.Uint64("campaign_id", id),
			zap.String("from", string(t.From)),
			zap.String("to", string(t.To)),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a campaign without donations, together with its comments.
func (s *CampaignService) Delete(ctx context.Context, actorID, id uint64) error {
	if err := access.RequireActor(actorID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var campaign models.Campaign
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&campaign, id).Error; err != nil {
			return lookupError(err, "id", "campaign")
		}
		if err := access.RequireOwner(actorID, campaign.UserID, "campaigns"); err != nil {
			return err
		}

		var donations int64
		if err := tx.Model(&models.Donation{}).Where("campaign_id = ?", id).Count(&donations).Error; err != nil {
			return fmt.Errorf("count donations: %w", err)
		}
		if donations > 0 {
			return apperr.Conflict("id", "campaign has donations and cannot be deleted")
		}

		if err := tx.Where("campaign_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if err := tx.Delete(&campaign).Error; err != nil {
			return fmt.Errorf("delete campaign: %w", apperr.FromStore(err, "campaign"))
		}
		s.log.Info("campaign deleted", zap.Uint64("campaign_id", id), zap.Uint64("user_id", actorID))
		return nil
	})
}

// RecomputeStatus re-evaluates the automatic transitions of one campaign and
// persists the result.
func (s *CampaignService) RecomputeStatus(ctx context.Context, id uint64) (*models.Campaign, ledger.Transition, error) {
	t, err := s.recompute(ctx, id)
	if err != nil {
		return nil, t, err
	}
	campaign, err := s.Get(ctx, id)
	return campaign, t, err
}

// ExpireOverdue recomputes every active campaign whose deadline has passed and
// returns how many changed status.
func (s *CampaignService) ExpireOverdue(ctx context.Context) (int, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("status = ? AND deadline <= ?", models.StatusActive, s.ledger.Now()).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, fmt.Errorf("find overdue campaigns: %w", err)
	}

	changed := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return changed, err
		}
		t, err := s.recompute(ctx, id)
		if err != nil {
			return changed, fmt.Errorf("recompute campaign %d: %w", id, err)
		}
		if t.Changed() {
			changed++
		}
	}
	return changed, nil
}

func (s *CampaignService) recompute(ctx context.Context, id uint64) (ledger.Transition, error) {
	var t ledger.Transition
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var campaign models.Campaign
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&campaign, id).Error; err != nil {
			return lookupError(err, "id", "campaign")
		}
		t = s.ledger.RecomputeStatus(&campaign)
		if !t.Changed() {
			return nil
		}
		if err := tx.Model(&campaign).Updates(map[string]any{"status": campaign.Status}).Error; err != nil {
			return fmt.Errorf("update campaign status: %w", err)
		}
		return nil
	})
	if err == nil && t.Changed() {
		s.log.Info("campaign status recomputed",
			zap.Uint64("campaign_id", id),
			zap.String("from", string(t.From)),
			zap.String("to", string(t.To)),
		)
	}
	return t, err
}

func (s *CampaignService) futureDeadline(value string) (deadline time.Time, err error) {
	deadline, err = validation.Date("deadline", value)
	if err != nil {
		return deadline, err
	}
	if !deadline.After(s.ledger.Now()) {
		return deadline, apperr.Validation("deadline", "deadline must be in the future")
	}
	return deadline, nil
}

func categoryExists(db *gorm.DB, id uint64) error {
	var category models.Category
	if err := db.Select("id").First(&category, id).Error; err != nil {
		return lookupError(err, "category_id", "category")
	}
	return nil
}
