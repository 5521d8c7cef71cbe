package services

import (
	"context"
	"fmt"

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

var maxDonationAmount = decimal.RequireFromString("999999.99")

type DonationInput struct {
	Amount  decimal.Decimal `json:"amount"`
	Message *string         `json:"message" validate:"omitempty,max=255"`
}

// DonationReceipt is the recorded donation and the campaign as it was
// committed together with it.
type DonationReceipt struct {
	Donation models.Donation `json:"donation"`
	Campaign models.Campaign `json:"campaign"`
}

type DonationStats struct {
	CampaignID uint64          `json:"campaign_id"`
	Count      int64           `json:"count"`
	Total      decimal.Decimal `json:"total"`
	Average    decimal.Decimal `json:"average"`
	Max        decimal.Decimal `json:"max"`
	Min        decimal.Decimal `json:"min"`
}

type DonationService struct {
	db     *gorm.DB
	ledger *ledger.Ledger
	log    *zap.Logger
}

func NewDonationService(db *gorm.DB, l *ledger.Ledger, log *zap.Logger) *DonationService {
	return &DonationService{db: db, ledger: l, log: log.Named("donations")}
}

// Create records a donation from actorID and applies it to the campaign
// ledger. The donation row and the campaign update commit together; the
// campaign row stays locked for the duration so concurrent donations
// serialize on it.
func (s *DonationService) Create(ctx context.Context, actorID, campaignID uint64, in DonationInput) (*DonationReceipt, error) {
	if err := access.RequireActor(actorID); err != nil {
		return nil, err
	}
	if in.Message != nil {
		msg := validation.Clean(*in.Message)
		in.Message = &msg
		if msg == "" {
			in.Message = nil
		}
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := validation.Money("amount", in.Amount, maxDonationAmount); err != nil {
		return nil, err
	}

	var receipt DonationReceipt
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		campaign := &receipt.Campaign
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(campaign, campaignID).Error; err != nil {
			return lookupError(err, "campaign_id", "campaign")
		}
		if campaign.Status != models.StatusActive {
			return apperr.CampaignNotActive(string(campaign.Status))
		}
		if s.ledger.Expired(campaign) {
			return apperr.CampaignExpired()
		}

		receipt.Donation = models.Donation{
			Amount:     in.Amount,
			Message:    in.Message,
			DonatedAt:  s.ledger.Now(),
			UserID:     actorID,
			CampaignID: campaignID,
		}
		if err := tx.Create(&receipt.Donation).Error; err != nil {
			return fmt.Errorf("insert donation: %w", apperr.FromStore(err, "donation"))
		}

		t, err := s.ledger.ApplyDonation(campaign, in.Amount)
		if err != nil {
			return err
		}
		err = tx.Model(campaign).Updates(map[string]any{
			"current_amount": campaign.CurrentAmount,
			"status":         campaign.Status,
		}).Error
		if err != nil {
			return fmt.Errorf("update campaign ledger: %w", err)
		}

		if t.Changed() {
			s.log.Info("campaign status changed by donation",
				zap.Uint64("campaign_id", campaignID),
				zap.String("from", string(t.From)),
				zap.String("to", string(t.To)),
			)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("donation recorded",
		zap.Uint64("donation_id", receipt.Donation.ID),
		zap.Uint64("campaign_id", campaignID),
		zap.Uint64("user_id", actorID),
		zap.String("amount", in.Amount.StringFixed(2)),
		zap.String("campaign_total", receipt.Campaign.CurrentAmount.StringFixed(2)),
	)
	return &receipt, nil
}

func (s *DonationService) ListByCampaign(ctx context.Context, campaignID uint64, p Page) (PageResult[models.Donation], error) {
	result := PageResult[models.Donation]{Page: p, Items: []models.Donation{}}
	db := s.db.WithContext(ctx)
	if err := db.Select("id").First(&models.Campaign{}, campaignID).Error; err != nil {
		return result, lookupError(err, "campaign_id", "campaign")
	}

	q := db.Model(&models.Donation{}).Where("campaign_id = ?", campaignID)
	if err := q.Count(&result.Total).Error; err != nil {
		return result, fmt.Errorf("count donations: %w", err)
	}
	err := db.Where("campaign_id = ?", campaignID).
		Scopes(paginate(p)).
		Preload("User", selectPublicUser).
		Order("donated_at DESC").
		Order("id DESC").
		Find(&result.Items).Error
	if err != nil {
		return result, fmt.Errorf("list donations: %w", err)
	}
	return result, nil
}

// ListByDonor returns the actor's own donations with their campaigns.
func (s *DonationService) ListByDonor(ctx context.Context, actorID uint64, p Page) (PageResult[models.Donation], error) {
	result := PageResult[models.Donation]{Page: p, Items: []models.Donation{}}
	if err := access.RequireActor(actorID); err != nil {
		return result, err
	}
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Donation{}).Where("user_id = ?", actorID).Count(&result.Total).Error; err != nil {
		return result, fmt.Errorf("count donations: %w", err)
	}
	err := db.Where("user_id = ?", actorID).
		Scopes(paginate(p)).
		Preload("Campaign").
		Order("donated_at DESC").
		Order("id DESC").
		Find(&result.Items).Error
	if err != nil {
		return result, fmt.Errorf("list donations: %w", err)
	}
	return result, nil
}

// Get returns a donation to its donor only.
func (s *DonationService) Get(ctx context.Context, actorID, id uint64) (*models.Donation, error) {
	if err := access.RequireActor(actorID); err != nil {
		return nil, err
	}
	var donation models.Donation
	err := s.db.WithContext(ctx).
		Preload("User", selectPublicUser).
		Preload("Campaign").
		First(&donation, id).Error
	if err != nil {
		return nil, lookupError(err, "id", "donation")
	}
	if donation.UserID != actorID {
		return nil, apperr.Forbidden("user_id", "you can only view your own donations")
	}
	return &donation, nil
}

func (s *DonationService) Stats(ctx context.Context, campaignID uint64) (*DonationStats, error) {
	db := s.db.WithContext(ctx)
	if err := db.Select("id").First(&models.Campaign{}, campaignID).Error; err != nil {
		return nil, lookupError(err, "campaign_id", "campaign")
	}

	var row struct {
		DonationCount int64
		TotalAmount   decimal.NullDecimal
		MaxAmount     decimal.NullDecimal
		MinAmount     decimal.NullDecimal
	}
	err := db.Model(&models.Donation{}).
		Select("COUNT(*) AS donation_count, SUM(amount) AS total_amount, MAX(amount) AS max_amount, MIN(amount) AS min_amount").
		Where("campaign_id = ?", campaignID).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("donation stats: %w", err)
	}

	stats := &DonationStats{
		CampaignID: campaignID,
		Count:      row.DonationCount,
		Total:      row.TotalAmount.Decimal.Round(2),
		Average:    decimal.Zero,
		Max:        row.MaxAmount.Decimal.Round(2),
		Min:        row.MinAmount.Decimal.Round(2),
	}
	if stats.Count > 0 {
		stats.Average = stats.Total.DivRound(decimal.NewFromInt(stats.Count), 2)
	}
	return stats, nil
}

func selectPublicUser(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name")
}
