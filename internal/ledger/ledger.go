// Package ledger keeps a campaign's running total and status consistent with
// its donations, target and deadline.
package ledger

import (
	"time"

	"github.com/GiorgiUbiria/donation_platform/internal/apperr"
	"github.com/GiorgiUbiria/donation_platform/internal/models"
	"github.com/shopspring/decimal"
)

// Transition records a status change. From == To means nothing moved.
type Transition struct {
	From models.CampaignStatus
	To   models.CampaignStatus
}

func (t Transition) Changed() bool { return t.From != t.To }

// allowed lists the manual transitions accepted from a campaign update.
// Self transitions are handled separately.
var allowed = map[models.CampaignStatus][]models.CampaignStatus{
	models.StatusActive:    {models.StatusCompleted, models.StatusCancelled},
	models.StatusCancelled: {models.StatusActive},
	models.StatusCompleted: {},
}

type Ledger struct {
	now func() time.Time
}

// New returns a Ledger reading the time from now. A nil now uses time.Now.
func New(now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{now: now}
}

func (l *Ledger) Now() time.Time { return l.now().UTC() }

// Expired reports whether the campaign deadline is at or before now.
func (l *Ledger) Expired(c *models.Campaign) bool {
	return !c.Deadline.After(l.Now())
}

// ApplyDonation adds amount to the campaign total and re-evaluates its status.
// The campaign is modified in place; persisting it is the caller's job.
func (l *Ledger) ApplyDonation(c *models.Campaign, amount decimal.Decimal) (Transition, error) {
	if c == nil {
		return Transition{}, apperr.NotFound("campaign_id", "campaign not found")
	}
	if !amount.IsPositive() {
		return Transition{}, apperr.Validation("amount", "donation amount must be greater than zero")
	}
	c.CurrentAmount = c.CurrentAmount.Add(amount)
	return l.RecomputeStatus(c), nil
}

// RecomputeStatus applies the automatic transitions of an active campaign.
// Reaching the goal wins over an expired deadline.
func (l *Ledger) RecomputeStatus(c *models.Campaign) Transition {
	t := Transition{From: c.Status, To: c.Status}
	if c.Status != models.StatusActive {
		return t
	}
	switch {
	case c.CurrentAmount.GreaterThanOrEqual(c.TargetAmount):
		t.To = models.StatusCompleted
	case l.Expired(c):
		t.To = models.StatusCancelled
	}
	c.Status = t.To
	return t
}

// ValidateStatusTransition checks a manually requested status change.
// Completed campaigns are terminal, even for a completed -> completed request.
func ValidateStatusTransition(from, to models.CampaignStatus) error {
	if !to.Valid() {
		return apperr.Validation("status", "status must be one of: active, completed, cancelled")
	}
	if !from.Valid() {
		return apperr.Validation("status", "campaign has an unknown status")
	}
	if from == models.StatusCompleted {
		return apperr.InvalidTransition(string(from), string(to))
	}
	if from == to {
		return nil
	}
	for _, next := range allowed[from] {
		if next == to {
			return nil
		}
	}
	return apperr.InvalidTransition(string(from), string(to))
}
