package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GiorgiUbiria/donation_platform/internal/apperr"
	"github.com/GiorgiUbiria/donation_platform/internal/models"
)

func validCampaignInput(categoryID uint64) CampaignInput {
	return CampaignInput{
		Title:        "Clean water for Kutaisi",
		Description:  "Drilling two wells for the school district",
		TargetAmount: dec("5000"),
		Deadline:     "2026-06-01",
		CategoryID:   categoryID,
	}
}

func TestCreateCampaign(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "Owner")
	cat := env.category(t, "Water")

	in := validCampaignInput(cat.ID)
	in.Title = "  Clean water for Kutaisi  "
	c, err := env.campaigns.Create(context.Background(), owner.ID, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Title != "Clean water for Kutaisi" {
		t.Fatalf("expected trimmed title, got %q", c.Title)
	}
	if c.Status != models.StatusActive || !c.CurrentAmount.IsZero() {
		t.Fatalf("expected fresh active campaign, got %s with %s", c.Status, c.CurrentAmount)
	}
	if !c.Deadline.Equal(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected deadline %s", c.Deadline)
	}
	if c.User == nil || c.User.ID != owner.ID || c.Category == nil || c.Category.Name != "Water" {
		t.Fatalf("expected owner and category to be loaded, got %+v %+v", c.User, c.Category)
	}
	if c.User.Email != "" {
		t.Fatalf("owner email must not be exposed, got %q", c.User.Email)
	}
}

func TestCreateCampaignRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "Owner")
	cat := env.category(t, "Water")

	tests := []struct {
		name  string
		actor uint64
		edit  func(*CampaignInput)
		want  error
	}{
		{"short title", owner.ID, func(in *CampaignInput) { in.Title = "Hey" }, apperr.ErrValidation},
		{"short description", owner.ID, func(in *CampaignInput) { in.Description = "too short" }, apperr.ErrValidation},
		{"zero target", owner.ID, func(in *CampaignInput) { in.TargetAmount = dec("0") }, apperr.ErrValidation},
		{"fractional cents", owner.ID, func(in *CampaignInput) { in.TargetAmount = dec("10.001") }, apperr.ErrValidation},
		{"bad deadline", owner.ID, func(in *CampaignInput) { in.Deadline = "next week" }, apperr.ErrValidation},
		{"past deadline", owner.ID, func(in *CampaignInput) { in.Deadline = "2026-03-01" }, apperr.ErrValidation},
		{"deadline now", owner.ID, func(in *CampaignInput) { in.Deadline = "2026-03-10T12:00:00Z" }, apperr.ErrValidation},
		{"unknown category", owner.ID, func(in *CampaignInput) { in.CategoryID = cat.ID + 10 }, apperr.ErrNotFound},
		{"anonymous", 0, func(*CampaignInput) {}, apperr.ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCampaignInput(cat.ID)
			tt.edit(&in)
			_, err := env.campaigns.Create(context.Background(), tt.actor, in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestUpdateCampaignFields(t *testing.T) {
	env := newTestEnv(t)
	owner, stranger := env.user(t, "Owner"), env.user(t, "Stranger")
	water, food := env.category(t, "Water"), env.category(t, "Food")
	c := env.campaign(t, campaignSeed{owner: owner.ID, category: water.ID, target: "1000"})

	title := "A brand new title"
	updated, err := env.campaigns.Update(context.Background(), owner.ID, c.ID, CampaignPatch{
		Title:        &title,
		TargetAmount: ptr(dec("2500.50")),
		CategoryID:   &food.ID,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != title || !updated.TargetAmount.Equal(dec("2500.50")) || updated.CategoryID != food.ID {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.Description != c.Description {
		t.Fatalf("untouched field changed: %q", updated.Description)
	}

	if _, err := env.campaigns.Update(context.Background(), stranger.ID, c.ID, CampaignPatch{Title: &title}); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden for non-owner, got %v", err)
	}
	if _, err := env.campaigns.Update(context.Background(), owner.ID, c.ID+50, CampaignPatch{Title: &title}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := env.campaigns.Update(context.Background(), owner.ID, c.ID, CampaignPatch{Deadline: ptr("2020-01-01")}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for past deadline, got %v", err)
	}
}

func TestUpdateTargetCompletesFundedCampaign(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner, donor := env.user(t, "Owner"), env.user(t, "Donor")
	cat := env.category(t, "Water")
	c := env.campaign(t, campaignSeed{owner: owner.ID, category: cat.ID, target: "1000"})
	if _, err := env.donations.Create(ctx, donor.ID, c.ID, DonationInput{Amount: dec("500")}); err != nil {
		t.Fatalf("donate: %v", err)
	}

	title := "Still raising money"
	updated, err := env.campaigns.Update(ctx, owner.ID, c.ID, CampaignPatch{Title: &title})
	if err != nil {
		t.Fatalf("update title: %v", err)
	}
	if updated.Status != models.StatusActive {
		t.Fatalf("title edit must not change status, got %s", updated.Status)
	}

	updated, err = env.campaigns.Update(ctx, owner.ID, c.ID, CampaignPatch{TargetAmount: ptr(dec("400"))})
	if err != nil {
		t.Fatalf("update target: %v", err)
	}
	if updated.Status != models.StatusCompleted {
		t.Fatalf("expected completed once the target is met, got %s", updated.Status)
	}
	if stored := env.reload(t, c.ID); stored.Status != models.StatusCompleted || !stored.TargetAmount.Equal(dec("400")) {
		t.Fatalf("expected stored completed campaign with target 400, got %s %s", stored.Status, stored.TargetAmount)
	}
}

func TestExplicitStatusIsNotRecomputed(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "Owner")
	cat := env.category(t, "Water")
	c := env.campaign(t, campaignSeed{owner: owner.ID, category: cat.ID, target: "1000", current: "500", status: models.StatusCancelled})

	active := models.StatusActive
	updated, err := env.campaigns.Update(context.Background(), owner.ID, c.ID, CampaignPatch{Status: &active, TargetAmount: ptr(dec("400"))})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != models.StatusActive {
		t.Fatalf("expected the requested status to stick, got %s", updated.Status)
	}
}

func TestUpdateCampaignStatus(t *testing.T) {
	tests := []struct {
		from models.CampaignStatus
		to   models.CampaignStatus
		want error
	}{
		{models.StatusActive, models.StatusCompleted, nil},
		{models.StatusActive, models.StatusCancelled, nil},
		{models.StatusActive, models.StatusActive, nil},
		{models.StatusCancelled, models.StatusActive, nil},
		{models.StatusCancelled, models.StatusCancelled, nil},
		{models.StatusCancelled, models.StatusCompleted, apperr.ErrInvalidTransition},
		{models.StatusCompleted, models.StatusActive, apperr.ErrInvalidTransition},
		{models.StatusCompleted, models.StatusCancelled, apperr.ErrInvalidTransition},
		{models.StatusCompleted, models.StatusCompleted, apperr.ErrInvalidTransition},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			env := newTestEnv(t)
			owner := env.user(t, "Owner")
			cat := env.category(t, "Water")
			c := env.campaign(t, campaignSeed{owner: owner.ID, category: cat.ID, target: "1000", status: tt.from})

			to := tt.to
			_, err := env.campaigns.Update(context.Background(), owner.ID, c.ID, CampaignPatch{Status: &to})
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			want := tt.to
			if tt.want != nil {
				want = tt.from
			}
			if got := env.reload(t, c.ID).Status; got != want {
				t.Fatalf("expected stored status %s, got %s", want, got)
			}
		})
	}
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "Owner")
	cat := env.category(t, "Water")
	c := env.campaign(t, campaignSeed{owner: owner.ID, category: cat.ID, target: "1000"})

	status := models.CampaignStatus("paused")
	if _, err := env.campaigns.Update(context.Background(), owner.ID, c.ID, CampaignPatch{Status: &status}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReactivatedCampaignPastDeadlineIsCancelledAgain(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "Owner")
	cat := env.category(t, "Water")
	c := env.campaign(t, campaignSeed{
		owner: owner.ID, category: cat.ID, target: "1000",
		status: models.StatusCancelled, deadline: env.clock.Now().Add(-time.Hour),
	})

	active := models.StatusActive
	if _, err := env.campaigns.Update(context.Background(), owner.ID, c.ID, CampaignPatch{Status: &active}); err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	updated, tr, err := env.campaigns.RecomputeStatus(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if updated.Status != models.StatusCancelled || tr.From != models.StatusActive {
		t.Fatalf("expected active -> cancelled, got %+v", tr)
	}
}

func TestRecomputeStatus(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "Owner")
	cat := env.category(t, "Water")
	past := env.clock.Now().Add(-time.Hour)

	funded := env.campaign(t, campaignSeed{owner: owner.ID, category: cat.ID, target: "100", current: "100", deadline: past})
	running := env.campaign(t, campaignSeed{owner: owner.ID, category: cat.ID, target: "100", current: "10"})

	got, tr, err := env.campaigns.RecomputeStatus(context.Background(), funded.ID)
	if err != nil {
		t.Fatalf("recompute funded: %v", err)
	}
	if got.Status != models.StatusCompleted || !tr.Changed() {
		t.Fatalf("reaching the goal should win over the deadline, got %s", got.Status)
	}

	got, tr, err = env.campaigns.RecomputeStatus(context.Background(), running.ID)
	if err != nil {
		t.Fatalf("recompute running: %v", err)
	}
	if got.Status != models.StatusActive || tr.Changed() {
		t.Fatalf("expected no change, got %+v", tr)
	}

	if _, _, err := env.campaigns.RecomputeStatus(context.Background(), 999); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestExpireOverdue(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "Owner")
	cat := env.category(t, "Water")
	now := env.clock.Now()

	overdue := env.campaign(t, campaignSeed{owner: owner.ID, category: cat.ID, target: "100", deadline: now.Add(-time.Minute)})
	funded := env.campaign(t, campaignSeed{owner: owner.ID, category: cat.ID, target: "100", current: "150", deadline: now.Add(-time.Minute)})
	future := env.campaign(t, campaignSeed{owner: owner.ID, category: cat.ID, target: "100", deadline: now.Add(time.Hour)})
	done := env.campaign(t, campaignSeed{owner: owner.ID, category: cat.ID, target: "100", deadline: now.Add(-time.Hour), status: models.StatusCompleted})

	changed, err := env.campaigns.ExpireOverdue(context.Background())
	if err != nil {
		t.Fatalf("expire: %v", err)
	}
	if changed != 2 {
		t.Fatalf("expected 2 transitions, got %d", changed)
	}

	want := map[uint64]models.CampaignStatus{
		overdue.ID: models.StatusCancelled,
		funded.ID:  models.StatusCompleted,
		future.ID:  models.StatusActive,
		done.ID:    models.StatusCompleted,
	}
	for id, status := range want {
		if got := env.reload(t, id).Status; got != status {
			t.Errorf("campaign %d: expected %s, got %s", id, status, got)
		}
	}

	env.clock.Advance(2 * time.Hour)
	if changed, err = env.campaigns.ExpireOverdue(context.Background()); err != nil || changed != 1 {
		t.Fatalf("expected the future campaign to expire, got %d %v", changed, err)
	}
}

func TestDeleteCampaign(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner, donor := env.user(t, "Owner"), env.user(t, "Donor")
	cat := env.category(t, "Water")
	empty := env.campaign(t, campaignSeed{owner: owner.ID, category: cat.ID, target: "1000"})
	funded := env.campaign(t, campaignSeed{owner: owner.ID, category: cat.ID, target: "1000"})

	if _, err := env.comments.Create(ctx, donor.ID, empty.ID, CommentInput{Text: "Go go go"}); err != nil {
		t.Fatalf("comment: %v", err)
	}
	if _, err := env.donations.Create(ctx, donor.ID, funded.ID, DonationInput{Amount: dec("5")}); err != nil {
		t.Fatalf("donate: %v", err)
	}

	if err := env.campaigns.Delete(ctx, donor.ID, empty.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := env.campaigns.Delete(ctx, owner.ID, funded.ID); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict for funded campaign, got %v", err)
	}
	if err := env.campaigns.Delete(ctx, owner.ID, empty.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := env.campaigns.Get(ctx, empty.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected deleted campaign to be gone, got %v", err)
	}
	var comments int64
	env.db.Model(&models.Comment{}).Where("campaign_id = ?", empty.ID).Count(&comments)
	if comments != 0 {
		t.Fatalf("expected comments to be removed, %d left", comments)
	}
}

func TestListCampaigns(t *testing.T) {
	env := newTestEnv(t)
	alice, bob := env.user(t, "Alice"), env.user(t, "Bob")
	water, food := env.category(t, "Water"), env.category(t, "Food")

	for i := 0; i < 3; i++ {
		env.campaign(t, campaignSeed{owner: alice.ID, category: water.ID, target: "100"})
	}
	env.campaign(t, campaignSeed{owner: bob.ID, category: food.ID, target: "100"})
	env.campaign(t, campaignSeed{owner: bob.ID, category: water.ID, target: "100", status: models.StatusCancelled})

	tests := []struct {
		name   string
		filter CampaignFilter
		page   Page
		total  int64
		items  int
	}{
		{"all", CampaignFilter{}, NewPage(1, 10), 5, 5},
		{"paged", CampaignFilter{}, NewPage(2, 2), 5, 2},
		{"last page", CampaignFilter{}, NewPage(3, 2), 5, 1},
		{"by category", CampaignFilter{CategoryID: water.ID}, NewPage(1, 10), 4, 4},
		{"by owner", CampaignFilter{OwnerID: bob.ID}, NewPage(1, 10), 2, 2},
		{"by status", CampaignFilter{Status: models.StatusCancelled}, NewPage(1, 10), 1, 1},
		{"combined", CampaignFilter{OwnerID: bob.ID, CategoryID: water.ID, Status: models.StatusActive}, NewPage(1, 10), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := env.campaigns.List(context.Background(), tt.filter, tt.page)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if res.Total != tt.total || len(res.Items) != tt.items {
				t.Fatalf("expected %d/%d, got %d/%d", tt.items, tt.total, len(res.Items), res.Total)
			}
			for _, c := range res.Items {
				if c.User == nil || c.User.Name == "" || c.User.Email != "" {
					t.Fatalf("expected owner name without email, got %+v", c.User)
				}
			}
		})
	}

	if _, err := env.campaigns.List(context.Background(), CampaignFilter{Status: "paused"}, NewPage(1, 10)); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}
