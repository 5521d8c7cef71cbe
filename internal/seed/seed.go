// Package seed loads the default categories and a demo account into an empty
// database.
package seed

import (
	"context"
	"fmt"

	"github.com/GiorgiUbiria/donation_platform/internal/auth"
	"github.com/GiorgiUbiria/donation_platform/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DemoEmail    = "demo@donations.local"
	DemoPassword = "Demo1234"
)

var defaultCategories = []models.Category{
	{Name: "Health", Description: "Medical treatment, surgery and care"},
	{Name: "Education", Description: "Schools, scholarships and learning material"},
	{Name: "Animals", Description: "Shelters, rescue and veterinary care"},
	{Name: "Environment", Description: "Conservation, clean-up and reforestation"},
	{Name: "Emergencies", Description: "Disaster relief and urgent aid"},
	{Name: "Community", Description: "Local projects and neighbourhood initiatives"},
}

// Run inserts whatever default rows are missing. It is safe to call on every
// start.
func Run(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	log = log.Named("seed")
	db = db.WithContext(ctx)

	var existing []string
	if err := db.Model(&models.Category{}).Pluck("name", &existing).Error; err != nil {
		return fmt.Errorf("seed check failed: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}
	var missing []models.Category
	for _, c := range defaultCategories {
		if !have[c.Name] {
			missing = append(missing, c)
		}
	}

	var demoUsers int64
	if err := db.Model(&models.User{}).Where("email = ?", DemoEmail).Count(&demoUsers).Error; err != nil {
		return fmt.Errorf("seed check failed: %w", err)
	}
	if len(missing) == 0 && demoUsers > 0 {
		log.Info("seed already applied, skipping")
		return nil
	}

	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if len(missing) > 0 {
			if err := tx.Create(&missing).Error; err != nil {
				return err
			}
		}
		if demoUsers == 0 {
			demo := models.User{Name: "Demo User", Email: DemoEmail, Password: hash}
			if err := tx.Create(&demo).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	log.Info("seeded default data",
		zap.Int("categories", len(missing)),
		zap.Bool("demo_user", demoUsers == 0),
		zap.String("demo_email", DemoEmail),
	)
	return nil
}
