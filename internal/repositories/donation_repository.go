package repositories

import (
	"github.com/graceworks/grace-backend/internal/models"
	"gorm.io/gorm"
)

// DonationRepository defines the interface for donation records
type DonationRepository interface {
	Create(donation *models.Donation) error
	GetByUserID(userID string) ([]models.Donation, error)
	GetByNgoID(ngoID string) ([]models.Donation, error)
	Summary() ([]models.DonationSummary, error)
}

// PostgresDonationRepository implements DonationRepository using GORM
type PostgresDonationRepository struct {
	db *gorm.DB
}

// NewPostgresDonationRepository creates a new PostgresDonationRepository
func NewPostgresDonationRepository(db *gorm.DB) *PostgresDonationRepository {
	return &PostgresDonationRepository{db: db}
}

// Create records a new donation
func (r *PostgresDonationRepository) Create(donation *models.Donation) error {
	return r.db.Create(donation).Error
}

// GetByUserID retrieves all donations made by a user, newest first
func (r *PostgresDonationRepository) GetByUserID(userID string) ([]models.Donation, error) {
	var donations []models.Donation
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&donations).Error
	return donations, err
}

// GetByNgoID retrieves all donations received by an NGO, newest first
func (r *PostgresDonationRepository) GetByNgoID(ngoID string) ([]models.Donation, error) {
	var donations []models.Donation
	err := r.db.Where("ngo_id = ?", ngoID).Order("created_at DESC").Find(&donations).Error
	return donations, err
}

// Summary aggregates donation count and total amount per currency
func (r *PostgresDonationRepository) Summary() ([]models.DonationSummary, error) {
	var rows []models.DonationSummary
	err := r.db.Model(&models.Donation{}).
		Select("currency, COUNT(*) AS count, SUM(amount) AS total").
		Group("currency").
		Scan(&rows).Error
	return rows, err
}
