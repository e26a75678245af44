package models

import "gorm.io/gorm"

// Donation represents a donation record stored in PostgreSQL. User and NGO
// references are MongoDB ObjectIDs kept as hex strings.
type Donation struct {
	gorm.Model
	UserID   string  `json:"user_id" gorm:"index"`
	NgoID    string  `json:"ngo_id" gorm:"index"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Message  string  `json:"message,omitempty"`
}

// CreateDonationRequest defines the request body for recording a donation
type CreateDonationRequest struct {
	NgoID    string  `json:"ngo_id" validate:"required,objectid"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency" validate:"required,len=3,alpha"`
	Message  string  `json:"message" validate:"omitempty,max=500"`
}

// DonationSummary is one row of the admin donation report
type DonationSummary struct {
	Currency string  `json:"currency"`
	Count    int64   `json:"count"`
	Total    float64 `json:"total"`
}
