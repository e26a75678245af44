package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NGO represents a charitable organisation profile stored in MongoDB
type NGO struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Mission   string             `json:"mission,omitempty" bson:"mission,omitempty"`
	Category  string             `json:"category,omitempty" bson:"category,omitempty"`
	Website   string             `json:"website,omitempty" bson:"website,omitempty"`
	Logo      string             `json:"logo,omitempty" bson:"logo,omitempty"`
	Verified  bool               `json:"verified" bson:"verified"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// CreateNGORequest defines the request body for registering an NGO profile
type CreateNGORequest struct {
	Name     string `json:"name" validate:"required,min=2,max=200"`
	Mission  string `json:"mission" validate:"omitempty,max=2000"`
	Category string `json:"category" validate:"omitempty,max=100"`
	Website  string `json:"website" validate:"omitempty,url"`
	Logo     string `json:"logo" validate:"omitempty,url"`
}

// UpdateNGORequest defines the mutable fields of an NGO profile
type UpdateNGORequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=200"`
	Mission  *string `json:"mission" validate:"omitempty,max=2000"`
	Category *string `json:"category" validate:"omitempty,max=100"`
	Website  *string `json:"website" validate:"omitempty,url"`
	Logo     *string `json:"logo" validate:"omitempty,url"`
	Verified *bool   `json:"verified"`
}
