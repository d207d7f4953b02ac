package bookings

import (
	"strings"
	"time"

	"wildtrack-backend/internal/schedule"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

var Statuses = []string{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

// PackageNames are the packages a booking enquiry may name.
var PackageNames = []string{
	"Big Five Morning Safari",
	"Family Afternoon Safari",
	"Night Safari Drive",
	"Private Tour",
	"Bird Watching Safari",
	"Photography Safari",
	"Walking Safari",
	"Custom Package",
}

type Booking struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Email         string    `bson:"email" json:"email"`
	Phone         string    `bson:"phone" json:"phone"`
	SafariPackage string    `bson:"safariPackage" json:"safariPackage"`
	Date          time.Time `bson:"date" json:"date"`
	Guests        int       `bson:"guests" json:"guests"`
	Message       string    `bson:"message,omitempty" json:"message,omitempty"`
	TotalAmount   float64   `bson:"totalAmount" json:"totalAmount"`
	Status        string    `bson:"status" json:"status"`
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Summary is what the public submitter gets back.
type Summary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	SafariPackage string  `json:"safariPackage"`
	Date          string  `json:"date"`
	Guests        int     `json:"guests"`
	TotalAmount   float64 `json:"totalAmount"`
	Status        string  `json:"status"`
}

func (b Booking) Summary() Summary {
	return Summary{
		ID:            b.ID,
		Name:          b.Name,
		SafariPackage: b.SafariPackage,
		Date:          b.Date.Format(schedule.DateLayout),
		Guests:        b.Guests,
		TotalAmount:   b.TotalAmount,
		Status:        b.Status,
	}
}

type CreateRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	Email         string `json:"email" validate:"required,emailaddr"`
	Phone         string `json:"phone" validate:"required,max=20"`
	SafariPackage string `json:"safariPackage" validate:"required,safari_package"`
	Date          string `json:"date" validate:"required,isodate"`
	Guests        int    `json:"guests" validate:"required,min=1,max=20"`
	Message       string `json:"message" validate:"max=1000"`
}

func (r *CreateRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.SafariPackage = strings.TrimSpace(r.SafariPackage)
	r.Date = strings.TrimSpace(r.Date)
	r.Message = strings.TrimSpace(r.Message)
}

type UpdateRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	Notes  *string `json:"notes" validate:"omitempty,max=1000"`
}

type ListFilter struct {
	Status string
}

type Stats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Cancelled int64 `json:"cancelled"`
	Completed int64 `json:"completed"`
}

// Recent is the projection shown in the dashboard overview.
type Recent struct {
	ID            string    `bson:"_id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	SafariPackage string    `bson:"safariPackage" json:"safariPackage"`
	Date          time.Time `bson:"date" json:"date"`
	Status        string    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}
