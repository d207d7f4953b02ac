package safaris

import (
	"strconv"
	"strings"
	"time"
)

const DefaultImage = "https://images.unsplash.com/photo-1516426122078-c23e76319801?w=800&q=80"

const (
	DefaultCurrency = "ZAR"
	DefaultCategory = "morning"
)

var (
	Currencies = []string{"ZAR", "USD", "EUR", "GBP"}
	Durations  = []string{"2 hours", "3 hours", "4 hours", "Half day", "Full day", "Multi-day"}
	Categories = []string{"morning", "afternoon", "night", "private", "specialty"}
)

type Schedule struct {
	StartTime    string `bson:"startTime,omitempty" json:"startTime,omitempty" validate:"max=50"`
	EndTime      string `bson:"endTime,omitempty" json:"endTime,omitempty" validate:"max=50"`
	MeetingPoint string `bson:"meetingPoint,omitempty" json:"meetingPoint,omitempty" validate:"max=200"`
}

type SafariPackage struct {
	ID               string    `bson:"_id,omitempty" json:"id"`
	Name             string    `bson:"name" json:"name"`
	Slug             string    `bson:"slug" json:"slug"`
	Description      string    `bson:"description" json:"description"`
	ShortDescription string    `bson:"shortDescription,omitempty" json:"shortDescription,omitempty"`
	Price            float64   `bson:"price" json:"price"`
	Currency         string    `bson:"currency" json:"currency"`
	Duration         string    `bson:"duration" json:"duration"`
	MaxGuests        int       `bson:"maxGuests" json:"maxGuests"`
	MinGuests        int       `bson:"minGuests" json:"minGuests"`
	Image            string    `bson:"image" json:"image"`
	Features         []string  `bson:"features" json:"features"`
	Includes         []string  `bson:"includes" json:"includes"`
	Requirements     []string  `bson:"requirements" json:"requirements"`
	Schedule         Schedule  `bson:"schedule" json:"schedule"`
	IsAvailable      bool      `bson:"isAvailable" json:"isAvailable"`
	IsPopular        bool      `bson:"isPopular" json:"isPopular"`
	Category         string    `bson:"category" json:"category"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CreateRequest struct {
	Name             string   `json:"name" validate:"required,max=100"`
	Description      string   `json:"description" validate:"required,max=1000"`
	ShortDescription string   `json:"shortDescription" validate:"max=200"`
	Price            float64  `json:"price" validate:"required,gt=0"`
	Currency         string   `json:"currency" validate:"omitempty,oneof=ZAR USD EUR GBP"`
	Duration         string   `json:"duration" validate:"required,safari_duration"`
	MaxGuests        int      `json:"maxGuests" validate:"required,min=1,max=50"`
	MinGuests        *int     `json:"minGuests" validate:"omitempty,min=1,max=50"`
	Image            string   `json:"image" validate:"omitempty,url,max=500"`
	Features         []string `json:"features" validate:"omitempty,max=20,dive,max=200"`
	Includes         []string `json:"includes" validate:"omitempty,max=20,dive,max=200"`
	Requirements     []string `json:"requirements" validate:"omitempty,max=20,dive,max=200"`
	Schedule         Schedule `json:"schedule"`
	IsAvailable      *bool    `json:"isAvailable"`
	IsPopular        *bool    `json:"isPopular"`
	Category         string   `json:"category" validate:"omitempty,oneof=morning afternoon night private specialty"`
}

// UpdateRequest changes only the fields that are present in the body.
type UpdateRequest struct {
	Name             *string   `json:"name" validate:"omitempty,min=1,max=100"`
	Description      *string   `json:"description" validate:"omitempty,min=1,max=1000"`
	ShortDescription *string   `json:"shortDescription" validate:"omitempty,max=200"`
	Price            *float64  `json:"price" validate:"omitempty,gt=0"`
	Currency         *string   `json:"currency" validate:"omitempty,oneof=ZAR USD EUR GBP"`
	Duration         *string   `json:"duration" validate:"omitempty,safari_duration"`
	MaxGuests        *int      `json:"maxGuests" validate:"omitempty,min=1,max=50"`
	MinGuests        *int      `json:"minGuests" validate:"omitempty,min=1,max=50"`
	Image            *string   `json:"image" validate:"omitempty,url,max=500"`
	Features         *[]string `json:"features" validate:"omitempty,max=20,dive,max=200"`
	Includes         *[]string `json:"includes" validate:"omitempty,max=20,dive,max=200"`
	Requirements     *[]string `json:"requirements" validate:"omitempty,max=20,dive,max=200"`
	Schedule         *Schedule `json:"schedule"`
	IsAvailable      *bool     `json:"isAvailable"`
	IsPopular        *bool     `json:"isPopular"`
	Category         *string   `json:"category" validate:"omitempty,oneof=morning afternoon night private specialty"`
}

// ListFilter holds equality filters; nil or empty fields do not filter.
type ListFilter struct {
	Available *bool
	Popular   *bool
	Category  string
}

func (f ListFilter) cacheKey() string {
	var b strings.Builder
	b.WriteString(listCachePrefix)
	b.WriteString("available=")
	b.WriteString(optionalBool(f.Available))
	b.WriteString("|popular=")
	b.WriteString(optionalBool(f.Popular))
	b.WriteString("|category=")
	b.WriteString(f.Category)
	return b.String()
}

func optionalBool(v *bool) string {
	if v == nil {
		return "any"
	}
	return strconv.FormatBool(*v)
}
