package safaris

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"wildtrack-backend/internal/utils"
	"wildtrack-backend/internal/validation"
)

// RegisterValidations adds the package tags used by the request types.
func RegisterValidations(v *validation.Validator) {
	v.RegisterSet("safari_duration", Durations...)
}

const lodgeReception = "Main Lodge Reception"

// DefaultPackages is the starter catalog. Every call returns fresh ids.
func DefaultPackages(now time.Time) []SafariPackage {
	items := []SafariPackage{
		{
			Name:             "Big Five Morning Safari",
			Description:      "Experience the thrill of tracking the Big Five (lion, leopard, rhino, elephant, and buffalo) in their natural habitat. Our expert guides will take you through the best viewing spots during the golden morning hours when wildlife is most active.",
			ShortDescription: "Track the Big Five during the golden morning hours",
			Price:            1200,
			Duration:         "4 hours",
			MaxGuests:        8,
			MinGuests:        2,
			Image:            "https://images.unsplash.com/photo-1547471080-7cc2caa01a7e?w=800&q=80",
			Features:         []string{"Expert ranger guide", "Open safari vehicle", "Refreshments included", "Small groups"},
			Includes:         []string{"Morning coffee & snacks", "Bottled water", "Binoculars", "Park fees"},
			Requirements:     []string{"Comfortable clothing", "Closed shoes", "Sun hat", "Camera"},
			Schedule:         Schedule{StartTime: "05:30", EndTime: "09:30", MeetingPoint: lodgeReception},
			IsPopular:        true,
			Category:         "morning",
		},
		{
			Name:             "Family Afternoon Safari",
			Description:      "A child-friendly safari experience designed for families. Our patient guides tailor the experience for all ages, ensuring everyone has a memorable time while learning about African wildlife.",
			ShortDescription: "Child-friendly safari perfect for the whole family",
			Price:            950,
			Duration:         "3 hours",
			MaxGuests:        6,
			MinGuests:        2,
			Image:            "https://images.unsplash.com/photo-1551009175-8a68da93d5f9?w=800&q=80",
			Features:         []string{"Family-friendly guide", "Educational focus", "Flexible pace", "Child seats available"},
			Includes:         []string{"Juice & snacks", "Activity booklet", "Junior ranger certificate"},
			Requirements:     []string{"Sun protection", "Comfortable shoes"},
			Schedule:         Schedule{StartTime: "14:00", EndTime: "17:00", MeetingPoint: lodgeReception},
			IsPopular:        true,
			Category:         "afternoon",
		},
		{
			Name:             "Night Safari Drive",
			Description:      "Experience the African bush after dark. Using spotlights, track nocturnal animals like leopards, hyenas, and bush babies. The night safari offers a completely different perspective of the wild.",
			ShortDescription: "Discover nocturnal wildlife under the African stars",
			Price:            1400,
			Duration:         "3 hours",
			MaxGuests:        6,
			MinGuests:        2,
			Image:            "https://images.unsplash.com/photo-1534177616072-ef7dc12044d2?w=800&q=80",
			Features:         []string{"Spotlight tracking", "Nocturnal wildlife", "Star gazing", "Night vision equipment"},
			Includes:         []string{"Warm drinks", "Snacks", "Blankets", "Safety briefing"},
			Requirements:     []string{"Warm jacket", "Closed shoes", "Insect repellent"},
			Schedule:         Schedule{StartTime: "19:00", EndTime: "22:00", MeetingPoint: lodgeReception},
			IsPopular:        true,
			Category:         "night",
		},
		{
			Name:             "Private Tour",
			Description:      "Enjoy an exclusive safari experience with your own private vehicle and guide. Perfect for special occasions, photography enthusiasts, or those seeking a personalized adventure.",
			ShortDescription: "Exclusive private vehicle and dedicated guide",
			Price:            2500,
			Duration:         "Full day",
			MaxGuests:        4,
			MinGuests:        1,
			Image:            "https://images.unsplash.com/photo-1504173010664-32509aeebb62?w=800&q=80",
			Features:         []string{"Private vehicle", "Dedicated guide", "Custom itinerary", "Flexible timing"},
			Includes:         []string{"Full day vehicle", "Private guide", "Gourmet lunch", "Premium drinks"},
			Requirements:     []string{"Advance booking required"},
			Schedule:         Schedule{StartTime: "Flexible", EndTime: "Flexible", MeetingPoint: lodgeReception},
			Category:         "private",
		},
		{
			Name:             "Bird Watching Safari",
			Description:      "UmZulu is home to over 350 bird species. Our specialist birding guide will help you spot everything from majestic raptors to colorful bee-eaters in their natural habitats.",
			ShortDescription: "Spot over 350 bird species with expert guides",
			Price:            800,
			Duration:         "3 hours",
			MaxGuests:        6,
			MinGuests:        2,
			Image:            "https://images.unsplash.com/photo-1444464666168-49d633b86797?w=800&q=80",
			Features:         []string{"Birding specialist", "High-quality binoculars", "Species checklist", "Best viewing spots"},
			Includes:         []string{"Binoculars", "Bird guide book", "Coffee & tea", "Checklist"},
			Requirements:     []string{"Neutral colored clothing", "Camera with zoom lens optional"},
			Schedule:         Schedule{StartTime: "06:00", EndTime: "09:00", MeetingPoint: lodgeReception},
			Category:         "specialty",
		},
		{
			Name:             "Walking Safari",
			Description:      "Experience the bush on foot with our armed rangers. Learn tracking skills, identify plants and insects, and feel the thrill of being close to nature.",
			ShortDescription: "Explore the bush on foot with armed rangers",
			Price:            700,
			Duration:         "2 hours",
			MaxGuests:        8,
			MinGuests:        2,
			Image:            "https://images.unsplash.com/photo-1575550959106-5a7defe28b56?w=800&q=80",
			Features:         []string{"Armed ranger guide", "Tracking lessons", "Botanical education", "Close encounters"},
			Includes:         []string{"Safety briefing", "Walking stick", "Water", "First aid kit"},
			Requirements:     []string{"Good fitness level", "Closed hiking shoes", "Long pants", "Age 16+"},
			Schedule:         Schedule{StartTime: "07:00", EndTime: "09:00", MeetingPoint: lodgeReception},
			Category:         "specialty",
		},
	}

	for i := range items {
		items[i].ID = primitive.NewObjectID().Hex()
		items[i].Slug = utils.Slugify(items[i].Name)
		items[i].Currency = DefaultCurrency
		items[i].IsAvailable = true
		items[i].CreatedAt = now
		items[i].UpdatedAt = now
	}
	return items
}
