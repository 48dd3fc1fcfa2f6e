package marketplace

import "slices"

// Role is the client-asserted role of the signed-in user.
type Role string

const (
	RoleTraveller Role = "TRAVELLER"
	RoleOwner     Role = "OWNER"
	RoleAdmin     Role = "ADMIN"
)

// ListingStatus is the rentability state of a listing.
type ListingStatus string

const (
	StatusAvailable   ListingStatus = "available"
	StatusBooked      ListingStatus = "booked"
	StatusMaintenance ListingStatus = "maintenance"
)

func (s ListingStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusBooked, StatusMaintenance:
		return true
	}
	return false
}

// BookingStatus is the lifecycle state of a trip.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingPending   BookingStatus = "pending"
	BookingCancelled BookingStatus = "cancelled"
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Amenities struct {
	EVCharging  bool `json:"evCharging"`
	Bathroom    bool `json:"bathroom"`
	WaterHookup bool `json:"waterHookup"`
	WiFi        bool `json:"wifi"`
	PetFriendly bool `json:"petFriendly"`
}

// Checkpoint is one item of a listing's verification checklist.
type Checkpoint struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Verified    bool   `json:"isVerified"`
}

type Review struct {
	ID      string  `json:"id"`
	Author  string  `json:"userName"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
	Date    string  `json:"date"`
}

// Listing is a rentable plot owned by an Owner. OwnerName is denormalized
// for display. PricePerNight is in whole currency units.
type Listing struct {
	ID            string        `json:"id" validate:"required"`
	OwnerID       string        `json:"ownerId" validate:"required"`
	OwnerName     string        `json:"ownerName"`
	Title         string        `json:"title" validate:"required"`
	Description   string        `json:"description"`
	Location      string        `json:"location" validate:"required"`
	Coordinates   Coordinates   `json:"coordinates"`
	PricePerNight int64         `json:"pricePerNight" validate:"gte=0"`
	ImageURL      string        `json:"imageUrl" validate:"omitempty,url"`
	Amenities     Amenities     `json:"amenities"`
	Checkpoints   []Checkpoint  `json:"checkpoints"`
	Reviews       []Review      `json:"reviews"`
	OverallRating float64       `json:"overallRating" validate:"gte=0,lte=5"`
	Status        ListingStatus `json:"status" validate:"oneof=available booked maintenance"`
}

// SiteConfig is the singleton branding and content record.
type SiteConfig struct {
	PrimaryColor   string `json:"primaryColor" validate:"required,hexcolor"`
	HeroImageURL   string `json:"heroImageUrl" validate:"omitempty,url"`
	LogoURL        string `json:"logoUrl,omitempty" validate:"omitempty,url"`
	SiteName       string `json:"siteName" validate:"required"`
	Tagline        string `json:"tagline"`
	PrivacyContent string `json:"privacyContent"`
	SafetyContent  string `json:"safetyContent"`
	SupportContent string `json:"supportContent"`
	AboutContent   string `json:"aboutContent"`
	ContactContent string `json:"contactContent"`
}

// Booking is a trip record. The Plot* fields are a snapshot taken at booking
// time so history survives deletion of the listing.
type Booking struct {
	ID           string        `json:"id"`
	PlotID       string        `json:"plotId"`
	TravellerID  string        `json:"travellerId"`
	StartDate    string        `json:"startDate"`
	EndDate      string        `json:"endDate"`
	TotalPrice   int64         `json:"totalPrice"`
	Status       BookingStatus `json:"status"`
	PlotTitle    string        `json:"plotTitle,omitempty"`
	PlotLocation string        `json:"plotLocation,omitempty"`
	PlotImageURL string        `json:"plotImageUrl,omitempty"`
}

// User is the signed-in identity with its bookmark set attached.
type User struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Role     Role     `json:"role"`
	Avatar   string   `json:"avatar,omitempty"`
	SavedIDs []string `json:"savedPlotIds"`
}

// IsSaved reports whether the listing id is in the user's bookmark set.
func (u User) IsSaved(id string) bool {
	return slices.Contains(u.SavedIDs, id)
}

// clone returns a deep copy so callers can't mutate cached collections.
func (l Listing) clone() Listing {
	out := l
	out.Checkpoints = slices.Clone(l.Checkpoints)
	out.Reviews = slices.Clone(l.Reviews)
	return out
}

func cloneListings(in []Listing) []Listing {
	out := make([]Listing, len(in))
	for i, l := range in {
		out[i] = l.clone()
	}
	return out
}
