package marketplace

// SeedProvider supplies the first-run value of each collection. Every method
// must be deterministic and return fresh copies.
type SeedProvider interface {
	Listings() []Listing
	SiteConfig() SiteConfig
	Trips() []Booking
}

// DefaultSeed is the built-in catalog shipped with the app.
type DefaultSeed struct{}

var _ SeedProvider = DefaultSeed{}

func (DefaultSeed) SiteConfig() SiteConfig {
	return SiteConfig{
		PrimaryColor:   "#4f46e5",
		HeroImageURL:   "https://www.godigit.com/content/dam/godigit/directportal/en/contenthm/best-places-to-visit-in-india.jpg",
		SiteName:       "UnWind",
		Tagline:        "Discover Incredible Places, Rest with confidence.",
		PrivacyContent: "Your journey privacy is our top priority. We only reveal sanctuary coordinates after a booking is confirmed.",
		SafetyContent:  "Every UnWind plot undergoes a mandatory 15-point inspection specialized for diverse terrains.",
		SupportContent: "Our support team is available 24/7 for active bookings at support@unwind.com.",
		AboutContent:   "UnWind was founded to provide safe, private, and reliable places to rest for RV travellers.",
		ContactContent: "Reach us at contact@unwind.com for partnership or support inquiries.",
	}
}

func (DefaultSeed) Trips() []Booking {
	return []Booking{
		{
			ID:           "b1",
			PlotID:       "p1",
			TravellerID:  "u1",
			StartDate:    "2024-01-15",
			EndDate:      "2024-01-17",
			TotalPrice:   9500,
			Status:       BookingConfirmed,
			PlotTitle:    "Goa Horizon Beach Plot",
			PlotLocation: "South Goa, Goa",
			PlotImageURL: "https://www.tourmyindia.com/blog//wp-content/uploads/2021/08/Best-Beach-Destinations-in-India.jpg",
		},
	}
}

func (DefaultSeed) Listings() []Listing {
	all := Amenities{EVCharging: true, Bathroom: true, WaterHookup: true, WiFi: true, PetFriendly: true}
	return []Listing{
		{
			ID: "p1", OwnerID: "o1", OwnerName: "Priya Patel",
			Title:         "Goa Horizon Beach Plot",
			Description:   "A premium beachside RV spot in South Goa. Wake up to the Arabian Sea and enjoy private access to the shore.",
			Location:      "South Goa, Goa",
			Coordinates:   Coordinates{Lat: 15.2993, Lng: 73.9814},
			PricePerNight: 4500,
			ImageURL:      "https://www.tourmyindia.com/blog//wp-content/uploads/2021/08/Best-Beach-Destinations-in-India.jpg",
			Amenities:     all,
			Checkpoints:   []Checkpoint{{ID: "c1", Label: "Beach Access", Description: "Direct path to the beach.", Verified: true}},
			Reviews:       []Review{},
			OverallRating: 4.9,
			Status:        StatusAvailable,
		},
		{
			ID: "p2", OwnerID: "o1", OwnerName: "Priya Patel",
			Title:         "Dal Lake Royal View",
			Description:   "Park your RV overlooking the majestic Dal Lake. Experience the serenity of Srinagar in a secured, vetted sanctuary.",
			Location:      "Srinagar, Kashmir",
			Coordinates:   Coordinates{Lat: 34.0837, Lng: 74.7973},
			PricePerNight: 5500,
			ImageURL:      "https://www.holidify.com/images/bgImages/SRINAGAR.jpg",
			Amenities:     Amenities{Bathroom: true, WaterHookup: true, WiFi: true, PetFriendly: true},
			Checkpoints:   []Checkpoint{{ID: "c2", Label: "Lake View", Description: "Unobstructed views of the water.", Verified: true}},
			Reviews:       []Review{},
			OverallRating: 5.0,
			Status:        StatusAvailable,
		},
		{
			ID: "p3", OwnerID: "o2", OwnerName: "Rajesh Kumar",
			Title:         "Kerala Backwater Retreat",
			Description:   "Surrounded by palm trees and tranquil waters, this Alappuzha plot is the ultimate spot for unwinding.",
			Location:      "Alappuzha, Kerala",
			Coordinates:   Coordinates{Lat: 9.4981, Lng: 76.3388},
			PricePerNight: 3800,
			ImageURL:      "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcTn8bTRCXRhaR-gvCx75fhHq-8eGZ23z-t3Fw&s",
			Amenities:     Amenities{EVCharging: true, Bathroom: true, WaterHookup: true, PetFriendly: true},
			Checkpoints:   []Checkpoint{},
			Reviews:       []Review{},
			OverallRating: 4.7,
			Status:        StatusAvailable,
		},
		{
			ID: "p4", OwnerID: "o3", OwnerName: "Vikram Singh",
			Title:         "Jaipur Heritage Heights",
			Description:   "Experience the Pink City from a private plateau with views of Amer Fort. Secure and historically enriched.",
			Location:      "Jaipur, Rajasthan",
			Coordinates:   Coordinates{Lat: 26.9124, Lng: 75.7873},
			PricePerNight: 6200,
			ImageURL:      "https://assets-news.housing.com/news/wp-content/uploads/2022/11/25103509/Famous-tourist-places-in-India-11.jpg",
			Amenities:     Amenities{EVCharging: true, Bathroom: true, WaterHookup: true, WiFi: true},
			Checkpoints:   []Checkpoint{},
			Reviews:       []Review{},
			OverallRating: 4.8,
			Status:        StatusAvailable,
		},
		{
			ID: "p5", OwnerID: "o4", OwnerName: "Anita Desai",
			Title:         "Gulmarg Snow Haven",
			Description:   "A high-altitude RV park in Gulmarg. Perfect for winter enthusiasts looking for a safe place to rest in the mountains.",
			Location:      "Gulmarg, Kashmir",
			Coordinates:   Coordinates{Lat: 34.0484, Lng: 74.3805},
			PricePerNight: 7500,
			ImageURL:      "https://c.myholidays.com/blog/blog/content/images/2020/11/Kashmir.webp",
			Amenities:     Amenities{Bathroom: true, WaterHookup: true, PetFriendly: true},
			Checkpoints:   []Checkpoint{},
			Reviews:       []Review{},
			OverallRating: 4.9,
			Status:        StatusAvailable,
		},
		{
			ID: "p6", OwnerID: "o5", OwnerName: "Sanjay Gupta",
			Title:         "Rishikesh Ganga Edge",
			Description:   "Listen to the sound of the holy Ganges. A serene, spiritually uplifting plot for travellers in Uttarakhand.",
			Location:      "Rishikesh, Uttarakhand",
			Coordinates:   Coordinates{Lat: 30.0869, Lng: 78.2676},
			PricePerNight: 4200,
			ImageURL:      "https://www.indianholiday.com/wordpress/wp-content/uploads/2025/06/uttarakhand.jpg",
			Amenities:     all,
			Checkpoints:   []Checkpoint{},
			Reviews:       []Review{},
			OverallRating: 4.6,
			Status:        StatusAvailable,
		},
		{
			ID: "p7", OwnerID: "o6", OwnerName: "Meera Iyer",
			Title:         "Mysore Palace Overlook",
			Description:   "Enjoy royal vibes from this secure plot near the Amba Vilas Palace. Level ground and excellent security.",
			Location:      "Mysore, Karnataka",
			Coordinates:   Coordinates{Lat: 12.3052, Lng: 76.6552},
			PricePerNight: 4800,
			ImageURL:      "https://www.yourvacationtrip.com/wp-content/uploads/2023/11/Amba-vilas-Place-1024x682-1.jpg",
			Amenities:     all,
			Checkpoints:   []Checkpoint{},
			Reviews:       []Review{},
			OverallRating: 4.9,
			Status:        StatusAvailable,
		},
		{
			ID: "p8", OwnerID: "o1", OwnerName: "Priya Patel",
			Title:         "Hampi Boulder Sanctuary",
			Description:   "Park among the historic ruins and massive boulders of Hampi. A unique, vetted experience for the nomadic soul.",
			Location:      "Hampi, Karnataka",
			Coordinates:   Coordinates{Lat: 15.3350, Lng: 76.4600},
			PricePerNight: 3500,
			ImageURL:      "https://www.indiatravelblog.com/attachments/resources/6563-1-The-Best-Tourist-Places-To-Visit-In-India.jpg",
			Amenities:     Amenities{Bathroom: true, WaterHookup: true, PetFriendly: true},
			Checkpoints:   []Checkpoint{},
			Reviews:       []Review{},
			OverallRating: 4.5,
			Status:        StatusAvailable,
		},
	}
}

// DemoUser returns the stand-in identity the sign-in flow produces for role.
// Unknown roles fall back to the traveller.
func DemoUser(role Role) User {
	switch role {
	case RoleOwner:
		return User{ID: "o1", Name: "Priya Patel", Email: "priya@example.com", Role: RoleOwner, Avatar: "https://i.pravatar.cc/150?u=priya"}
	case RoleAdmin:
		return User{ID: "a1", Name: "UnWind Admin", Email: "admin@unwind.com", Role: RoleAdmin, Avatar: "https://i.pravatar.cc/150?u=admin_user"}
	default:
		return User{ID: "u1", Name: "Arjun Sharma", Email: "arjun@example.com", Role: RoleTraveller, Avatar: "https://i.pravatar.cc/150?u=arjun"}
	}
}
