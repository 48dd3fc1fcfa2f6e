package main

import (
	"strings"

	"github.com/spf13/cobra"

	"unwind/marketplace"
)

// listingForm maps command flags onto a listing. Only flags the user set
// are applied, so the same form serves add and edit.
type listingForm struct {
	title       string
	location    string
	description string
	imageURL    string
	price       int64
	status      string
	amenities   []string
	lat, lng    float64
}

var amenityNames = []string{"ev", "bathroom", "water", "wifi", "pets"}

func (f *listingForm) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.title, "title", "", "plot title")
	fl.StringVar(&f.location, "location", "", "town, state")
	fl.StringVar(&f.description, "description", "", "long description")
	fl.StringVar(&f.imageURL, "image", "", "image URL")
	fl.Int64Var(&f.price, "price", 0, "price per night")
	fl.StringVar(&f.status, "status", "", "available, booked or maintenance")
	fl.StringSliceVar(&f.amenities, "amenities", nil, "comma separated: "+strings.Join(amenityNames, ","))
	fl.Float64Var(&f.lat, "lat", 0, "latitude")
	fl.Float64Var(&f.lng, "lng", 0, "longitude")
}

func (f *listingForm) apply(cmd *cobra.Command, l marketplace.Listing) marketplace.Listing {
	changed := cmd.Flags().Changed
	if changed("title") {
		l.Title = strings.TrimSpace(f.title)
	}
	if changed("location") {
		l.Location = strings.TrimSpace(f.location)
	}
	if changed("description") {
		l.Description = f.description
	}
	if changed("image") {
		l.ImageURL = strings.TrimSpace(f.imageURL)
	}
	if changed("price") {
		l.PricePerNight = f.price
	}
	if changed("status") {
		l.Status = marketplace.ListingStatus(strings.ToLower(strings.TrimSpace(f.status)))
	}
	if changed("amenities") {
		l.Amenities = parseAmenities(f.amenities)
	}
	if changed("lat") {
		l.Coordinates.Lat = f.lat
	}
	if changed("lng") {
		l.Coordinates.Lng = f.lng
	}
	return l
}

func parseAmenities(names []string) marketplace.Amenities {
	var am marketplace.Amenities
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "ev", "evcharging":
			am.EVCharging = true
		case "bathroom":
			am.Bathroom = true
		case "water", "waterhookup":
			am.WaterHookup = true
		case "wifi":
			am.WiFi = true
		case "pets", "petfriendly":
			am.PetFriendly = true
		}
	}
	return am
}

// configForm maps flags onto the site configuration.
type configForm struct {
	fields map[string]*string
}

func (f *configForm) bind(cmd *cobra.Command) {
	f.fields = map[string]*string{}
	for _, name := range []string{
		"primary-color", "site-name", "tagline", "hero-image", "logo",
		"privacy", "safety", "support", "about", "contact",
	} {
		v := new(string)
		f.fields[name] = v
		cmd.Flags().StringVar(v, name, "", "set "+strings.ReplaceAll(name, "-", " "))
	}
}

func (f *configForm) apply(cmd *cobra.Command, cfg marketplace.SiteConfig) marketplace.SiteConfig {
	targets := map[string]*string{
		"primary-color": &cfg.PrimaryColor,
		"site-name":     &cfg.SiteName,
		"tagline":       &cfg.Tagline,
		"hero-image":    &cfg.HeroImageURL,
		"logo":          &cfg.LogoURL,
		"privacy":       &cfg.PrivacyContent,
		"safety":        &cfg.SafetyContent,
		"support":       &cfg.SupportContent,
		"about":         &cfg.AboutContent,
		"contact":       &cfg.ContactContent,
	}
	for name, dst := range targets {
		if cmd.Flags().Changed(name) {
			*dst = *f.fields[name]
		}
	}
	return cfg
}
