package marketplace

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Validation belongs to the editors in front of the repositories; the
// repositories themselves trust their callers.

// Validator checks listing and configuration forms.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Listing reports every failed field of l wrapped in ErrInvalidListing.
func (val *Validator) Listing(l Listing) error {
	if err := val.v.Struct(l); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidListing, describe(err))
	}
	return nil
}

// Config reports every failed field of cfg wrapped in ErrInvalidConfig.
func (val *Validator) Config(cfg SiteConfig) error {
	if err := val.v.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, describe(err))
	}
	return nil
}

func describe(err error) string {
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return err.Error()
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", f.Field(), f.Tag(), f.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s", f.Field(), f.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// NewListingDraft returns the blank listing the owner editor starts from.
func NewListingDraft() Listing {
	return Listing{
		PricePerNight: 3500,
		Checkpoints:   []Checkpoint{},
	}
}

// PrepareListing fills in what the editor does not ask for before a save:
// an id when the draft has none, the owner, and the fields a new listing
// starts with. Existing reviews, rating and status are kept on edit.
func PrepareListing(draft Listing, owner User) Listing {
	l := draft.clone()
	if l.ID == "" {
		l.ID = NewListingID()
		l.Reviews = []Review{}
		l.OverallRating = 5.0
		l.Status = StatusAvailable
	}
	if l.OwnerID == "" {
		l.OwnerID = owner.ID
		l.OwnerName = owner.Name
	}
	if l.Checkpoints == nil {
		l.Checkpoints = []Checkpoint{}
	}
	if l.Reviews == nil {
		l.Reviews = []Review{}
	}
	if l.Status == "" {
		l.Status = StatusAvailable
	}
	return l
}

// NewListingID returns a fresh listing id.
func NewListingID() string {
	return "p" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ShareText is the message used when a traveller shares a listing.
func ShareText(l Listing) string {
	return fmt.Sprintf("Check out this amazing sanctuary: %s in %s!", l.Title, l.Location)
}
