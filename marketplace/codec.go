package marketplace

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Decoding is strict: a stored value has to match the current shape exactly
// or it is reported as corrupt instead of flowing into the views.

func decodeStrict(data []byte, v any) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return errors.New("null value")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("trailing data after value")
	}
	return nil
}

func decodeListings(data []byte) ([]Listing, error) {
	var listings []Listing
	if err := decodeStrict(data, &listings); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(listings))
	for i, l := range listings {
		if l.ID == "" {
			return nil, fmt.Errorf("listing %d: empty id", i)
		}
		if _, dup := seen[l.ID]; dup {
			return nil, fmt.Errorf("listing %d: duplicate id %q", i, l.ID)
		}
		seen[l.ID] = struct{}{}
		if !l.Status.Valid() {
			return nil, fmt.Errorf("listing %q: unknown status %q", l.ID, l.Status)
		}
	}
	return listings, nil
}

// ParseListing strictly decodes one listing. Id and status may be blank;
// PrepareListing fills them in.
func ParseListing(data []byte) (Listing, error) {
	var l Listing
	if err := decodeStrict(data, &l); err != nil {
		return Listing{}, err
	}
	return l, nil
}

func decodeConfig(data []byte) (SiteConfig, error) {
	var cfg SiteConfig
	if err := decodeStrict(data, &cfg); err != nil {
		return SiteConfig{}, err
	}
	return cfg, nil
}

func decodeBookmarks(data []byte) ([]string, error) {
	var ids []string
	if err := decodeStrict(data, &ids); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(ids))
	for i, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("bookmark %d: empty id", i)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("bookmark %d: duplicate id %q", i, id)
		}
		seen[id] = struct{}{}
	}
	return ids, nil
}

// encodeList marshals a collection, writing [] rather than null when empty.
func encodeList[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}
