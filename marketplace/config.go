package marketplace

import (
	"context"
	"encoding/json"

	"unwind/store"
)

// ConfigRepository owns the singleton site configuration.
type ConfigRepository struct {
	slot *slot[SiteConfig]
}

func NewConfigRepository(s store.Store, seed SeedProvider) *ConfigRepository {
	return &ConfigRepository{slot: &slot[SiteConfig]{
		store:       s,
		key:         KeyConfig,
		decode:      decodeConfig,
		encode:      func(c SiteConfig) ([]byte, error) { return json.Marshal(c) },
		seed:        seed.SiteConfig,
		persistSeed: true,
	}}
}

// Get returns the stored configuration, or the default on first run.
func (r *ConfigRepository) Get(ctx context.Context) (SiteConfig, error) {
	return r.slot.load(ctx)
}

// Update replaces the whole record. No field validation happens here.
func (r *ConfigRepository) Update(ctx context.Context, cfg SiteConfig) (SiteConfig, error) {
	if err := r.slot.replace(ctx, cfg); err != nil {
		return SiteConfig{}, err
	}
	return cfg, nil
}

// Reset restores the default configuration.
func (r *ConfigRepository) Reset(ctx context.Context) (SiteConfig, error) {
	return r.Update(ctx, r.slot.seed())
}
