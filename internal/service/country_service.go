package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"countryhub/internal/cache"
	"countryhub/internal/countries"
)

const countryCacheTTL = 10 * time.Minute

// CountryService is a read-only pass-through to the third-party country
// API with a short-lived snapshot cache in front of it.
type CountryService interface {
	All(ctx context.Context) (json.RawMessage, error)
	ByName(ctx context.Context, name string) (json.RawMessage, error)
	ByRegion(ctx context.Context, region string) (json.RawMessage, error)
	ByCode(ctx context.Context, code string) (json.RawMessage, error)
}

type countryService struct {
	client *countries.Client
	cache  *cache.Client
}

// NewCountryService builds a CountryService.
func NewCountryService(client *countries.Client, cache *cache.Client) CountryService {
	return &countryService{client: client, cache: cache}
}

func (s *countryService) All(ctx context.Context) (json.RawMessage, error) {
	return s.cached(ctx, "countries:all", func() (json.RawMessage, error) {
		return s.client.All(ctx)
	})
}

func (s *countryService) ByName(ctx context.Context, name string) (json.RawMessage, error) {
	return s.cached(ctx, "countries:name:"+strings.ToLower(name), func() (json.RawMessage, error) {
		return s.client.ByName(ctx, name)
	})
}

func (s *countryService) ByRegion(ctx context.Context, region string) (json.RawMessage, error) {
	return s.cached(ctx, "countries:region:"+strings.ToLower(region), func() (json.RawMessage, error) {
		return s.client.ByRegion(ctx, region)
	})
}

func (s *countryService) ByCode(ctx context.Context, code string) (json.RawMessage, error) {
	return s.cached(ctx, "countries:alpha:"+strings.ToUpper(code), func() (json.RawMessage, error) {
		return s.client.ByCode(ctx, code)
	})
}

func (s *countryService) cached(ctx context.Context, key string, fetch func() (json.RawMessage, error)) (json.RawMessage, error) {
	if data, _ := s.cache.Get(ctx, key); data != nil {
		return json.RawMessage(data), nil
	}
	snapshot, err := fetch()
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, snapshot, countryCacheTTL)
	return snapshot, nil
}
