package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/memorias-app/memorias/common/cache"
	"github.com/memorias-app/memorias/common/clients"
	"github.com/memorias-app/memorias/common/logger"
	"github.com/memorias-app/memorias/common/models"
)

// SuggestService serves typeahead suggestions for songs and places. Upstream
// failures degrade to empty results: a broken catalog must never break album
// editing. Each (user, kind) pair is debounced so rapid keystrokes collapse
// into a single upstream call, and the newest query always wins.
type SuggestService struct {
	music     clients.MusicCatalog
	places    clients.Geocoder
	cache     cache.Cache
	debouncer *Debouncer
	limit     int
	cacheTTL  time.Duration
	log       *logger.Logger
}

// NewSuggestService creates a suggestion service
func NewSuggestService(music clients.MusicCatalog, places clients.Geocoder, c cache.Cache, quiet time.Duration, limit int, cacheTTL time.Duration, log *logger.Logger) *SuggestService {
	return &SuggestService{
		music:     music,
		places:    places,
		cache:     c,
		debouncer: NewDebouncer(quiet),
		limit:     limit,
		cacheTTL:  cacheTTL,
		log:       log,
	}
}

// SearchMusic returns song suggestions for the query. key identifies the
// typing session (the user id); concurrent queries with the same key are
// debounced against each other.
func (s *SuggestService) SearchMusic(ctx context.Context, key, query string) ([]models.Song, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Song{}, nil
	}

	var songs []models.Song
	cacheKey := "suggest:music:" + strings.ToLower(query)
	if s.cachedResult(ctx, cacheKey, &songs) {
		return songs, nil
	}

	err := s.debouncer.Do(ctx, "music:"+key, func(ctx context.Context) error {
		found, err := s.music.SearchTracks(ctx, query, s.limit)
		if err != nil {
			return err
		}
		songs = found
		return nil
	})
	if err != nil {
		return s.degradeSongs(err, query)
	}

	s.storeResult(ctx, cacheKey, songs)
	return songs, nil
}

// SearchPlaces returns place suggestions for the query, debounced per key
func (s *SuggestService) SearchPlaces(ctx context.Context, key, query string) ([]models.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Place{}, nil
	}

	var places []models.Place
	cacheKey := "suggest:place:" + strings.ToLower(query)
	if s.cachedResult(ctx, cacheKey, &places) {
		return places, nil
	}

	err := s.debouncer.Do(ctx, "place:"+key, func(ctx context.Context) error {
		found, err := s.places.SearchPlaces(ctx, query, s.limit)
		if err != nil {
			return err
		}
		places = found
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSuperseded) || errors.Is(err, context.Canceled) {
			return []models.Place{}, err
		}
		s.log.Warn("place suggestions degraded", "query", query, "error", err)
		return []models.Place{}, nil
	}

	s.storeResult(ctx, cacheKey, places)
	return places, nil
}

// degradeSongs maps upstream failures to an empty result and lets
// superseded/cancelled lookups propagate so handlers can drop the response
func (s *SuggestService) degradeSongs(err error, query string) ([]models.Song, error) {
	if errors.Is(err, ErrSuperseded) || errors.Is(err, context.Canceled) {
		return []models.Song{}, err
	}
	s.log.Warn("music suggestions degraded", "query", query, "error", err)
	return []models.Song{}, nil
}

func (s *SuggestService) cachedResult(ctx context.Context, key string, out any) bool {
	data, found, err := s.cache.Get(ctx, key)
	if err != nil || !found {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.log.Warn("dropping corrupt suggestion cache entry", "key", key, "error", err)
		_ = s.cache.Delete(ctx, key)
		return false
	}
	return true
}

func (s *SuggestService) storeResult(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.log.Warn("failed to cache suggestions", "key", key, "error", err)
	}
}
