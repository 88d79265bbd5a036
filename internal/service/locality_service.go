package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/eandradeg/alltelapp/internal/repository"
	apperrors "github.com/eandradeg/alltelapp/pkg/util"
)

const (
	cacheKeyProvinces    = "geo:provinces"
	cacheKeyCantonPrefix = "geo:cantons:"
)

// LocalityService serves the territorial reference lists backing the
// province and canton dropdowns. The lists change rarely, so reads go
// through a Redis cache when one is configured.
type LocalityService struct {
	localities repository.LocalityRepository
	cache      *redis.Client
	ttl        time.Duration
	logger     *zap.Logger
}

// LocalityDependencies bundles collaborators for the locality service.
type LocalityDependencies struct {
	LocalityRepo repository.LocalityRepository
	Cache        *redis.Client
	CacheTTL     time.Duration
	Logger       *zap.Logger
}

// NewLocalityService constructs the service.
func NewLocalityService(deps LocalityDependencies) *LocalityService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := deps.CacheTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &LocalityService{
		localities: deps.LocalityRepo,
		cache:      deps.Cache,
		ttl:        ttl,
		logger:     logger,
	}
}

// Provinces lists distinct province names, alphabetically ordered.
func (s *LocalityService) Provinces(ctx context.Context) ([]string, error) {
	if cached, ok := s.fromCache(ctx, cacheKeyProvinces); ok {
		return cached, nil
	}
	provinces, err := s.localities.Provinces(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.toCache(ctx, cacheKeyProvinces, provinces)
	return provinces, nil
}

// Cantons lists distinct canton names for a province, alphabetically
// ordered. An unknown province yields an empty list, not an error.
func (s *LocalityService) Cantons(ctx context.Context, provincia string) ([]string, error) {
	key := cacheKeyCantonPrefix + provincia
	if cached, ok := s.fromCache(ctx, key); ok {
		return cached, nil
	}
	cantons, err := s.localities.Cantons(ctx, provincia)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.toCache(ctx, key, cantons)
	return cantons, nil
}

// fromCache returns the cached list when present. Cache failures are
// logged and treated as misses so Postgres stays the source of truth.
func (s *LocalityService) fromCache(ctx context.Context, key string) ([]string, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("geography cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		s.logger.Warn("geography cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return values, true
}

func (s *LocalityService) toCache(ctx context.Context, key string, values []string) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.logger.Warn("geography cache write failed", zap.String("key", key), zap.Error(err))
	}
}
