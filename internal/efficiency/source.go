package efficiency

import (
	"context"
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/Christbey/picksports-sub004/internal/models"
	"github.com/google/uuid"
)

// Source yields a team's efficiency metrics for a season. Implementations
// include the Postgres repository and the HTTP provider client. A nil result
// with models.ErrNotFound means no metrics exist yet for that team/season;
// prediction falls back to Elo-only components.
type Source interface {
	ForTeam(ctx context.Context, teamID uuid.UUID, season int) (*models.TeamEfficiency, error)
}

// CachedSource memoizes lookups from an underlying Source for the duration of
// a batch run. Misses (ErrNotFound) are cached too so a team without metrics
// is not re-queried for every game on the slate.
type CachedSource struct {
	inner Source
	cache *cache.Cache
}

// NewCachedSource wraps a source with a TTL cache
func NewCachedSource(inner Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		inner: inner,
		cache: cache.New(ttl, ttl*2),
	}
}

type cachedMiss struct{}

// ForTeam implements Source
func (s *CachedSource) ForTeam(ctx context.Context, teamID uuid.UUID, season int) (*models.TeamEfficiency, error) {
	key := fmt.Sprintf("%s:%d", teamID, season)
	if v, found := s.cache.Get(key); found {
		if _, miss := v.(cachedMiss); miss {
			return nil, models.ErrNotFound
		}
		return v.(*models.TeamEfficiency), nil
	}

	eff, err := s.inner.ForTeam(ctx, teamID, season)
	if err == models.ErrNotFound {
		s.cache.SetDefault(key, cachedMiss{})
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, eff)
	return eff, nil
}
