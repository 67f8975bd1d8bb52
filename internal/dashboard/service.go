package dashboard

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// loadTimeout bounds a shared load, which outlives any single caller.
const loadTimeout = 30 * time.Second

// Service hands out dashboard summaries. Populated boards are kept for
// ttl and served without touching the sources; degraded boards are
// reloaded on the next request. Concurrent requests of one viewer share
// one load.
type Service struct {
	agg    *Aggregator
	ttl    time.Duration
	boards *gocache.Cache
	group  singleflight.Group
	mu     sync.Mutex
}

// NewService caches boards for ttl. A zero ttl disables caching.
func NewService(sources Sources, ttl time.Duration) *Service {
	return &Service{
		agg:    NewAggregator(sources),
		ttl:    ttl,
		boards: gocache.New(ttl, 2*ttl),
	}
}

func (s *Service) board(viewerID string) *Board {
	if s.ttl <= 0 {
		return NewBoard(s.agg, viewerID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, found := s.boards.Get(viewerID); found {
		return cached.(*Board)
	}
	b := NewBoard(s.agg, viewerID)
	s.boards.Set(viewerID, b, gocache.DefaultExpiration)
	return b
}

// Summary returns the viewer's dashboard. The error is non-nil only when
// ctx ends first.
func (s *Service) Summary(ctx context.Context, viewerID string) (Summary, error) {
	b := s.board(viewerID)
	if b.State() == Populated {
		return b.Summary(), nil
	}

	ch := s.group.DoChan(viewerID, func() (interface{}, error) {
		// A load may have finished between the check above and here.
		if b.State() == Populated {
			return b.Summary(), nil
		}
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()
		return b.Load(loadCtx)
	})

	select {
	case <-ctx.Done():
		return Summary{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Summary{}, res.Err
		}
		return res.Val.(Summary), nil
	}
}

// Forget drops the cached board of viewerID, so the next Summary reloads.
// A load still running for the dropped board is detached: later requests
// start a new load instead of joining it.
func (s *Service) Forget(viewerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boards.Delete(viewerID)
	s.group.Forget(viewerID)
}
