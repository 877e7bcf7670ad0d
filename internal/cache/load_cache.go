package cache

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/dthlogistics/release-portal/internal/metrics"
	"github.com/dthlogistics/release-portal/internal/repository"
)

type LoadRepository interface {
	GetActive(ctx context.Context) ([]*repository.Load, error)
}

// LoadCache keeps non-terminal loads keyed by verification token for the
// public gateway read path. The release service keeps it coherent on
// every status mutation; confirmations always go to the store directly.
type LoadCache struct {
	mu    sync.RWMutex
	cache map[string]*repository.Load
	repo  LoadRepository
	log   *zap.Logger
}

func NewLoadCache(repo LoadRepository, log *zap.Logger) *LoadCache {
	return &LoadCache{
		cache: make(map[string]*repository.Load),
		repo:  repo,
		log:   log,
	}
}

func (c *LoadCache) LoadInitialData(ctx context.Context) error {
	loads, err := c.repo.GetActive(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, load := range loads {
		loadCopy := *load
		c.cache[load.VerificationToken] = &loadCopy
	}
	metrics.LoadCacheItems.Set(float64(len(c.cache)))
	c.log.Info("load cache warmed", zap.Int("loads", len(c.cache)))
	return nil
}

func (c *LoadCache) Get(token string) (*repository.Load, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	load, found := c.cache[token]
	if !found {
		return nil, false
	}
	loadCopy := *load
	return &loadCopy, true
}

// Set stores an active load and evicts terminal ones.
func (c *LoadCache) Set(load *repository.Load) {
	if load == nil {
		return
	}
	if isTerminal(load.Status) {
		c.Delete(load.VerificationToken)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	loadCopy := *load
	c.cache[load.VerificationToken] = &loadCopy
	metrics.LoadCacheItems.Set(float64(len(c.cache)))
}

func (c *LoadCache) Delete(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, found := c.cache[token]; found {
		delete(c.cache, token)
		metrics.LoadCacheItems.Set(float64(len(c.cache)))
	}
}

func isTerminal(status string) bool {
	return status == repository.StatusUsed || status == repository.StatusVoid
}
