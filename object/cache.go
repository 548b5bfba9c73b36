package object

import (
	"context"
	"log/slog"
	"time"

	"github.com/appbuilder/abcore/log"
	"github.com/jellydator/ttlcache/v3"
)

// Loader fetches an object definition from its source of truth. It returns
// (nil, nil) for unknown objects.
type Loader func(ctx context.Context, id string) (*Object, error)

// CachedRegistry resolves objects through a Loader and keeps the results for a
// limited time.
type CachedRegistry struct {
	c      *ttlcache.Cache[string, *Object]
	load   Loader
	logger *slog.Logger
}

var _ Registry = (*CachedRegistry)(nil)

func NewCachedRegistry(load Loader, size int, expiration time.Duration, logger *slog.Logger) *CachedRegistry {
	c := ttlcache.New(
		ttlcache.WithCapacity[string, *Object](uint64(size)),
		ttlcache.WithTTL[string, *Object](expiration),
	)

	if logger == nil {
		logger = slog.Default()
	}

	return &CachedRegistry{
		c:      c,
		load:   load,
		logger: logger,
	}
}

// ObjectByID returns the cached object or loads it. Loader failures are logged
// and treated as unknown objects; misses are not cached.
func (cr *CachedRegistry) ObjectByID(id string) *Object {
	if item := cr.c.Get(id); item != nil {
		return item.Value()
	}

	o, err := cr.load(context.Background(), id)
	if err != nil {
		cr.logger.Error("could not load object", log.ObjectIDKey, id, log.ErrorKey, err)
		return nil
	}

	if o == nil {
		return nil
	}

	cr.c.Set(id, o, ttlcache.DefaultTTL)

	return o
}

// Invalidate drops the cached entry for the given object.
func (cr *CachedRegistry) Invalidate(id string) {
	cr.c.Delete(id)
}

func (cr *CachedRegistry) Len() int {
	return cr.c.Len()
}

// StartEviction evicts expired entries until ctx is done.
func (cr *CachedRegistry) StartEviction(ctx context.Context) {
	go cr.c.Start()

	<-ctx.Done()

	cr.c.Stop()
}
