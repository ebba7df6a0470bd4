// Package cache keeps small pieces of catalog data on disk between runs.
package cache

import (
	"sync"
	"time"

	"github.com/dexcli/dex/filesystem"
	"github.com/dexcli/dex/key"
	"github.com/dexcli/dex/mangadex"
	"github.com/dexcli/dex/where"
	"github.com/google/uuid"
	"github.com/metafates/gache"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

type cacheData[K comparable, T any] struct {
	Entries map[K]T `json:"entries"`
}

// cacher is a keyed view over a single gache file.
type cacher[K comparable, T any] struct {
	internal *gache.Cache[*cacheData[K, T]]
	mu       sync.RWMutex
}

func newCacher[K comparable, T any](path string, lifetime time.Duration) *cacher[K, T] {
	return &cacher[K, T]{
		internal: gache.New[*cacheData[K, T]](&gache.Options{
			Path:       path,
			Lifetime:   lifetime,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

func (c *cacher[K, T]) Get(key K) mo.Option[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[T]()
	}

	value, ok := data.Entries[key]
	if !ok {
		return mo.None[T]()
	}
	return mo.Some(value)
}

func (c *cacher[K, T]) Set(key K, value T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if expired || data == nil || data.Entries == nil {
		data = &cacheData[K, T]{Entries: make(map[K]T)}
	}

	data.Entries[key] = value
	return c.internal.Set(data)
}

func (c *cacher[K, T]) Delete(key K) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return err
	}

	delete(data.Entries, key)
	return c.internal.Set(data)
}

var titleCacher = newCacher[uuid.UUID, string](where.Titles(), 0)

// Title returns the last display title seen for a manga.
func Title(id uuid.UUID) mo.Option[string] {
	return titleCacher.Get(id)
}

// SetTitle remembers the display title of a manga.
func SetTitle(id uuid.UUID, title string) error {
	return titleCacher.Set(id, title)
}

// ForgetTitle drops a remembered title.
func ForgetTitle(id uuid.UUID) error {
	return titleCacher.Delete(id)
}

var (
	tagsOnce   sync.Once
	tagsCacher *gache.Cache[[]mangadex.Tag]
)

// tagCache is built on first use so the lifetime follows the loaded configuration.
func tagCache() *gache.Cache[[]mangadex.Tag] {
	tagsOnce.Do(func() {
		tagsCacher = gache.New[[]mangadex.Tag](&gache.Options{
			Path:       where.Tags(),
			Lifetime:   time.Duration(viper.GetInt(key.CacheTagsLifetime)) * time.Hour,
			FileSystem: &filesystem.GacheFs{},
		})
	})
	return tagsCacher
}

// Tags returns the cached tag list unless it has expired.
func Tags() mo.Option[[]mangadex.Tag] {
	tags, expired, err := tagCache().Get()
	if err != nil || expired || len(tags) == 0 {
		return mo.None[[]mangadex.Tag]()
	}
	return mo.Some(tags)
}

// SetTags replaces the cached tag list.
func SetTags(tags []mangadex.Tag) error {
	return tagCache().Set(tags)
}
