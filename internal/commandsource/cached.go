package commandsource

import (
	"context"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"pkt.systems/pslog"
	"pkt.systems/tabdeck/schema"
)

// DefaultCacheTTL bounds how long a custom-command listing is reused before
// the underlying source is consulted again.
const DefaultCacheTTL = 30 * time.Second

// Lister is the upstream a Cached source delegates to.
type Lister interface {
	List(ctx context.Context, engine schema.EngineID, projectPath string) ([]schema.SlashCommand, error)
}

// Cached memoizes listings per engine and normalized project path so
// keystroke-driven autocomplete does not hammer the backend.
type Cached struct {
	upstream Lister
	cache    *gocache.Cache
	log      pslog.Logger
}

// NewCached wraps the upstream source with a TTL cache.
func NewCached(upstream Lister, ttl time.Duration, logger pslog.Logger) *Cached {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Cached{
		upstream: upstream,
		cache:    gocache.New(ttl, 2*ttl),
		log:      logger,
	}
}

// List implements core.CommandSource. Unsupported-engine outcomes are cached
// too: they are just as stable as successful listings.
func (c *Cached) List(ctx context.Context, engine schema.EngineID, projectPath string) ([]schema.SlashCommand, error) {
	key := cacheKey(engine, projectPath)
	if cached, ok := c.cache.Get(key); ok {
		entry := cached.(cacheEntry)
		return entry.commands, entry.err
	}
	commands, err := c.upstream.List(ctx, engine, projectPath)
	if err != nil && !errors.Is(err, schema.ErrEngineUnsupported) {
		// Transient failures are not cached; the next lookup retries.
		c.log.Warn("commandsource list failed", "engine", engine, "err", err)
		return nil, err
	}
	c.cache.Set(key, cacheEntry{commands: commands, err: err}, gocache.DefaultExpiration)
	c.log.Debug("commandsource cached", "engine", engine, "count", len(commands))
	return commands, err
}

// Reload implements core.CommandReloader by dropping the cached listing.
func (c *Cached) Reload(engine schema.EngineID, projectPath string) {
	c.cache.Delete(cacheKey(engine, projectPath))
}

type cacheEntry struct {
	commands []schema.SlashCommand
	err      error
}

func cacheKey(engine schema.EngineID, projectPath string) string {
	return fmt.Sprintf("%s|%s", engine, schema.NormalizeProjectPath(projectPath))
}
