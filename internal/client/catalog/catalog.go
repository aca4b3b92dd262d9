// Package catalog keeps the component set synchronized with session
// validity: the full list is fetched whenever a credential is adopted,
// dropped whenever the credential is cleared, and always replaced wholesale,
// never patched.
package catalog

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/example/uikart/internal/client/api"
	"github.com/example/uikart/internal/client/models"
	"github.com/example/uikart/internal/client/session"
	"github.com/example/uikart/internal/logging"
)

type Catalog struct {
	api     api.Client
	session *session.Session
	log     logging.Logger

	mu    sync.RWMutex
	items []models.Component

	sf singleflight.Group
}

// New builds a Catalog subscribed to the session's transition triggers.
// Fetch failures never invalidate the session: the catalog simply keeps its
// last known value (or stays empty if it never fetched successfully).
func New(apiClient api.Client, sess *session.Session, log logging.Logger) *Catalog {
	c := &Catalog{api: apiClient, session: sess, log: log}

	sess.OnAdopted(func(token string) {
		_ = c.fetch(context.Background(), token)
	})
	sess.OnCleared(func() {
		// Never serve stale authorized data to an anonymous view.
		c.clear()
	})
	return c
}

// Components returns a copy of the cached component set.
func (c *Catalog) Components() []models.Component {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// Get looks up a cached component by id.
func (c *Catalog) Get(id string) (models.Component, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if item.ID == id {
			return item, true
		}
	}
	return models.Component{}, false
}

// Refresh refetches the full set under the current credential with
// replace-wholesale semantics. Anonymous sessions see an empty catalog and
// no round trip. Callers that mutate server-side state out of band (post-
// purchase, dev reseed) use this.
func (c *Catalog) Refresh(ctx context.Context) error {
	token := c.session.Token()
	if token == "" {
		c.clear()
		return nil
	}
	return c.fetch(ctx, token)
}

// fetch retrieves the list authorized by token. Concurrent fetches under the
// same credential share one round trip. A response that arrives after the
// session moved to a different credential is discarded, not applied.
func (c *Catalog) fetch(ctx context.Context, token string) error {
	_, err, _ := c.sf.Do(token, func() (any, error) {
		items, err := c.api.ListComponents(ctx, token)
		if err != nil {
			return nil, err
		}
		if c.session.Token() != token {
			c.log.Warn(ctx, "discarding catalog response fetched under a stale credential")
			return nil, nil
		}
		c.mu.Lock()
		c.items = items
		c.mu.Unlock()
		c.log.Debug(ctx, "catalog refreshed", "components", len(items))
		return nil, nil
	})
	if err != nil {
		c.log.Warn(ctx, "catalog fetch failed, keeping last known value", "error", err)
	}
	return err
}

func (c *Catalog) clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}
