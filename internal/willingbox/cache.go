package willingbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	activeBoxKeyPrefix = "willingbox:active:"
	activeBoxTTL       = 5 * time.Minute
)

// Cache keeps the active box per pairing in Redis so the read path the
// UI polls does not hit Postgres every time. A nil Cache (Redis not
// configured) is a no-op on every method.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client}
}

// GetActiveBox returns the cached active box, or false on any miss or
// decode problem. A stale cache entry is harmless: phase is derived on
// read and every write invalidates.
func (c *Cache) GetActiveBox(ctx context.Context, pairingID string) (*WillingBox, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, activeBoxKeyPrefix+pairingID).Bytes()
	if err != nil {
		return nil, false
	}
	var box WillingBox
	if err := json.Unmarshal(raw, &box); err != nil {
		return nil, false
	}
	return &box, true
}

func (c *Cache) SetActiveBox(ctx context.Context, box *WillingBox) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(box)
	if err != nil {
		return
	}
	c.client.Set(ctx, activeBoxKeyPrefix+box.PairingID, raw, activeBoxTTL)
}

func (c *Cache) InvalidateActiveBox(ctx context.Context, pairingID string) {
	if c == nil {
		return
	}
	c.client.Del(ctx, activeBoxKeyPrefix+pairingID)
}
