package repositories

import (
	"context"
	"encoding/json"
	"time"

	"purse/internal/models"

	"github.com/redis/go-redis/v9"
)

const walletCachePrefix = "wallet:"

// WalletCache is a Redis-backed read cache for wallet rows. Every balance
// mutation invalidates the entry, so a hit can be at most one mutation old.
type WalletCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewWalletCache(client *redis.Client, ttl time.Duration) *WalletCache {
	return &WalletCache{client: client, ttl: ttl}
}

func walletCacheKey(walletID string) string {
	return walletCachePrefix + walletID
}

// Get retrieves a cached wallet. A cache miss is returned as an error.
func (c *WalletCache) Get(ctx context.Context, walletID string) (*models.Wallet, error) {
	data, err := c.client.Get(ctx, walletCacheKey(walletID)).Bytes()
	if err != nil {
		return nil, err
	}

	var wallet models.Wallet
	if err := json.Unmarshal(data, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Set stores a wallet with the cache TTL.
func (c *WalletCache) Set(ctx context.Context, wallet *models.Wallet) error {
	data, err := json.Marshal(wallet)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, walletCacheKey(wallet.ID), data, c.ttl).Err()
}

// Invalidate drops the cached entry for a wallet.
func (c *WalletCache) Invalidate(ctx context.Context, walletID string) error {
	return c.client.Del(ctx, walletCacheKey(walletID)).Err()
}
