package services

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// guestCartTTL is a sliding window: every mutation renews it, so an abandoned
// guest cart eventually expires on its own.
const guestCartTTL = 30 * 24 * time.Hour

// GuestCartStore holds cart lines for anonymous sessions, keyed by an opaque
// session id. Quantities live outside the process so any instance can serve
// the session.
type GuestCartStore interface {
	Add(ctx context.Context, sessionID string, productID uint, qty int) error
	Set(ctx context.Context, sessionID string, productID uint, qty int) error
	Remove(ctx context.Context, sessionID string, productID uint) error
	Quantity(ctx context.Context, sessionID string, productID uint) (int, error)
	Lines(ctx context.Context, sessionID string) (map[uint]int, error)
	Clear(ctx context.Context, sessionID string) error
}

type redisGuestCartStore struct {
	client *redis.Client
}

func NewGuestCartStore(client *redis.Client) GuestCartStore {
	return &redisGuestCartStore{client: client}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

func field(productID uint) string {
	return strconv.FormatUint(uint64(productID), 10)
}

func (s *redisGuestCartStore) Add(ctx context.Context, sessionID string, productID uint, qty int) error {
	key := cartKey(sessionID)
	pipe := s.client.TxPipeline()
	pipe.HIncrBy(ctx, key, field(productID), int64(qty))
	pipe.Expire(ctx, key, guestCartTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *redisGuestCartStore) Set(ctx context.Context, sessionID string, productID uint, qty int) error {
	key := cartKey(sessionID)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, field(productID), qty)
	pipe.Expire(ctx, key, guestCartTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *redisGuestCartStore) Remove(ctx context.Context, sessionID string, productID uint) error {
	return s.client.HDel(ctx, cartKey(sessionID), field(productID)).Err()
}

func (s *redisGuestCartStore) Quantity(ctx context.Context, sessionID string, productID uint) (int, error) {
	qty, err := s.client.HGet(ctx, cartKey(sessionID), field(productID)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	return qty, err
}

func (s *redisGuestCartStore) Lines(ctx context.Context, sessionID string) (map[uint]int, error) {
	raw, err := s.client.HGetAll(ctx, cartKey(sessionID)).Result()
	if err != nil {
		return nil, err
	}
	lines := make(map[uint]int, len(raw))
	for f, v := range raw {
		id, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			continue
		}
		qty, err := strconv.Atoi(v)
		if err != nil || qty < 1 {
			continue
		}
		lines[uint(id)] = qty
	}
	return lines, nil
}

func (s *redisGuestCartStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, cartKey(sessionID)).Err()
}
