package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/raditia/gerai/internal/log"
)

const cartKey = "cart:%s"

// RedisPersister keeps each session's lines as a JSON blob in redis. Keys
// carry no expiry; a saved cart lives until the session clears it.
type RedisPersister struct {
	cache *redis.Client
}

func NewRedisPersister(cache *redis.Client) RedisPersister {
	return RedisPersister{cache: cache}
}

func (p RedisPersister) Save(c context.Context, sessionId string, lines []Line) error {
	key := fmt.Sprintf(cartKey, sessionId)
	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed marshaling cart for sessionId=%s with error=%w", sessionId, err)
	}
	err = p.cache.Set(c, key, payload, 0).Err()
	if err != nil {
		return fmt.Errorf("failed saving cart to key=%s with error=%w", key, err)
	}
	return nil
}

// Load returns the saved lines. A missing key or a payload that no longer
// unmarshals both yield an empty cart so the session can keep going.
func (p RedisPersister) Load(c context.Context, sessionId string) ([]Line, error) {
	key := fmt.Sprintf(cartKey, sessionId)
	payload, err := p.cache.Get(c, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed loading cart from key=%s with error=%w", key, err)
	}
	lines := []Line{}
	if err := json.Unmarshal(payload, &lines); err != nil {
		zerolog.Ctx(c).
			Warn().
			Str(log.KeyCacheKey, key).
			Err(err).
			Msg("discarding cart payload that no longer unmarshals")
		return nil, nil
	}
	return lines, nil
}
