package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Publish announces an inserted notification to live feed subscribers.
func Publish(c context.Context, cache *redis.Client, notification Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed marshaling notification event with error=%w", err)
	}
	if err := cache.Publish(c, Channel, payload).Err(); err != nil {
		return fmt.Errorf("failed publishing notification event with error=%w", err)
	}
	return nil
}
