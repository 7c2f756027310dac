package publisher

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// This test requires a running Redis instance
// If Redis is not available, the test will be skipped
func TestRedisPublisher(t *testing.T) {
	ctx := context.Background()
	pub := NewRedisPublisher(ctx, "localhost:6379", 0, "test_snapshots", 1, 10)
	defer pub.Close()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   0,
	})
	defer client.Close()

	// Test if Redis is available
	if _, err := client.Ping(ctx).Result(); err != nil {
		t.Skip("Redis is not available, skipping test")
	}

	defer client.Del(ctx, "test_snapshots:0")

	err := pub.Publish("leaderboard_experience", []byte(`[{"rank":1}]`))
	assert.NoError(t, err)

	// With a single shard, the message lands on stream :0
	messages, err := client.XRange(ctx, "test_snapshots:0", "-", "+").Result()
	assert.NoError(t, err)
	if assert.Len(t, messages, 1) {
		assert.Equal(t, "leaderboard_experience", messages[0].Values["kind"])
		decoded, err := base64.StdEncoding.DecodeString(messages[0].Values["payload"].(string))
		assert.NoError(t, err)
		assert.Equal(t, `[{"rank":1}]`, string(decoded))
	}

	// Trimming keeps the stream within the configured length
	for i := 0; i < 20; i++ {
		assert.NoError(t, pub.Publish("leaderboard_experience", []byte("x")))
	}
	assert.NoError(t, pub.TrimStreams())

	time.Sleep(50 * time.Millisecond)
	length, err := client.XLen(ctx, "test_snapshots:0").Result()
	assert.NoError(t, err)
	assert.LessOrEqual(t, length, int64(10))
}
