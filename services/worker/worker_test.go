package worker

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"rtanks/ratingsworker/internal/scraper"
	"rtanks/ratingsworker/services/publisher"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockProvider implements StatsProvider for testing
type MockProvider struct {
	entries map[string][]scraper.LeaderboardEntry
}

var _ StatsProvider = (*MockProvider)(nil)

func (m *MockProvider) GetLeaderboard(category string) []scraper.LeaderboardEntry {
	return m.entries[category]
}

// MockPublisher implements the publisher.Publisher interface for testing
type MockPublisher struct {
	mu       sync.Mutex
	messages map[string][][]byte
	trims    int
}

var _ publisher.Publisher = (*MockPublisher)(nil)

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		messages: make(map[string][][]byte),
	}
}

func (m *MockPublisher) Publish(kind string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	payloadCopy := make([]byte, len(payload))
	copy(payloadCopy, payload)
	m.messages[kind] = append(m.messages[kind], payloadCopy)
	return nil
}

func (m *MockPublisher) TrimStreams() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trims++
	return nil
}

func (m *MockPublisher) Close() error {
	return nil
}

func TestWorkerRefreshPublishesSnapshots(t *testing.T) {
	provider := &MockProvider{
		entries: map[string][]scraper.LeaderboardEntry{
			"experience": {
				{Rank: 1, Name: "Alice", Value: 1000, FormattedValue: "1 000"},
			},
		},
	}
	pub := NewMockPublisher()

	w := NewWorker(context.Background(), provider, pub, []string{"experience", "kills"}, time.Minute)
	w.refresh()

	// The category with data was published; the empty one was skipped
	require.Len(t, pub.messages["leaderboard_experience"], 1)
	assert.Empty(t, pub.messages["leaderboard_kills"])
	assert.Equal(t, 1, pub.trims)

	var entries []scraper.LeaderboardEntry
	require.NoError(t, json.Unmarshal(pub.messages["leaderboard_experience"][0], &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Alice", entries[0].Name)
}

func TestWorkerStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	provider := &MockProvider{entries: map[string][]scraper.LeaderboardEntry{}}
	pub := NewMockPublisher()

	w := NewWorker(ctx, provider, pub, []string{"experience"}, 10*time.Millisecond)

	done := make(chan error, 1)
	go func() {
		done <- w.Start()
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.Equal(t, context.Canceled, err)
	case <-time.After(time.Second):
		t.Error("Worker did not stop after context cancellation")
	}
}
