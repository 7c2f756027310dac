package publisher

// Publisher represents a service for publishing snapshot messages
type Publisher interface {
	// Publish publishes a snapshot of the given kind to a stream
	Publish(kind string, payload []byte) error

	// TrimStreams trims all streams to the configured maximum length
	TrimStreams() error

	// Close closes the publisher connection
	Close() error
}
