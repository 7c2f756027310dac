package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents network-related errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeCache represents cache-related errors
	ErrorTypeCache ErrorType = "cache"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeValidation represents validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// ScrapeError represents a scraper-specific error
type ScrapeError struct {
	Type    ErrorType
	Page    string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Page, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Page, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is retryable
func (e *ScrapeError) IsRetryable() bool {
	return e.Type == ErrorTypeNetwork
}

// New creates a new ScrapeError
func New(errType ErrorType, page, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:    errType,
		Page:    page,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(page, message string, err error) *ScrapeError {
	return New(ErrorTypeNetwork, page, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(page, message string, err error) *ScrapeError {
	return New(ErrorTypeParsing, page, message, err)
}

// NewCache creates a new cache error
func NewCache(page, message string, err error) *ScrapeError {
	return New(ErrorTypeCache, page, message, err)
}

// NewPublisher creates a new publisher error
func NewPublisher(page, message string, err error) *ScrapeError {
	return New(ErrorTypePublisher, page, message, err)
}

// NewValidation creates a new validation error
func NewValidation(page, message string) *ScrapeError {
	return New(ErrorTypeValidation, page, message, nil)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *ScrapeError {
	return New(ErrorTypeConfiguration, "", message, err)
}
