// Package enhancer talks to generative-model providers to rewrite generated
// ad copy, with caching, rate limiting and retries. Enhanced candidates are
// suggestions only; they re-enter the character validator before use.
package enhancer

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/time/rate"

	"github.com/adforge/adcopy/internal/models"
)

// Logger interface for service logging
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Common errors
var (
	ErrAPIRequestFailed  = errors.New("enhancement API request failed")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrInvalidProvider   = errors.New("invalid enhancement provider specified")
	ErrCacheMiss         = errors.New("cache miss")
)

// DefaultLogger provides a basic implementation of the Logger interface
type DefaultLogger struct{}

func (l *DefaultLogger) Debug(msg string, keysAndValues ...interface{}) {
	log.Printf("[DEBUG] %s %v", msg, keysAndValues)
}

func (l *DefaultLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Printf("[INFO] %s %v", msg, keysAndValues)
}

func (l *DefaultLogger) Error(msg string, keysAndValues ...interface{}) {
	log.Printf("[ERROR] %s %v", msg, keysAndValues)
}

// Request asks for rewritten variants of existing asset texts.
type Request struct {
	AssetType      models.AssetType `json:"asset_type"`
	Language       string           `json:"language"`
	ProductName    string           `json:"product_name"`
	Texts          []string         `json:"texts"`
	CharacterLimit int              `json:"character_limit"`
}

// Candidate is one rewritten asset with the provider's confidence score.
type Candidate struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Response carries the candidate rewrites plus call metadata.
type Response struct {
	Candidates     []Candidate   `json:"candidates"`
	ProviderUsed   string        `json:"provider_used,omitempty"`
	CachedResult   bool          `json:"cached_result"`
	ProcessingTime time.Duration `json:"processing_time,omitempty"`
}

// Provider interface for copy enhancement providers
type Provider interface {
	// EnhanceCopy generates rewritten candidates for the request
	EnhanceCopy(ctx context.Context, request *Request) (*Response, error)

	// GetName returns the name of the provider
	GetName() string

	// Close performs any necessary cleanup
	Close() error
}

// Service handles enhancement API interactions with caching and rate limiting
type Service struct {
	providers       map[string]Provider
	defaultProvider string
	redisClient     *redis.Client
	limiter         *rate.Limiter
	cacheTTL        time.Duration
	maxRetries      int
	retryDelay      time.Duration
	mutex           sync.RWMutex
	logger          Logger
}

// ServiceOptions contains configuration for the enhancement service
type ServiceOptions struct {
	DefaultProvider string
	RedisClient     *redis.Client
	RateLimit       rate.Limit
	RateBurst       int
	CacheTTL        time.Duration
	MaxRetries      int
	RetryDelay      time.Duration
	Logger          Logger
}

// NewService creates a new enhancement service with the specified options
func NewService(opts ServiceOptions) *Service {
	if opts.CacheTTL == 0 {
		opts.CacheTTL = 24 * time.Hour
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = rate.Limit(10)
	}
	if opts.RateBurst == 0 {
		opts.RateBurst = 1
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.RetryDelay == 0 {
		opts.RetryDelay = 1 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = &DefaultLogger{}
	}

	return &Service{
		providers:       make(map[string]Provider),
		defaultProvider: opts.DefaultProvider,
		redisClient:     opts.RedisClient,
		limiter:         rate.NewLimiter(opts.RateLimit, opts.RateBurst),
		cacheTTL:        opts.CacheTTL,
		maxRetries:      opts.MaxRetries,
		retryDelay:      opts.RetryDelay,
		logger:          opts.Logger,
	}
}

// RegisterProvider registers an enhancement provider with the service
func (s *Service) RegisterProvider(provider Provider) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	providerName := provider.GetName()
	s.providers[providerName] = provider

	if s.defaultProvider == "" {
		s.defaultProvider = providerName
	}

	s.logger.Info("Registered enhancement provider", "provider", providerName)
}

// HasProviders reports whether any provider is registered.
func (s *Service) HasProviders() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.providers) > 0
}

// GetProvider returns a provider by name, using the default if name is empty
func (s *Service) GetProvider(name string) (Provider, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if name == "" {
		name = s.defaultProvider
	}

	provider, exists := s.providers[name]
	if !exists {
		return nil, ErrInvalidProvider
	}

	return provider, nil
}

// generateCacheKey creates a cache key from the request content
func (s *Service) generateCacheKey(request *Request) string {
	sum := sha256.Sum256([]byte(strings.Join(request.Texts, "\n")))
	return fmt.Sprintf("enhance:%s:%s:%x", request.AssetType, request.Language, sum[:8])
}

// getFromCache retrieves a response from Redis cache
func (s *Service) getFromCache(ctx context.Context, key string) (*Response, error) {
	if s.redisClient == nil {
		return nil, ErrCacheMiss
	}

	data, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		return nil, ErrCacheMiss
	}

	var response Response
	if err := json.Unmarshal([]byte(data), &response); err != nil {
		s.logger.Error("Failed to unmarshal cached response", "error", err, "key", key)
		return nil, ErrCacheMiss
	}

	return &response, nil
}

// saveToCache saves a response to Redis cache
func (s *Service) saveToCache(ctx context.Context, key string, response *Response) error {
	if s.redisClient == nil {
		return nil
	}

	data, err := json.Marshal(response)
	if err != nil {
		return err
	}

	return s.redisClient.Set(ctx, key, data, s.cacheTTL).Err()
}

// EnhanceCopy generates rewritten candidates with caching, rate limiting and
// retries.
func (s *Service) EnhanceCopy(ctx context.Context, request *Request, providerName string) (*Response, error) {
	startTime := time.Now()

	cacheKey := s.generateCacheKey(request)
	if s.redisClient != nil {
		cachedResponse, err := s.getFromCache(ctx, cacheKey)
		if err == nil {
			cachedResponse.CachedResult = true
			cachedResponse.ProcessingTime = time.Since(startTime)

			s.logger.Debug("Cache hit for copy enhancement",
				"asset_type", request.AssetType,
				"provider", cachedResponse.ProviderUsed)

			return cachedResponse, nil
		}
	}

	if err := s.limiter.Wait(ctx); err != nil {
		s.logger.Error("Rate limit exceeded", "error", err)
		return nil, ErrRateLimitExceeded
	}

	provider, err := s.GetProvider(providerName)
	if err != nil {
		return nil, err
	}

	var response *Response
	var lastErr error

	for retry := 0; retry <= s.maxRetries; retry++ {
		if retry > 0 {
			s.logger.Info("Retrying enhancement API request",
				"attempt", retry,
				"provider", provider.GetName(),
				"asset_type", request.AssetType)

			// Exponential backoff between attempts.
			select {
			case <-time.After(s.retryDelay * time.Duration(1<<uint(retry-1))):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		response, lastErr = provider.EnhanceCopy(ctx, request)
		if lastErr == nil {
			break
		}

		s.logger.Error("Enhancement API request failed",
			"error", lastErr,
			"provider", provider.GetName(),
			"retry", retry)
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrAPIRequestFailed, lastErr)
	}

	response.ProviderUsed = provider.GetName()
	response.ProcessingTime = time.Since(startTime)
	response.CachedResult = false

	if s.redisClient != nil {
		if err := s.saveToCache(ctx, cacheKey, response); err != nil {
			s.logger.Error("Failed to cache enhancement response", "error", err)
		}
	}

	s.logger.Info("Enhanced copy successfully",
		"provider", provider.GetName(),
		"asset_type", request.AssetType,
		"candidates", len(response.Candidates),
		"time", response.ProcessingTime)

	return response, nil
}

// Close releases all registered providers.
func (s *Service) Close() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for name, p := range s.providers {
		if err := p.Close(); err != nil {
			s.logger.Error("Failed to close provider", "provider", name, "error", err)
		}
	}
}
