// Package oddsfeed provides bookmaker odds ingestion over a streaming
// websocket connection and a polling REST fallback.
package oddsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/yourusername/octagon-edge/internal/metrics"
	"github.com/yourusername/octagon-edge/internal/models"
)

// QuoteHandler is called for every odds quote received from the stream
type QuoteHandler func(quote *models.FightOddsQuote) error

// ReconnectConfig controls reconnection behavior
type ReconnectConfig struct {
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
}

// DefaultReconnectConfig returns default reconnection configuration
func DefaultReconnectConfig() ReconnectConfig {
	return ReconnectConfig{
		MaxRetries:        10,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 1.5,
	}
}

// streamMessage represents a message from the odds feed stream
type streamMessage struct {
	Op           string   `json:"op"`
	Bookmaker    string   `json:"bookmaker,omitempty"`
	Fighter1     string   `json:"fighter1,omitempty"`
	Fighter2     string   `json:"fighter2,omitempty"`
	Fighter1Odds *float64 `json:"fighter1Odds,omitempty"`
	Fighter2Odds *float64 `json:"fighter2Odds,omitempty"`
	Timestamp    int64    `json:"ts,omitempty"`
}

// StreamClient handles the WebSocket connection to the odds feed
type StreamClient struct {
	conn            *websocket.Conn
	apiKey          string
	streamURL       string
	bookmaker       string
	mu              sync.RWMutex
	isConnected     bool
	handlers        []QuoteHandler
	reconnectConfig ReconnectConfig
	lastMessageTime time.Time
	logger          *log.Logger
}

// NewStreamClient creates a new odds stream client
func NewStreamClient(streamURL, apiKey, bookmaker string, logger *log.Logger) *StreamClient {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &StreamClient{
		apiKey:          apiKey,
		streamURL:       streamURL,
		bookmaker:       bookmaker,
		handlers:        make([]QuoteHandler, 0),
		reconnectConfig: DefaultReconnectConfig(),
		logger:          logger,
	}
}

// Connect establishes the websocket connection and starts the read loop
func (s *StreamClient) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isConnected {
		return fmt.Errorf("already connected")
	}

	s.logger.Printf("Connecting to odds stream: %s", s.streamURL)

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, s.streamURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to odds stream: %w", err)
	}

	s.conn = conn
	s.isConnected = true
	s.lastMessageTime = time.Now()

	go s.readMessages()

	return nil
}

// ConnectWithRetry connects with exponential backoff until MaxRetries is
// exhausted or the context is cancelled
func (s *StreamClient) ConnectWithRetry(ctx context.Context) error {
	backoff := s.reconnectConfig.InitialBackoff

	var lastErr error
	for attempt := 0; attempt <= s.reconnectConfig.MaxRetries; attempt++ {
		if attempt > 0 {
			metrics.RecordStreamReconnect()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff = time.Duration(float64(backoff) * s.reconnectConfig.BackoffMultiplier)
			if backoff > s.reconnectConfig.MaxBackoff {
				backoff = s.reconnectConfig.MaxBackoff
			}
		}

		if err := s.Connect(ctx); err != nil {
			lastErr = err
			s.logger.Printf("Stream connect attempt %d failed: %v", attempt+1, err)
			continue
		}
		return nil
	}

	return fmt.Errorf("odds stream connection failed after %d attempts: %w", s.reconnectConfig.MaxRetries+1, lastErr)
}

// Authenticate sends the authentication message
func (s *StreamClient) Authenticate(ctx context.Context) error {
	return s.sendMessage(map[string]interface{}{
		"op":     "auth",
		"apiKey": s.apiKey,
	})
}

// Subscribe requests quote updates for the configured bookmaker
func (s *StreamClient) Subscribe(ctx context.Context) error {
	s.logger.Printf("Subscribing to odds for bookmaker %s", s.bookmaker)
	return s.sendMessage(map[string]interface{}{
		"op":        "subscribe",
		"bookmaker": s.bookmaker,
		"heartbeat": true,
	})
}

// AddHandler registers a quote handler
func (s *StreamClient) AddHandler(handler QuoteHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, handler)
}

// readMessages reads messages from the websocket connection
func (s *StreamClient) readMessages() {
	defer s.Close()

	for {
		var raw json.RawMessage
		err := s.conn.ReadJSON(&raw)
		if err != nil {
			s.logger.Printf("Error reading stream message: %v", err)
			s.mu.Lock()
			s.isConnected = false
			s.mu.Unlock()
			return
		}

		s.mu.Lock()
		s.lastMessageTime = time.Now()
		s.mu.Unlock()

		var msg streamMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.logger.Printf("Skipping malformed stream message: %v", err)
			continue
		}

		if msg.Op != "odds" {
			continue
		}

		quote := quoteFromMessage(&msg)
		metrics.RecordOddsQuote(quote.Bookmaker, "stream")

		s.mu.RLock()
		handlers := s.handlers
		s.mu.RUnlock()

		for _, handler := range handlers {
			if err := handler(quote); err != nil {
				s.logger.Printf("Quote handler error: %v", err)
			}
		}
	}
}

func quoteFromMessage(msg *streamMessage) *models.FightOddsQuote {
	lastUpdate := time.Now().UTC()
	if msg.Timestamp > 0 {
		lastUpdate = time.Unix(msg.Timestamp, 0).UTC()
	}

	return &models.FightOddsQuote{
		ID:           uuid.New(),
		Bookmaker:    msg.Bookmaker,
		Fighter1:     msg.Fighter1,
		Fighter2:     msg.Fighter2,
		Fighter1Odds: msg.Fighter1Odds,
		Fighter2Odds: msg.Fighter2Odds,
		LastUpdate:   lastUpdate,
	}
}

// sendMessage sends a JSON message to the stream
func (s *StreamClient) sendMessage(msg interface{}) error {
	s.mu.RLock()
	if !s.isConnected || s.conn == nil {
		s.mu.RUnlock()
		return fmt.Errorf("not connected")
	}
	conn := s.conn
	s.mu.RUnlock()

	return conn.WriteJSON(msg)
}

// IsConnected returns whether the stream is connected
func (s *StreamClient) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isConnected
}

// LastMessageTime returns the time of the last received message
func (s *StreamClient) LastMessageTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastMessageTime
}

// Close closes the stream connection
func (s *StreamClient) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}

	s.isConnected = false
	return s.conn.Close()
}

// Ping sends a ping message to keep the connection alive
func (s *StreamClient) Ping() error {
	return s.sendMessage(map[string]interface{}{
		"op": "ping",
	})
}
