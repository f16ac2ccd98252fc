package memory

import (
	"context"
	"fmt"
	"time"

	"talentbridge-ai/internal/entity"
	"talentbridge-ai/internal/pkg/logger"
	"talentbridge-ai/internal/repository/contract"
	"talentbridge-ai/pkg/store"
	"talentbridge-ai/pkg/syncutil"

	"github.com/google/uuid"
)

const keyPrefix = "assistant:context:"

// WindowStore keeps the bounded short-term conversation window for each
// session. Redis is the primary tier; an in-process cache takes over when
// redis is unreachable, and every message is additionally appended to the
// durable log regardless of which tier served the window. Storage failures
// never surface to the caller: a turn must not fail because memory is
// degraded.
type WindowStore struct {
	primary  store.KV
	fallback store.KV
	log      contract.MemoryLogRepository
	locks    *syncutil.KeyMutex
	ttl      time.Duration
	maxLen   int
	logger   logger.ILogger
}

func NewWindowStore(primary, fallback store.KV, log contract.MemoryLogRepository, ttl time.Duration, maxLen int, lg logger.ILogger) *WindowStore {
	if lg == nil {
		lg = logger.NewNopLogger()
	}
	if maxLen <= 0 {
		maxLen = 20
	}
	return &WindowStore{
		primary:  primary,
		fallback: fallback,
		log:      log,
		locks:    syncutil.NewKeyMutex(),
		ttl:      ttl,
		maxLen:   maxLen,
		logger:   lg,
	}
}

func windowKey(sessionKey string) string {
	return keyPrefix + sessionKey
}

// Append adds a message to the session window, truncating to the newest
// maxLen entries, and writes it through to the durable log. It reports
// whether at least one tier persisted the message; failures are logged,
// never returned as errors.
func (s *WindowStore) Append(ctx context.Context, sessionKey string, msg store.Message) bool {
	s.locks.Lock(sessionKey)
	defer s.locks.Unlock(sessionKey)

	window := s.loadWindow(ctx, sessionKey)
	window = append(window, msg)
	if len(window) > s.maxLen {
		window = window[len(window)-s.maxLen:]
	}
	cached := s.saveWindow(ctx, sessionKey, window) == nil

	durable := false
	if s.log != nil {
		err := s.log.Append(ctx, &entity.MemoryMessage{
			Id:         uuid.New(),
			SessionKey: sessionKey,
			Role:       msg.Role,
			Content:    msg.Content,
			CreatedAt:  msg.Timestamp,
		})
		if err != nil {
			s.logger.Warn("memory", "durable append failed", map[string]interface{}{
				"session_key": sessionKey,
				"error":       err.Error(),
			})
		} else {
			durable = true
		}
	}
	return cached || durable
}

// Window returns the current window, oldest first. A session with no
// cached window is rebuilt from the durable log when one exists.
func (s *WindowStore) Window(ctx context.Context, sessionKey string) []store.Message {
	s.locks.Lock(sessionKey)
	defer s.locks.Unlock(sessionKey)

	window := s.loadWindow(ctx, sessionKey)
	if len(window) > 0 {
		return window
	}
	return s.rebuildFromLog(ctx, sessionKey)
}

// Clear drops the session window from both tiers. The durable log is
// kept.
func (s *WindowStore) Clear(ctx context.Context, sessionKey string) {
	s.locks.Lock(sessionKey)
	defer s.locks.Unlock(sessionKey)

	key := windowKey(sessionKey)
	if err := s.primary.Delete(ctx, key); err != nil {
		s.logger.Warn("memory", "primary delete failed", map[string]interface{}{
			"session_key": sessionKey,
			"error":       err.Error(),
		})
	}
	if s.fallback != nil {
		_ = s.fallback.Delete(ctx, key)
	}
}

// RefreshTTL extends the window expiry after an active turn so a live
// conversation does not expire mid-dialogue.
func (s *WindowStore) RefreshTTL(ctx context.Context, sessionKey string) {
	if err := s.primary.Expire(ctx, windowKey(sessionKey), s.ttl); err != nil {
		s.logger.Debug("memory", "ttl refresh skipped", map[string]interface{}{
			"session_key": sessionKey,
			"error":       err.Error(),
		})
	}
}

func (s *WindowStore) tier(ctx context.Context) store.KV {
	if s.primary.Available(ctx) {
		return s.primary
	}
	if s.fallback != nil {
		return s.fallback
	}
	return s.primary
}

func (s *WindowStore) loadWindow(ctx context.Context, sessionKey string) []store.Message {
	var window []store.Message
	found, err := s.tier(ctx).GetJSON(ctx, windowKey(sessionKey), &window)
	if err != nil {
		s.logger.Warn("memory", "window load failed", map[string]interface{}{
			"session_key": sessionKey,
			"error":       err.Error(),
		})
		return nil
	}
	if !found {
		return nil
	}
	return window
}

func (s *WindowStore) saveWindow(ctx context.Context, sessionKey string, window []store.Message) error {
	if err := s.tier(ctx).SetJSON(ctx, windowKey(sessionKey), window, s.ttl); err != nil {
		s.logger.Warn("memory", "window save failed", map[string]interface{}{
			"session_key": sessionKey,
			"error":       err.Error(),
		})
		return err
	}
	return nil
}

func (s *WindowStore) rebuildFromLog(ctx context.Context, sessionKey string) []store.Message {
	if s.log == nil {
		return nil
	}
	records, err := s.log.Recent(ctx, sessionKey, s.maxLen)
	if err != nil || len(records) == 0 {
		return nil
	}
	window := make([]store.Message, 0, len(records))
	for _, r := range records {
		window = append(window, store.Message{
			Role:      r.Role,
			Content:   r.Content,
			Timestamp: r.CreatedAt,
		})
	}
	s.saveWindow(ctx, sessionKey, window)
	s.logger.Info("memory", "window rebuilt from durable log", map[string]interface{}{
		"session_key": sessionKey,
		"messages":    fmt.Sprintf("%d", len(window)),
	})
	return window
}
