package dialogue

import (
	"context"
	"time"

	"talentbridge-ai/internal/pkg/logger"
	"talentbridge-ai/pkg/store"
	"talentbridge-ai/pkg/syncutil"
)

const slotKeyPrefix = "assistant:slots:"

// Tracker persists per-user slot state across turns. Redis is the
// primary tier with an in-process cache behind it; a missing or
// unreadable state simply starts fresh rather than failing the turn.
type Tracker struct {
	primary  store.KV
	fallback store.KV
	locks    *syncutil.KeyMutex
	ttl      time.Duration
	logger   logger.ILogger
}

func NewTracker(primary, fallback store.KV, ttl time.Duration, lg logger.ILogger) *Tracker {
	if lg == nil {
		lg = logger.NewNopLogger()
	}
	return &Tracker{
		primary:  primary,
		fallback: fallback,
		locks:    syncutil.NewKeyMutex(),
		ttl:      ttl,
		logger:   lg,
	}
}

func slotKey(userID string) string {
	return slotKeyPrefix + userID
}

func (t *Tracker) tier(ctx context.Context) store.KV {
	if t.primary.Available(ctx) {
		return t.primary
	}
	if t.fallback != nil {
		return t.fallback
	}
	return t.primary
}

// State returns the user's current slot state, or a fresh one.
func (t *Tracker) State(ctx context.Context, userID string) *State {
	t.locks.Lock(userID)
	defer t.locks.Unlock(userID)
	return t.load(ctx, userID)
}

// Observe folds a user message into the stored state and returns the
// updated snapshot. The read-modify-write runs under a per-user lock.
func (t *Tracker) Observe(ctx context.Context, userID, message string) *State {
	t.locks.Lock(userID)
	defer t.locks.Unlock(userID)

	state := t.load(ctx, userID)
	next := Extract(message, state)
	t.save(ctx, userID, next)
	return next
}

// Clear drops the user's slot state from both tiers.
func (t *Tracker) Clear(ctx context.Context, userID string) {
	t.locks.Lock(userID)
	defer t.locks.Unlock(userID)

	key := slotKey(userID)
	if err := t.primary.Delete(ctx, key); err != nil {
		t.logger.Warn("dialogue", "slot clear failed", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
	if t.fallback != nil {
		_ = t.fallback.Delete(ctx, key)
	}
}

func (t *Tracker) load(ctx context.Context, userID string) *State {
	var state State
	found, err := t.tier(ctx).GetJSON(ctx, slotKey(userID), &state)
	if err != nil {
		t.logger.Warn("dialogue", "slot load failed", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return NewState()
	}
	if !found {
		return NewState()
	}
	if state.Skills == nil {
		state.Skills = []string{}
	}
	if state.CollectedInfo == nil {
		state.CollectedInfo = []string{}
	}
	return &state
}

func (t *Tracker) save(ctx context.Context, userID string, state *State) {
	if err := t.tier(ctx).SetJSON(ctx, slotKey(userID), state, t.ttl); err != nil {
		t.logger.Warn("dialogue", "slot save failed", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
}
