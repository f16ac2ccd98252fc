package dialogue

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKV struct {
	mu        sync.Mutex
	data      map[string][]byte
	available bool
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string][]byte{}, available: true}
}

func (f *fakeKV) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeKV) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = raw
	return nil
}

func (f *fakeKV) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeKV) Expire(_ context.Context, _ string, _ time.Duration) error { return nil }

func (f *fakeKV) Available(_ context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.available
}

func TestTracker_StatePersistsAcrossTurns(t *testing.T) {
	tracker := NewTracker(newFakeKV(), nil, time.Hour, nil)
	ctx := context.Background()

	state := tracker.Observe(ctx, "42", "looking for a backend role")
	require.Equal(t, "backend developer", state.JobType)

	state = tracker.Observe(ctx, "42", "I prefer Beijing")
	assert.Equal(t, "backend developer", state.JobType)
	assert.Equal(t, "beijing", state.Location)
	assert.Equal(t, 2, state.TurnCount)
}

func TestTracker_UnknownUserStartsFresh(t *testing.T) {
	tracker := NewTracker(newFakeKV(), nil, time.Hour, nil)
	state := tracker.State(context.Background(), "nobody")
	assert.Equal(t, 0, state.TurnCount)
	assert.Empty(t, state.Intent)
	assert.NotNil(t, state.Skills)
}

func TestTracker_FallsBackWhenPrimaryDown(t *testing.T) {
	primary := newFakeKV()
	primary.available = false
	fallback := newFakeKV()
	tracker := NewTracker(primary, fallback, time.Hour, nil)
	ctx := context.Background()

	tracker.Observe(ctx, "7", "looking for a job in Shanghai")
	state := tracker.State(ctx, "7")
	assert.Equal(t, "shanghai", state.Location)
	assert.Empty(t, primary.data)
}

func TestTracker_ClearResetsState(t *testing.T) {
	tracker := NewTracker(newFakeKV(), nil, time.Hour, nil)
	ctx := context.Background()

	tracker.Observe(ctx, "9", "looking for a backend role")
	tracker.Clear(ctx, "9")

	state := tracker.State(ctx, "9")
	assert.Equal(t, 0, state.TurnCount)
	assert.Empty(t, state.JobType)
}

func TestTracker_UsersAreIsolated(t *testing.T) {
	tracker := NewTracker(newFakeKV(), nil, time.Hour, nil)
	ctx := context.Background()

	tracker.Observe(ctx, "a", "looking for a frontend role")
	tracker.Observe(ctx, "b", "looking for a backend role")

	assert.Equal(t, "frontend developer", tracker.State(ctx, "a").JobType)
	assert.Equal(t, "backend developer", tracker.State(ctx, "b").JobType)
}
