package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"talentbridge-ai/internal/entity"
	"talentbridge-ai/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKV struct {
	mu         sync.Mutex
	data       map[string][]byte
	available  bool
	failWrites bool
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
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return errors.New("write refused")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
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

func (f *fakeKV) setAvailable(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.available = v
}

type fakeLog struct {
	mu      sync.Mutex
	records []*entity.MemoryMessage
}

func (f *fakeLog) Append(_ context.Context, msg *entity.MemoryMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, msg)
	return nil
}

func (f *fakeLog) Recent(_ context.Context, sessionKey string, limit int) ([]*entity.MemoryMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.MemoryMessage
	for _, r := range f.records {
		if r.SessionKey == sessionKey {
			out = append(out, r)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func TestWindowStore_TruncatesToNewest(t *testing.T) {
	primary := newFakeKV()
	s := NewWindowStore(primary, nil, &fakeLog{}, time.Hour, 20, nil)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		s.Append(ctx, "user-1", store.NewMessage(store.RoleUser, fmt.Sprintf("message %d", i)))
	}

	window := s.Window(ctx, "user-1")
	require.Len(t, window, 20)
	assert.Equal(t, "message 5", window[0].Content)
	assert.Equal(t, "message 24", window[19].Content)
}

func TestWindowStore_FallsBackWhenPrimaryDown(t *testing.T) {
	primary := newFakeKV()
	primary.setAvailable(false)
	fallback := newFakeKV()
	s := NewWindowStore(primary, fallback, &fakeLog{}, time.Hour, 20, nil)
	ctx := context.Background()

	s.Append(ctx, "user-2", store.NewMessage(store.RoleUser, "hello"))
	s.Append(ctx, "user-2", store.NewMessage(store.RoleAssistant, "hi there"))

	window := s.Window(ctx, "user-2")
	require.Len(t, window, 2)
	assert.Equal(t, store.RoleUser, window[0].Role)
	assert.Equal(t, "hi there", window[1].Content)

	primary.mu.Lock()
	assert.Empty(t, primary.data)
	primary.mu.Unlock()
}

func TestWindowStore_DurableLogAlwaysWritten(t *testing.T) {
	log := &fakeLog{}
	s := NewWindowStore(newFakeKV(), nil, log, time.Hour, 20, nil)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		s.Append(ctx, "user-3", store.NewMessage(store.RoleUser, fmt.Sprintf("message %d", i)))
	}

	// The window is bounded but the log keeps every message.
	log.mu.Lock()
	assert.Len(t, log.records, 25)
	log.mu.Unlock()
}

func TestWindowStore_RebuildsFromDurableLog(t *testing.T) {
	log := &fakeLog{}
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, log.Append(ctx, &entity.MemoryMessage{
			SessionKey: "user-4",
			Role:       store.RoleUser,
			Content:    fmt.Sprintf("logged %d", i),
			CreatedAt:  time.Now(),
		}))
	}

	s := NewWindowStore(newFakeKV(), nil, log, time.Hour, 20, nil)
	window := s.Window(ctx, "user-4")
	require.Len(t, window, 3)
	assert.Equal(t, "logged 0", window[0].Content)

	// Rebuilt window is repopulated into the cache tier.
	window = s.Window(ctx, "user-4")
	assert.Len(t, window, 3)
}

func TestWindowStore_ConcurrentAppendsStayBounded(t *testing.T) {
	s := NewWindowStore(newFakeKV(), nil, &fakeLog{}, time.Hour, 20, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				s.Append(ctx, "user-5", store.NewMessage(store.RoleUser, fmt.Sprintf("w%d-%d", n, j)))
			}
		}(i)
	}
	wg.Wait()

	window := s.Window(ctx, "user-5")
	assert.Len(t, window, 20)
}

func TestWindowStore_AppendReportsTierPersistence(t *testing.T) {
	ctx := context.Background()

	healthy := NewWindowStore(newFakeKV(), nil, &fakeLog{}, time.Hour, 20, nil)
	assert.True(t, healthy.Append(ctx, "s", store.NewMessage(store.RoleUser, "hi")))

	broken := newFakeKV()
	broken.failWrites = true

	durableOnly := NewWindowStore(broken, nil, &fakeLog{}, time.Hour, 20, nil)
	assert.True(t, durableOnly.Append(ctx, "s", store.NewMessage(store.RoleUser, "hi")))

	nothing := NewWindowStore(broken, nil, nil, time.Hour, 20, nil)
	assert.False(t, nothing.Append(ctx, "s", store.NewMessage(store.RoleUser, "hi")))
}

func TestWindowStore_SmallWindowKeepsArrivalOrder(t *testing.T) {
	s := NewWindowStore(newFakeKV(), nil, &fakeLog{}, time.Hour, 2, nil)
	ctx := context.Background()

	first := make(chan struct{})
	done := make(chan struct{})
	go func() {
		s.Append(ctx, "user-7", store.NewMessage(store.RoleUser, "A"))
		close(first)
	}()
	go func() {
		<-first
		s.Append(ctx, "user-7", store.NewMessage(store.RoleAssistant, "B"))
		close(done)
	}()
	<-done

	window := s.Window(ctx, "user-7")
	require.Len(t, window, 2)
	assert.Equal(t, "A", window[0].Content)
	assert.Equal(t, "B", window[1].Content)
}

func TestWindowStore_ClearDropsWindow(t *testing.T) {
	s := NewWindowStore(newFakeKV(), nil, nil, time.Hour, 20, nil)
	ctx := context.Background()

	s.Append(ctx, "user-6", store.NewMessage(store.RoleUser, "hello"))
	require.Len(t, s.Window(ctx, "user-6"), 1)

	s.Clear(ctx, "user-6")
	assert.Empty(t, s.Window(ctx, "user-6"))
}

func TestWindowStore_SessionsAreIsolated(t *testing.T) {
	s := NewWindowStore(newFakeKV(), nil, nil, time.Hour, 20, nil)
	ctx := context.Background()

	s.Append(ctx, "alice", store.NewMessage(store.RoleUser, "from alice"))
	s.Append(ctx, "bob", store.NewMessage(store.RoleUser, "from bob"))

	require.Len(t, s.Window(ctx, "alice"), 1)
	assert.Equal(t, "from alice", s.Window(ctx, "alice")[0].Content)
	require.Len(t, s.Window(ctx, "bob"), 1)
	assert.Equal(t, "from bob", s.Window(ctx, "bob")[0].Content)
}
