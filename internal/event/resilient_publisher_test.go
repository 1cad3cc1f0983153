package event

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FairyGrove_Go/internal/testing/leaktest"
)

// mockBus fails while shouldFail returns true for the 1-based call number
type mockBus struct {
	mu         sync.Mutex
	calls      []Event
	shouldFail func(call int) bool
}

func (m *mockBus) Publish(ctx context.Context, event Event) error {
	m.mu.Lock()
	m.calls = append(m.calls, event)
	n := len(m.calls)
	m.mu.Unlock()

	if m.shouldFail != nil && m.shouldFail(n) {
		return errors.New("mock publish error")
	}
	return nil
}

func (m *mockBus) Subscribe(eventType Type, handler Handler) {}

func (m *mockBus) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func readDeadLetters(t *testing.T, path string) []DeadLetterEntry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []DeadLetterEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e DeadLetterEntry
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		entries = append(entries, e)
	}
	return entries
}

func TestResilientPublisher_SuccessfulPublish(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	bus := &mockBus{}

	rp, err := NewResilientPublisher(bus, 3, time.Millisecond, path)
	require.NoError(t, err)

	require.NoError(t, rp.Publish(context.Background(), Event{Type: MergeCompleted}))
	require.NoError(t, rp.Shutdown(context.Background()))

	assert.Equal(t, 1, bus.CallCount())
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_RetrySucceeds(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	bus := &mockBus{shouldFail: func(call int) bool { return call < 3 }}

	rp, err := NewResilientPublisher(bus, 5, time.Millisecond, path)
	require.NoError(t, err)

	require.NoError(t, rp.Publish(context.Background(), Event{Type: QuestClaimed}))

	assert.Eventually(t, func() bool { return bus.CallCount() == 3 }, time.Second, 5*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_ExhaustedGoesToDeadLetter(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	bus := &mockBus{shouldFail: func(int) bool { return true }}

	rp, err := NewResilientPublisher(bus, 2, time.Millisecond, path)
	require.NoError(t, err)

	require.NoError(t, rp.Publish(context.Background(), Event{Type: ShopPurchased, PlayerID: "7"}))

	// first attempt plus two retries
	assert.Eventually(t, func() bool { return bus.CallCount() == 3 }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return len(readDeadLetters(t, path)) == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))

	entries := readDeadLetters(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, ShopPurchased, entries[0].Event.Type)
	assert.Equal(t, "7", entries[0].Event.PlayerID)
	assert.Equal(t, 3, entries[0].Attempts)
	assert.Equal(t, "mock publish error", entries[0].LastError)
}

func TestResilientPublisher_ShutdownDeadLettersPending(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	bus := &mockBus{shouldFail: func(int) bool { return true }}

	rp, err := NewResilientPublisher(bus, 3, time.Hour, path)
	require.NoError(t, err)

	require.NoError(t, rp.Publish(context.Background(), Event{Type: ReferralApplied}))
	require.NoError(t, rp.Shutdown(context.Background()))

	entries := readDeadLetters(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, ReferralApplied, entries[0].Event.Type)
}

func TestResilientPublisher_ShutdownStopsWorker(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		rp, err := NewResilientPublisher(&mockBus{}, 3, time.Millisecond, t.TempDir()+"/deadletter.jsonl")
		require.NoError(t, err)
		require.NoError(t, rp.Publish(context.Background(), Event{Type: MergeCompleted}))
		require.NoError(t, rp.Shutdown(context.Background()))
	})
}
