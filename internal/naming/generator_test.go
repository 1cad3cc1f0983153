package naming

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	reply string
	err   error
	calls atomic.Int32
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls.Add(1)
	return s.reply, s.err
}

func first(int) int { return 0 }

func TestFallbackName(t *testing.T) {
	assert.Equal(t, "Mochi", FallbackName("fairy_cat", 1, first))
	assert.Equal(t, "Prismatica", FallbackName("mini_unicorn", 5, func(n int) int { return n - 1 }))
	assert.Equal(t, "Mystery Moon Moth Lv3", FallbackName("moon_moth", 3, first))
	assert.Equal(t, "Mystery Fairy Cat Lv9", FallbackName("fairy_cat", 9, first))
}

func TestFallbackTable_Complete(t *testing.T) {
	require.Len(t, fallbackNames, 5)
	for family, levels := range fallbackNames {
		for level := 1; level <= 5; level++ {
			assert.Len(t, levels[level], 5, "%s level %d", family, level)
		}
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{`  "Moonpetal Whisker"  `, "Moonpetal Whisker", true},
		{"'Лунный Кот'", "Лунный Кот", true},
		{"X", "X", false},
		{"", "", false},
		{"A name that is far too long to fit on a creature card", "A name that is far too long to fit on a creature card", false},
	}
	for _, tt := range tests {
		got, ok := CleanName(tt.raw)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.ok, ok, tt.raw)
	}
}

func TestPrompt(t *testing.T) {
	p := Prompt("baby_dragon", 3, "ru-RU")
	assert.Contains(t, p, "glowing level 3 baby dragon")
	assert.Contains(t, p, "Language: Russian")

	assert.Contains(t, Prompt("fairy_cat", 9, "en"), "divine level 9")
}

func TestGenerate(t *testing.T) {
	t.Run("uses the remote name", func(t *testing.T) {
		g := NewGenerator(&stubCompleter{reply: `"Starfluff"`}, WithPicker(first))
		assert.Equal(t, "Starfluff", g.Generate(context.Background(), "fairy_cat", 2, "en"))
	})

	t.Run("falls back on error", func(t *testing.T) {
		g := NewGenerator(&stubCompleter{err: errors.New("boom")}, WithPicker(first))
		assert.Equal(t, "Sparklepurr", g.Generate(context.Background(), "fairy_cat", 2, "en"))
	})

	t.Run("falls back on a rejected name", func(t *testing.T) {
		g := NewGenerator(&stubCompleter{reply: "?"}, WithPicker(first))
		assert.Equal(t, "Cuddleflame", g.Generate(context.Background(), "baby_dragon", 2, "en"))
	})

	t.Run("no completer", func(t *testing.T) {
		g := NewGenerator(nil, WithPicker(first))
		assert.Equal(t, "Puffcap", g.Generate(context.Background(), "mushroom_sprite", 1, "en"))
	})
}

func TestNameFor_Caches(t *testing.T) {
	stub := &stubCompleter{reply: "Glowbean"}
	g := NewGenerator(stub, WithCache(8, time.Minute))
	ctx := context.Background()

	assert.Equal(t, "Glowbean", g.NameFor(ctx, "c1", "fairy_cat", 2, "en"))
	stub.reply = "Other"
	assert.Equal(t, "Glowbean", g.NameFor(ctx, "c1", "fairy_cat", 2, "en"))
	assert.Equal(t, "Other", g.NameFor(ctx, "c2", "fairy_cat", 2, "en"))
	assert.Equal(t, int32(2), stub.calls.Load())
}

func TestChatClient(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Dewdrop Kit"}}]}`))
	}))
	defer srv.Close()

	c := NewChatClient(srv.URL, "key", "test-model", time.Second)
	out, err := c.Complete(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, "Dewdrop Kit", out)
	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "hello", got.Messages[0].Content)
}

func TestChatClient_Errors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := NewChatClient(srv.URL, "k", "m", time.Second).Complete(context.Background(), "p")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgUnexpectedStatus)
	})

	t.Run("no choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer srv.Close()

		_, err := NewChatClient(srv.URL, "k", "m", time.Second).Complete(context.Background(), "p")
		assert.EqualError(t, err, ErrMsgEmptyCompletion)
	})

	t.Run("timeout falls back", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		g := NewGenerator(NewChatClient(srv.URL, "k", "m", time.Minute), WithTimeout(50*time.Millisecond), WithPicker(first))
		start := time.Now()
		assert.Equal(t, "Mochi", g.Generate(context.Background(), "fairy_cat", 1, "en"))
		assert.Less(t, time.Since(start), 5*time.Second)
	})
}
