package notifier

import (
	"context"
	"encoding/json"
	"html"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// fakeTelegram serves one batch of updates, then empty polls.
type fakeTelegram struct {
	mu      sync.Mutex
	served  bool
	updates string
	sent    []sentMessage
	done    chan struct{}
	want    int
}

func (f *fakeTelegram) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case strings.HasSuffix(r.URL.Path, "/getUpdates"):
		if !f.served {
			f.served = true
			_, _ = w.Write([]byte(f.updates))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":[]}`))
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		var m sentMessage
		_ = json.NewDecoder(r.Body).Decode(&m)
		f.sent = append(f.sent, m)
		if len(f.sent) == f.want {
			close(f.done)
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestStartPolling_RepliesPerChat(t *testing.T) {
	fake := &fakeTelegram{
		updates: `{"ok":true,"result":[
			{"update_id":10,"message":{"text":"/start","chat":{"id":7}}},
			{"update_id":11,"message":{"text":" Price of <AAPL>? ","chat":{"id":7}}},
			{"update_id":12,"message":{"text":"hello","chat":{"id":8}}},
			{"update_id":13}
		]}`,
		done: make(chan struct{}),
		want: 3,
	}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "")
	tn.Client.SetBaseURL(srv.URL)
	var started []int64
	tn.OnStart = func(chatID int64) { started = append(started, chatID) }

	var received []string
	handler := func(_ context.Context, chatID int64, text string) string {
		received = append(received, text)
		if chatID == 7 {
			return "AAPL & friends"
		}
		return "hi"
	}

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		tn.StartPolling(ctx, handler)
		close(stopped)
	}()

	select {
	case <-fake.done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for replies")
	}
	cancel()
	<-stopped

	assert.Equal(t, []int64{7}, started)
	assert.Equal(t, []string{"Price of <AAPL>?", "hello"}, received)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Len(t, fake.sent, 3)
	assert.Contains(t, fake.sent[0].Text, "The Chatbot Can Answer Questions About:")
	assert.Equal(t, sentMessage{ChatID: 7, Text: "AAPL &amp; friends", ParseMode: "HTML"}, fake.sent[1])
	assert.Equal(t, int64(8), fake.sent[2].ChatID)
}

func TestFormatReply_Escapes(t *testing.T) {
	assert.Equal(t, []string{"RSI &lt; 30"}, FormatReply("RSI < 30"))
}

func TestFormatReply_SplitsLongReplies(t *testing.T) {
	reply := strings.Repeat("MACD <", 1000) + strings.Repeat("📈", 2100)

	parts := FormatReply(reply)
	require.Greater(t, len(parts), 1)

	var joined strings.Builder
	for _, p := range parts {
		assert.LessOrEqual(t, len(utf16.Encode([]rune(p))), MaxMessageLen)
		assert.False(t, strings.HasSuffix(p, "&") || strings.HasSuffix(p, "&lt"), "entity split across messages")
		joined.WriteString(p)
	}
	assert.Equal(t, html.EscapeString(reply), joined.String())
}
