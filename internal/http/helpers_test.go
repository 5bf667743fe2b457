package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"bizledger/internal/config"
	"bizledger/internal/domain"
	"bizledger/internal/http/handlers"
	"bizledger/internal/repos"
)

type sentReply struct{ to, body string }

type recordingSender struct {
	mu   sync.Mutex
	sent []sentReply
}

func (s *recordingSender) SendText(_ context.Context, to, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentReply{to, body})
	return nil
}

func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB, *recordingSender) {
	t.Helper()
	cfg := config.Config{DBDSN: ":memory:", DefaultCurrency: domain.NGN}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	sender := &recordingSender{}
	deps := handlers.NewDeps(db, cfg, nil, sender)
	return handlers.NewApp(deps), db, sender
}

type webhookResp struct {
	To      string `json:"to"`
	Reply   string `json:"reply"`
	Command string `json:"command"`
	Error   string `json:"error"`
}

func postMessage(t *testing.T, app *fiber.App, from, text string) (int, webhookResp) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"from": from, "text": text, "name": "Ada Stores"})
	req := httptest.NewRequest("POST", "/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request failed: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	var out webhookResp
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("bad json %q: %v", raw, err)
	}
	return resp.StatusCode, out
}

type logEntry struct {
	Level   string         `json:"level"`
	Action  string         `json:"action"`
	Channel string         `json:"channel"`
	Err     string         `json:"err"`
	Fields  map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedBuf{b: &buf, mu: &mu})
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &e); err == nil && e.Action != "" {
			entries = append(entries, e)
		}
	}
	return entries
}
