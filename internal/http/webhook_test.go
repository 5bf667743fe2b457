package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWebhookRecordsAndReplies(t *testing.T) {
	app, _, sender := newTestApp(t)

	code, r := postMessage(t, app, "+2348011112222", "Sold 3 bin for 400 gbp")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if r.Command != "sale" || !strings.Contains(r.Reply, "3 x bin for £400.00") {
		t.Fatalf("unexpected reply: %+v", r)
	}
	if len(sender.sent) != 1 || sender.sent[0].to != "+2348011112222" || sender.sent[0].body != r.Reply {
		t.Fatalf("reply must also go to the sender: %+v", sender.sent)
	}

	_, r = postMessage(t, app, "+2348011112222", "summary")
	if !strings.Contains(r.Reply, "Ada Stores: summary (today)") || !strings.Contains(r.Reply, "£400.00 (3 sold)") {
		t.Fatalf("summary reply: %q", r.Reply)
	}
}

func TestWebhookAlwaysReplies(t *testing.T) {
	app, _, _ := newTestApp(t)
	for _, text := range []string{"", "what?", "sale rice", "expense fuel xyz", "stock rice -1"} {
		code, r := postMessage(t, app, "c-1", text)
		if code != http.StatusOK || r.Reply == "" {
			t.Fatalf("%q: want 200 with a reply, got %d %+v", text, code, r)
		}
	}
}

func TestWebhookRejectsBadRequests(t *testing.T) {
	app, _, _ := newTestApp(t)

	code, _ := postMessage(t, app, "", "help")
	if code != http.StatusBadRequest {
		t.Fatalf("missing sender: want 400, got %d", code)
	}

	req := httptest.NewRequest("POST", "/webhook", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad body: want 400, got %d", resp.StatusCode)
	}
}

func TestWebhookAuditLog(t *testing.T) {
	app, _, _ := newTestApp(t)
	entries := captureLogs(t, func() {
		postMessage(t, app, "c-log", "stock rice 20")
	})
	found := false
	for _, e := range entries {
		if e.Action == "message.handled" && e.Channel == "c-log" && e.Fields["command"] == "stock" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected message.handled audit entry, got %+v", entries)
	}
}

func TestWebhookStoreFailureIsLoggedNotLeaked(t *testing.T) {
	app, db, _ := newTestApp(t)
	postMessage(t, app, "c-1", "help")
	if _, err := db.Exec(`DROP TABLE sale_events`); err != nil {
		t.Fatal(err)
	}

	var r webhookResp
	var code int
	entries := captureLogs(t, func() {
		code, r = postMessage(t, app, "c-1", "sale rice 1 100")
	})
	if code != http.StatusOK || !strings.Contains(r.Reply, "Sorry") || strings.Contains(r.Reply, "sale_events") {
		t.Fatalf("want generic apology, got %d %q", code, r.Reply)
	}
	found := false
	for _, e := range entries {
		if e.Action == "message.store.fail" && e.Level == "error" && e.Err != "" {
			found = true
		}
	}
	if !found {
		t.Fatalf("store failure must be logged: %+v", entries)
	}
}

func TestWebhookRateLimit(t *testing.T) {
	app, _, _ := newTestApp(t)
	for i := 0; i < 31; i++ {
		code, _ := postMessage(t, app, "c-rate", "help")
		if i < 30 && code == http.StatusTooManyRequests {
			t.Fatalf("hit rate limit too early at %d", i)
		}
		if i == 30 && code != http.StatusTooManyRequests {
			t.Fatalf("expected 429 after limit, got %d", code)
		}
	}
}
