package chat

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestTranscriptStore(t *testing.T) *TranscriptStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewTranscriptStore(client)
}

func TestTranscriptStoreAppendAndRecent(t *testing.T) {
	store := newTestTranscriptStore(t)
	ctx := context.Background()

	msgs := []*Message{
		{ID: "m1", SessionID: "s1", Message: "hi", Sender: SenderUser, Timestamp: time.Now().UTC()},
		{ID: "m2", SessionID: "s1", Message: "hello!", Sender: SenderBot, Timestamp: time.Now().UTC()},
		{ID: "m3", SessionID: "s1", Message: "how much is a move?", Sender: SenderUser, Timestamp: time.Now().UTC()},
	}
	for _, m := range msgs {
		if err := store.Append(ctx, "s1", m); err != nil {
			t.Fatalf("Append returned error: %v", err)
		}
	}

	got, err := store.Recent(ctx, "s1", 2)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	if got[0].ID != "m2" || got[1].ID != "m3" {
		t.Errorf("expected newest two in order, got %s then %s", got[0].ID, got[1].ID)
	}
}

func TestTranscriptStoreRecentEmptySession(t *testing.T) {
	store := newTestTranscriptStore(t)
	got, err := store.Recent(context.Background(), "unknown", 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no messages, got %d", len(got))
	}
}

func TestTranscriptStoreClear(t *testing.T) {
	store := newTestTranscriptStore(t)
	ctx := context.Background()

	if err := store.Append(ctx, "s1", &Message{ID: "m1", SessionID: "s1", Message: "hi", Sender: SenderUser}); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
	if err := store.Clear(ctx, "s1"); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	got, err := store.Recent(ctx, "s1", 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty transcript after clear, got %d", len(got))
	}
}

func TestTranscriptStoreNilSafe(t *testing.T) {
	var store *TranscriptStore
	ctx := context.Background()

	if err := store.Append(ctx, "s1", &Message{ID: "m1"}); err != nil {
		t.Errorf("nil store Append should be a no-op, got %v", err)
	}
	if msgs, err := store.Recent(ctx, "s1", 10); err != nil || msgs != nil {
		t.Errorf("nil store Recent should return nothing, got %v, %v", msgs, err)
	}
	if err := store.Clear(ctx, "s1"); err != nil {
		t.Errorf("nil store Clear should be a no-op, got %v", err)
	}
}
