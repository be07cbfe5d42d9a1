package store

import (
	"context"
	"os"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisClient "github.com/go-redis/redis/v8"

	"github.com/mgpai22/lyrico/internal/lyric"
)

func testDoc() *lyric.Document {
	return &lyric.Document{
		Metadata: []lyric.MetadataEntry{{Key: "ti", Value: "Song"}},
		Lines: []lyric.Line{{
			ID:          "l1",
			Role:        lyric.RoleBackground,
			Duet:        true,
			Translation: "Hola",
			Words: []lyric.Word{
				{ID: "w1", Text: "Hi ", StartTime: 0, EndTime: 250 * time.Millisecond},
				{ID: "w2", Text: "there", StartTime: 250 * time.Millisecond, EndTime: time.Second},
			},
		}},
	}
}

// exercise runs the same contract checks against every backend.
func exercise(t *testing.T, s Backend) {
	t.Helper()
	ctx := context.Background()

	doc, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("Get on a fresh store failed: %v", err)
	}
	if !doc.IsEmpty() {
		t.Errorf("expected an empty document, got %+v", doc)
	}
	name, err := s.SaveName(ctx)
	if err != nil || name != "" {
		t.Errorf("expected empty save name, got %q, %v", name, err)
	}

	want := testDoc()
	if err := s.Set(ctx, want); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("document changed in the store:\nwant %+v\ngot  %+v", want, got)
	}

	// last writer wins
	second := &lyric.Document{Lines: []lyric.Line{{ID: "x", Words: []lyric.Word{{ID: "y", Text: "new"}}}}}
	if err := s.Set(ctx, second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, _ = s.Get(ctx)
	if len(got.Lines) != 1 || got.Lines[0].Text() != "new" {
		t.Errorf("expected the second document, got %+v", got)
	}

	if err := s.SetSaveName(ctx, "song.lrc"); err != nil {
		t.Fatalf("SetSaveName failed: %v", err)
	}
	if name, _ := s.SaveName(ctx); name != "song.lrc" {
		t.Errorf("expected save name song.lrc, got %q", name)
	}

	if err := s.Set(ctx, nil); err != nil {
		t.Fatalf("Set(nil) failed: %v", err)
	}
	got, _ = s.Get(ctx)
	if !got.IsEmpty() {
		t.Errorf("expected nil to clear the document, got %+v", got)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore("")
	exercise(t, s)
	if err := s.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestMemoryStoreConcurrentSets(t *testing.T) {
	s := NewMemoryStore("")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Set(ctx, testDoc())
			_, _ = s.Get(ctx)
		}()
	}
	wg.Wait()

	got, _ := s.Get(ctx)
	if len(got.Lines) != 1 {
		t.Errorf("expected one of the written documents, got %+v", got)
	}
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := NewRedisStore(context.Background(), "redis://"+mr.Addr(), "test")
	if err != nil {
		t.Fatalf("NewRedisStore failed: %v", err)
	}
	defer s.Close()

	exercise(t, s)

	if !mr.Exists("test:document") || !mr.Exists("test:save_name") {
		t.Errorf("expected prefixed keys, got %v", mr.Keys())
	}
}

func TestRedisStoreCorruptDocument(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redisClient.NewClient(&redisClient.Options{Addr: mr.Addr()})
	s := NewRedisStoreWithClient(client, "")
	defer s.Close()

	if err := mr.Set(DefaultRedisKey+":document", "{not json"); err != nil {
		t.Fatalf("failed to seed redis: %v", err)
	}
	if _, err := s.Get(context.Background()); err == nil {
		t.Error("expected a decode error")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, KindMemory, "", "")
	if err != nil {
		t.Fatalf("Open memory failed: %v", err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("expected MemoryStore, got %T", s)
	}

	if _, err := Open(ctx, KindRedis, "", ""); err == nil {
		t.Error("expected redis without url to fail")
	}
	if _, err := Open(ctx, KindRedis, "://bad", ""); err == nil {
		t.Error("expected invalid url to fail")
	}
	if _, err := Open(ctx, "sqlite", "", ""); err == nil {
		t.Error("expected unknown store to fail")
	}

	mr := miniredis.RunT(t)
	s, err = Open(ctx, KindRedis, "redis://"+mr.Addr(), "")
	if err != nil {
		t.Fatalf("Open redis failed: %v", err)
	}
	defer s.Close()
	if _, ok := s.(*RedisStore); !ok {
		t.Errorf("expected RedisStore, got %T", s)
	}
}

func TestRedisStoreIntegration(t *testing.T) {
	url := os.Getenv("LYRICO_TEST_REDIS_URL")
	if url == "" {
		t.Skip("LYRICO_TEST_REDIS_URL not set, skipping integration test")
	}

	key := "lyrico-test-" + time.Now().Format("150405.000")
	s, err := NewRedisStore(context.Background(), url, key)
	if err != nil {
		t.Fatalf("NewRedisStore failed: %v", err)
	}
	defer func() {
		s.client.Del(context.Background(), s.documentKey(), s.saveNameKey())
		s.Close()
	}()

	exercise(t, s)
}
