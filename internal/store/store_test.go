package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCardRoundTrip(t *testing.T) {
	s := openTestStore(t)

	card := CachedCard{
		ModelID:   "org/model-a",
		Revision:  "main",
		Path:      "README.md",
		Content:   "---\nlicense: mit\n---\n# Model\n",
		FetchedAt: time.Now(),
	}
	if err := s.SaveCard(card); err != nil {
		t.Fatalf("SaveCard() error: %v", err)
	}

	got, err := s.GetCard("org/model-a", "main", "README.md", time.Hour)
	if err != nil {
		t.Fatalf("GetCard() error: %v", err)
	}
	if got.Content != card.Content {
		t.Errorf("content = %q", got.Content)
	}
}

func TestGetCardMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetCard("org/none", "main", "README.md", time.Hour)
	if !errors.Is(err, ErrCardNotCached) {
		t.Fatalf("GetCard() error = %v, want ErrCardNotCached", err)
	}
}

func TestGetCardExpired(t *testing.T) {
	s := openTestStore(t)
	card := CachedCard{
		ModelID:   "org/model-a",
		Revision:  "main",
		Path:      "README.md",
		Content:   "stale",
		FetchedAt: time.Now().Add(-2 * time.Hour),
	}
	if err := s.SaveCard(card); err != nil {
		t.Fatalf("SaveCard() error: %v", err)
	}

	if _, err := s.GetCard("org/model-a", "main", "README.md", time.Hour); !errors.Is(err, ErrCardNotCached) {
		t.Fatalf("GetCard() error = %v, want ErrCardNotCached for stale entry", err)
	}
	// maxAge <= 0 accepts stale copies.
	if _, err := s.GetCard("org/model-a", "main", "README.md", 0); err != nil {
		t.Fatalf("GetCard(maxAge=0) error: %v", err)
	}
}

func TestSaveCardReplaces(t *testing.T) {
	s := openTestStore(t)
	for _, content := range []string{"old", "new"} {
		if err := s.SaveCard(CachedCard{
			ModelID: "org/model-a", Revision: "main", Path: "README.md",
			Content: content, FetchedAt: time.Now(),
		}); err != nil {
			t.Fatalf("SaveCard() error: %v", err)
		}
	}
	got, err := s.GetCard("org/model-a", "main", "README.md", time.Hour)
	if err != nil {
		t.Fatalf("GetCard() error: %v", err)
	}
	if got.Content != "new" {
		t.Errorf("content = %q, want replacement", got.Content)
	}
}

func TestInvalidateCard(t *testing.T) {
	s := openTestStore(t)
	if err := s.SaveCard(CachedCard{
		ModelID: "org/model-a", Revision: "main", Path: "README.md",
		Content: "x", FetchedAt: time.Now(),
	}); err != nil {
		t.Fatalf("SaveCard() error: %v", err)
	}
	if err := s.InvalidateCard("org/model-a", "main", "README.md"); err != nil {
		t.Fatalf("InvalidateCard() error: %v", err)
	}
	if _, err := s.GetCard("org/model-a", "main", "README.md", 0); !errors.Is(err, ErrCardNotCached) {
		t.Fatalf("GetCard() after invalidate = %v, want ErrCardNotCached", err)
	}
}

func TestUpdateLog(t *testing.T) {
	s := openTestStore(t)
	for _, id := range []string{"org/a", "org/b"} {
		if err := s.LogUpdate(UpdateRecord{
			ModelID:   id,
			Fields:    "pipeline_tag=text-generation",
			ChangeURL: "https://hub/pr/1",
		}); err != nil {
			t.Fatalf("LogUpdate() error: %v", err)
		}
	}

	records, err := s.Updates(10)
	if err != nil {
		t.Fatalf("Updates() error: %v", err)
	}
	if len(records) != 2 || records[0].ModelID != "org/b" {
		t.Errorf("records = %+v, want newest first", records)
	}
}
