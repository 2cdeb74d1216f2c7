package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"snipstash/internal/domain"
)

type stubClock struct{ t time.Time }

func (s stubClock) Now() time.Time { return s.t }

type fakeRepo struct {
	created    []domain.Snippet
	deletedIDs []int64
	deleteOK   bool
	listArgs   struct{ search string }
	err        error
}

func (f *fakeRepo) Create(_ context.Context, s domain.Snippet) (domain.Snippet, error) {
	if f.err != nil {
		return domain.Snippet{}, f.err
	}
	f.created = append(f.created, s)
	s.ID = int64(len(f.created))
	return s, nil
}

func (f *fakeRepo) List(_ context.Context, search string) ([]domain.Snippet, error) {
	f.listArgs.search = search
	return nil, f.err
}

func (f *fakeRepo) Delete(_ context.Context, id int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return f.deleteOK, nil
}

func TestCreateSnippet_StampsClockAndDefaults(t *testing.T) {
	fixed := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepo{}
	s := NewService(repo, stubClock{t: fixed})

	got, err := s.CreateSnippet(context.Background(), "t", "c", "", nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !got.CreatedAt.Equal(fixed) {
		t.Fatalf("createdAt mismatch: %v", got.CreatedAt)
	}
	if got.Language != DefaultLanguage {
		t.Fatalf("want default language, got %q", got.Language)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected create called once")
	}
}

func TestCreateSnippet_EmptyTitleShortCircuits(t *testing.T) {
	repo := &fakeRepo{}
	s := NewService(repo, stubClock{t: time.Now()})
	_, err := s.CreateSnippet(context.Background(), "   ", "code", "go", nil)
	if !errors.Is(err, domain.ErrTitleRequired) {
		t.Fatalf("want ErrTitleRequired, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("repository must not be touched on validation failure")
	}
}

func TestCreateSnippet_EmptyCodeShortCircuits(t *testing.T) {
	repo := &fakeRepo{}
	s := NewService(repo, stubClock{t: time.Now()})
	_, err := s.CreateSnippet(context.Background(), "title", "\t\n", "go", nil)
	if !errors.Is(err, domain.ErrCodeRequired) {
		t.Fatalf("want ErrCodeRequired, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("repository must not be touched on validation failure")
	}
}

func TestCreateSnippet_NormalizesTags(t *testing.T) {
	repo := &fakeRepo{}
	s := NewService(repo, stubClock{t: time.Now()})
	_, err := s.CreateSnippet(context.Background(), "t", "c", "javascript", []string{" x ", "x", "", "y"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := []string{"x", "y"}
	if !reflect.DeepEqual(repo.created[0].Tags, want) {
		t.Fatalf("want %v, got %v", want, repo.created[0].Tags)
	}
}

func TestCreateSnippet_TagNamesStayCaseSensitive(t *testing.T) {
	repo := &fakeRepo{}
	s := NewService(repo, stubClock{t: time.Now()})
	_, err := s.CreateSnippet(context.Background(), "t", "c", "go", []string{"Go", "go"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(repo.created[0].Tags) != 2 {
		t.Fatalf("case-distinct names must not collapse: %v", repo.created[0].Tags)
	}
}

func TestCreateSnippet_RepositoryErrorWrapped(t *testing.T) {
	boom := errors.New("boom")
	repo := &fakeRepo{err: boom}
	s := NewService(repo, stubClock{t: time.Now()})
	_, err := s.CreateSnippet(context.Background(), "t", "c", "go", nil)
	if !errors.Is(err, boom) {
		t.Fatalf("want wrapped boom, got %v", err)
	}
}

func TestListSnippets_TrimsSearch(t *testing.T) {
	repo := &fakeRepo{}
	s := NewService(repo, stubClock{t: time.Now()})
	_, _ = s.ListSnippets(context.Background(), "  array ")
	if repo.listArgs.search != "array" {
		t.Fatalf("want trimmed search, got %q", repo.listArgs.search)
	}
}

func TestDeleteSnippet_InvalidID(t *testing.T) {
	repo := &fakeRepo{}
	s := NewService(repo, stubClock{t: time.Now()})
	for _, id := range []int64{0, -1} {
		if _, err := s.DeleteSnippet(context.Background(), id); !errors.Is(err, domain.ErrInvalidID) {
			t.Fatalf("id %d: want ErrInvalidID, got %v", id, err)
		}
	}
	if len(repo.deletedIDs) != 0 {
		t.Fatalf("repository must not be touched on invalid id")
	}
}

func TestDeleteSnippet_ReportsFound(t *testing.T) {
	repo := &fakeRepo{deleteOK: true}
	s := NewService(repo, stubClock{t: time.Now()})
	found, err := s.DeleteSnippet(context.Background(), 7)
	if err != nil || !found {
		t.Fatalf("found=%v err=%v", found, err)
	}
	if len(repo.deletedIDs) != 1 || repo.deletedIDs[0] != 7 {
		t.Fatalf("delete args: %v", repo.deletedIDs)
	}
}

func TestLanguages_FixedAndCopied(t *testing.T) {
	s := NewService(&fakeRepo{}, stubClock{t: time.Now()})
	got := s.Languages()
	if len(got) != 15 || got[0] != "javascript" || got[len(got)-1] != "swift" {
		t.Fatalf("unexpected list: %v", got)
	}
	got[0] = "mutated"
	if s.Languages()[0] != "javascript" {
		t.Fatalf("Languages must return a copy")
	}
}
