// Package fake provides an in-memory snippet repository for testing.
package fake

import (
	"context"
	"sort"
	"strings"
	"sync"

	"snipstash/internal/domain"
	"snipstash/internal/repository"
)

// SnippetRepository is an in-memory implementation of
// repository.SnippetRepository. It mirrors the relational model: tag rows are
// unique by name and shared, links live in a junction set, and a failed create
// leaves no trace.
type SnippetRepository struct {
	mu        sync.Mutex
	snippets  map[int64]domain.Snippet
	tagIDs    map[string]int64
	tagNames  map[int64]string
	links     map[int64]map[int64]struct{}
	nextSnip  int64
	nextTag   int64
	failOnTag string
}

// Option configures the fake repository.
type Option func(*SnippetRepository)

// WithItems seeds the repository with the provided snippets, tags included.
func WithItems(items ...domain.Snippet) Option {
	return func(r *SnippetRepository) {
		for _, s := range items {
			if _, err := r.Create(context.Background(), s); err != nil {
				panic(err)
			}
		}
	}
}

// WithFailOnTag makes Create fail when it reaches the given tag name,
// simulating a store error mid-transaction.
func WithFailOnTag(name string) Option {
	return func(r *SnippetRepository) { r.failOnTag = name }
}

// NewSnippetRepository creates a new in-memory fake repo.
func NewSnippetRepository(opts ...Option) *SnippetRepository {
	r := &SnippetRepository{
		snippets: make(map[int64]domain.Snippet),
		tagIDs:   make(map[string]int64),
		tagNames: make(map[int64]string),
		links:    make(map[int64]map[int64]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create stages the snippet, tag rows, and links, and commits only when every
// step succeeded.
func (r *SnippetRepository) Create(_ context.Context, s domain.Snippet) (domain.Snippet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(s.Title) == "" || strings.TrimSpace(s.Code) == "" {
		return domain.Snippet{}, repository.ErrConstraint
	}

	// Stage everything; nothing touches the maps until the loop finishes.
	newTags := make(map[string]int64)
	linkIDs := make(map[int64]struct{})
	names := make([]string, 0, len(s.Tags))
	nextTag := r.nextTag
	for _, name := range s.Tags {
		if r.failOnTag != "" && name == r.failOnTag {
			return domain.Snippet{}, repository.ErrConstraint
		}
		if strings.TrimSpace(name) == "" {
			return domain.Snippet{}, repository.ErrConstraint
		}
		id, ok := r.tagIDs[name]
		if !ok {
			if staged, exists := newTags[name]; exists {
				id = staged
			} else {
				nextTag++
				id = nextTag
				newTags[name] = id
			}
		}
		if _, dup := linkIDs[id]; dup {
			continue
		}
		linkIDs[id] = struct{}{}
		names = append(names, name)
	}

	// Commit.
	r.nextTag = nextTag
	for name, id := range newTags {
		r.tagIDs[name] = id
		r.tagNames[id] = name
	}
	r.nextSnip++
	created := s
	created.ID = r.nextSnip
	sort.Strings(names)
	created.Tags = names
	r.snippets[created.ID] = created
	r.links[created.ID] = linkIDs
	return created, nil
}

// List filters and orders like the Postgres implementation: case-insensitive
// substring over title/code/language/tag names, newest first.
func (r *SnippetRepository) List(_ context.Context, search string) ([]domain.Snippet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := strings.ToLower(search)
	items := make([]domain.Snippet, 0, len(r.snippets))
	for id, s := range r.snippets {
		names := r.tagNamesFor(id)
		if q != "" && !matches(s, names, q) {
			continue
		}
		s.Tags = names
		items = append(items, s)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
	return items, nil
}

// Delete removes the snippet and its links. Tag rows stay, matching the
// cascade semantics of the relational store.
func (r *SnippetRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.snippets[id]; !ok {
		return false, nil
	}
	delete(r.snippets, id)
	delete(r.links, id)
	return true, nil
}

// TagCount reports the number of tag rows, for assertions on reuse.
func (r *SnippetRepository) TagCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tagIDs)
}

// LinkCount reports the number of association rows across all snippets.
func (r *SnippetRepository) LinkCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, set := range r.links {
		n += len(set)
	}
	return n
}

// SnippetCount reports the number of snippet rows.
func (r *SnippetRepository) SnippetCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snippets)
}

func (r *SnippetRepository) tagNamesFor(id int64) []string {
	names := make([]string, 0, len(r.links[id]))
	for tagID := range r.links[id] {
		names = append(names, r.tagNames[tagID])
	}
	sort.Strings(names)
	return names
}

func matches(s domain.Snippet, tags []string, q string) bool {
	if strings.Contains(strings.ToLower(s.Title), q) ||
		strings.Contains(strings.ToLower(s.Code), q) ||
		strings.Contains(strings.ToLower(s.Language), q) {
		return true
	}
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

var _ repository.SnippetRepository = (*SnippetRepository)(nil)
