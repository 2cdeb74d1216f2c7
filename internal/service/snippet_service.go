// Package service contains business logic for the application.
package service

import (
	"context"
	"fmt"
	"strings"

	"snipstash/internal/domain"
	"snipstash/internal/repository"
)

// DefaultLanguage is applied when a snippet is created without one.
const DefaultLanguage = "plaintext"

// languages is the fixed set of supported language identifiers. It is static
// configuration, not derived from stored data.
var languages = [...]string{
	"javascript", "python", "java", "cpp", "csharp", "ruby", "go", "rust",
	"php", "html", "css", "sql", "typescript", "kotlin", "swift",
}

// Service provides snippet-related business logic.
type Service struct {
	repo  repository.SnippetRepository
	clock Clock
}

// NewService creates a new Service with the given SnippetRepository and Clock.
func NewService(repo repository.SnippetRepository, clock Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

// CreateSnippet validates the fields, normalizes the tag set, and persists the
// snippet with all its associations in one atomic unit. Validation failures
// never reach the repository.
func (s *Service) CreateSnippet(ctx context.Context, title, code, language string, tags []string) (domain.Snippet, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Snippet{}, domain.ErrTitleRequired
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Snippet{}, domain.ErrCodeRequired
	}
	language = strings.TrimSpace(language)
	if language == "" {
		language = DefaultLanguage
	}

	snippet := domain.Snippet{
		Title:     title,
		Code:      code,
		Language:  language,
		CreatedAt: s.clock.Now(),
		Tags:      normalizeTags(tags),
	}
	created, err := s.repo.Create(ctx, snippet)
	if err != nil {
		return domain.Snippet{}, fmt.Errorf("create snippet: %w", err)
	}
	return created, nil
}

// ListSnippets returns all snippets, optionally filtered by a free-text search
// over title, code, language, and tag names.
func (s *Service) ListSnippets(ctx context.Context, search string) ([]domain.Snippet, error) {
	return s.repo.List(ctx, strings.TrimSpace(search))
}

// DeleteSnippet removes a snippet and reports whether it existed.
func (s *Service) DeleteSnippet(ctx context.Context, id int64) (bool, error) {
	if id < 1 {
		return false, domain.ErrInvalidID
	}
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete snippet: %w", err)
	}
	return found, nil
}

// Languages returns the fixed ordered list of supported language identifiers.
func (s *Service) Languages() []string {
	out := make([]string, len(languages))
	copy(out, languages[:])
	return out
}

// normalizeTags trims each name, drops blanks, and collapses duplicates
// keeping first occurrence. Names stay case-sensitive.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
