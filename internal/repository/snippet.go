// Package repository defines the snippet persistence contract and its error taxonomy.
package repository

import (
	"context"
	"errors"

	"snipstash/internal/domain"
)

var (
	// ErrConstraint is returned when the store rejects a write that violates a
	// declared constraint (empty title/code, empty tag name).
	ErrConstraint = errors.New("constraint violation")
	// ErrReference is returned when an association points at a snippet or tag
	// that does not exist.
	ErrReference = errors.New("unknown reference")
)

// SnippetRepository defines methods for snippet data access.
//
// Create persists the snippet and all tag associations in s.Tags as one atomic
// unit: tag rows are created at most once per distinct name and reused across
// snippets. Either the snippet and every link persist, or nothing does.
//
// List returns every snippet with its complete tag set, newest first. A
// non-empty search restricts the result to snippets whose title, code,
// language, or any associated tag name contains the text (case-insensitive).
// Each qualifying snippet appears exactly once.
//
// Delete removes the snippet and, by cascade, its association rows. The bool
// reports whether a row existed; a missing id is not an error.
type SnippetRepository interface {
	Create(ctx context.Context, s domain.Snippet) (domain.Snippet, error)
	List(ctx context.Context, search string) ([]domain.Snippet, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
