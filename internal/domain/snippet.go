// Package domain contains domain models for the application.
package domain

import (
	"errors"
	"time"
)

// CreateSnippetRequestDTO represents the expected request body for creating a snippet.
type CreateSnippetRequestDTO struct {
	Title    string   `json:"title" binding:"required"`
	Code     string   `json:"code" binding:"required"`
	Language string   `json:"language"`
	Tags     []string `json:"tags"`
}

// SnippetResponseDTO represents the response for a single snippet.
type SnippetResponseDTO struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Code      string   `json:"code"`
	Language  string   `json:"language"`
	CreatedAt string   `json:"created_at"`
	Tags      []string `json:"tags"`
}

// ListSnippetsResponseDTO represents the response for listing snippets.
type ListSnippetsResponseDTO struct {
	Count int                  `json:"count"`
	Items []SnippetResponseDTO `json:"items"`
}

// DeleteSnippetResponseDTO reports whether the deleted snippet existed.
type DeleteSnippetResponseDTO struct {
	Found bool `json:"found"`
}

// LanguagesResponseDTO carries the fixed list of supported languages.
type LanguagesResponseDTO struct {
	Languages []string `json:"languages"`
}

// Snippet represents a stored code snippet with its associated tag names.
// Tags carry set semantics: no duplicates, order unspecified.
type Snippet struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Code      string    `json:"code"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
	Tags      []string  `json:"tags"`
}

var (
	// ErrTitleRequired is returned when a snippet title is missing or blank.
	ErrTitleRequired = errors.New("title required")
	// ErrCodeRequired is returned when a snippet code body is missing or blank.
	ErrCodeRequired = errors.New("code required")
	// ErrInvalidID is returned when a snippet id is not a positive integer.
	ErrInvalidID = errors.New("invalid snippet id")
)
