// Package apperrors tests verify the custom error types, their Error()
// messages, Is() matching semantics and compatibility with errors.Is()
// through fmt.Errorf wrapping.
package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

// ---------------------------------------------------------------------------
// ErrNotFound
// ---------------------------------------------------------------------------

func TestErrNotFound_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      *ErrNotFound
		expected string
	}{
		{
			name:     "with URL",
			err:      &ErrNotFound{Resource: "album art", URL: "https://example.com/a"},
			expected: "album art not found at https://example.com/a",
		},
		{
			name:     "without URL",
			err:      &ErrNotFound{Resource: "songlist table"},
			expected: "songlist table not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrNotFound_Is(t *testing.T) {
	t.Parallel()
	err := NewNotFoundError("album art", "https://example.com")

	t.Run("matches another ErrNotFound", func(t *testing.T) {
		if !errors.Is(err, &ErrNotFound{Resource: "other"}) {
			t.Error("expected errors.Is to match *ErrNotFound regardless of field values")
		}
	})

	t.Run("does not match ErrNoTracksFound", func(t *testing.T) {
		if errors.Is(err, &ErrNoTracksFound{}) {
			t.Error("expected errors.Is not to match *ErrNoTracksFound")
		}
	})

	t.Run("matches through fmt.Errorf wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("outer: %w", err)
		if !errors.Is(wrapped, &ErrNotFound{}) {
			t.Error("expected errors.Is to match *ErrNotFound through wrapping")
		}
	})
}

// ---------------------------------------------------------------------------
// Fatal errors
// ---------------------------------------------------------------------------

func TestErrAlbumInfoNotFound_Error(t *testing.T) {
	t.Parallel()
	err := &ErrAlbumInfoNotFound{URL: "https://example.com/album/x"}
	want := "could not locate album info at https://example.com/album/x, is the link to a valid album page?"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrNoTracksFound_Error(t *testing.T) {
	t.Parallel()
	err := &ErrNoTracksFound{URL: "https://example.com/album/x", Strategy: "semantic"}
	want := "could not find music for album at https://example.com/album/x (strategy semantic)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIsFatal(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "album info missing", err: &ErrAlbumInfoNotFound{}, want: true},
		{name: "no tracks", err: &ErrNoTracksFound{}, want: true},
		{name: "wrapped no tracks", err: fmt.Errorf("music: %w", &ErrNoTracksFound{}), want: true},
		{name: "download link missing", err: &ErrDownloadLinkNotFound{}, want: false},
		{name: "bad status", err: &ErrUnexpectedStatus{StatusCode: 500}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsFatal(tt.err); got != tt.want {
				t.Errorf("IsFatal() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Per-item errors
// ---------------------------------------------------------------------------

func TestErrDownloadLinkNotFound(t *testing.T) {
	t.Parallel()
	err := &ErrDownloadLinkNotFound{PageURL: "https://example.com/t/01.mp3", Quality: ".flac"}
	want := "no .flac download link on track page https://example.com/t/01.mp3"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(fmt.Errorf("track 1: %w", err), &ErrDownloadLinkNotFound{}) {
		t.Error("expected errors.Is to match *ErrDownloadLinkNotFound through wrapping")
	}
}

func TestErrUnexpectedStatus(t *testing.T) {
	t.Parallel()
	err := &ErrUnexpectedStatus{URL: "https://example.com/x", StatusCode: 404}
	want := "unexpected status code 404 for URL: https://example.com/x"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	var target *ErrUnexpectedStatus
	if !errors.As(fmt.Errorf("fetch: %w", err), &target) {
		t.Fatal("expected errors.As to extract *ErrUnexpectedStatus")
	}
	if target.StatusCode != 404 {
		t.Errorf("StatusCode = %d, want 404", target.StatusCode)
	}
}
