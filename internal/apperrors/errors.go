package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound represents an error when a required piece of the album page is missing.
type ErrNotFound struct {
	Resource string
	URL      string
}

// Error implements the error interface.
func (e *ErrNotFound) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("%s not found at %s", e.Resource, e.URL)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is allows for error checking with errors.Is().
func (e *ErrNotFound) Is(target error) bool {
	_, ok := target.(*ErrNotFound)
	return ok
}

// NewNotFoundError creates a new ErrNotFound.
func NewNotFoundError(resource, url string) *ErrNotFound {
	return &ErrNotFound{
		Resource: resource,
		URL:      url,
	}
}

// ErrAlbumInfoNotFound is returned when no "Album name" paragraph exists on the page.
type ErrAlbumInfoNotFound struct {
	URL string
}

// Error implements the error interface.
func (e *ErrAlbumInfoNotFound) Error() string {
	return fmt.Sprintf("could not locate album info at %s, is the link to a valid album page?", e.URL)
}

// Is allows for error checking with errors.Is().
func (e *ErrAlbumInfoNotFound) Is(target error) bool {
	_, ok := target.(*ErrAlbumInfoNotFound)
	return ok
}

// ErrNoTracksFound is returned when the track strategy matched zero rows.
type ErrNoTracksFound struct {
	URL      string
	Strategy string
}

// Error implements the error interface.
func (e *ErrNoTracksFound) Error() string {
	return fmt.Sprintf("could not find music for album at %s (strategy %s)", e.URL, e.Strategy)
}

// Is allows for error checking with errors.Is().
func (e *ErrNoTracksFound) Is(target error) bool {
	_, ok := target.(*ErrNoTracksFound)
	return ok
}

// ErrDownloadLinkNotFound is returned when a track page has no download link for the requested quality.
type ErrDownloadLinkNotFound struct {
	PageURL string
	Quality string
}

// Error implements the error interface.
func (e *ErrDownloadLinkNotFound) Error() string {
	return fmt.Sprintf("no %s download link on track page %s", e.Quality, e.PageURL)
}

// Is allows for error checking with errors.Is().
func (e *ErrDownloadLinkNotFound) Is(target error) bool {
	_, ok := target.(*ErrDownloadLinkNotFound)
	return ok
}

// ErrUnexpectedStatus is returned when a GET answers with anything but 200.
type ErrUnexpectedStatus struct {
	URL        string
	StatusCode int
}

// Error implements the error interface.
func (e *ErrUnexpectedStatus) Error() string {
	return fmt.Sprintf("unexpected status code %d for URL: %s", e.StatusCode, e.URL)
}

// Is allows for error checking with errors.Is().
func (e *ErrUnexpectedStatus) Is(target error) bool {
	_, ok := target.(*ErrUnexpectedStatus)
	return ok
}

// IsFatal reports whether err must abort the whole run rather than a single item.
func IsFatal(err error) bool {
	return errors.Is(err, &ErrAlbumInfoNotFound{}) || errors.Is(err, &ErrNoTracksFound{})
}
