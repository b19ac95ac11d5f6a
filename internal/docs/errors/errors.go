package errors

// Package errors provides sentinel errors for content corpus loading.

import "errors"

var (
	// ErrContentDirNotFound indicates the configured content directory does not exist.
	ErrContentDirNotFound = errors.New("content directory not found")

	// ErrDocsDirWalkFailed indicates filesystem traversal of the content directory failed.
	ErrDocsDirWalkFailed = errors.New("content directory walk failed")

	// ErrFileReadFailed indicates reading a discovered document failed.
	ErrFileReadFailed = errors.New("document read failed")

	// ErrInvalidFrontMatter indicates a document's front matter could not be parsed.
	ErrInvalidFrontMatter = errors.New("invalid front matter")

	// ErrDuplicateSlug indicates two files resolve to the same slug (e.g. intro.md and intro.mdx).
	ErrDuplicateSlug = errors.New("duplicate document slug")
)
