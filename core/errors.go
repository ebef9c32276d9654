package core

import "errors"

var (
	// ErrLetterNotFound is returned by stores when no letter exists for an id.
	ErrLetterNotFound = errors.New("letter not found")

	// ErrNotArchived is returned when unarchiving a letter that holds no
	// archive reference.
	ErrNotArchived = errors.New("letter is not archived")

	// ErrMalformedReference is returned when the external file id cannot be
	// extracted from a stored archive reference. Distinct from a failed
	// archive service call.
	ErrMalformedReference = errors.New("malformed archive reference")

	// ErrArchiveUpload wraps failures of the external upload call.
	ErrArchiveUpload = errors.New("archive upload failed")

	// ErrArchiveDelete wraps failures of the external delete call.
	ErrArchiveDelete = errors.New("archive delete failed")
)
