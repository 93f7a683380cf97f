package document

import "errors"

// Errors returned by document operations.
var (
	// ErrPageOutOfRange indicates a page index outside the document.
	ErrPageOutOfRange = errors.New("page index out of range")

	// ErrElementNotFound indicates no element with the given id exists on the page.
	ErrElementNotFound = errors.New("element not found")

	// ErrEmptyDocument indicates an attempt to build a document without pages.
	ErrEmptyDocument = errors.New("document must contain at least one page")

	// ErrUnknownElementType indicates an unrecognized element discriminator.
	ErrUnknownElementType = errors.New("unknown element type")

	// ErrInvalidColor indicates a color string that cannot be parsed.
	ErrInvalidColor = errors.New("invalid color")

	// ErrInvalidID indicates a malformed identifier string.
	ErrInvalidID = errors.New("invalid id")
)
