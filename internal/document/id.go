package document

import (
	"fmt"

	"github.com/google/uuid"
)

// ElementID uniquely identifies an element across all documents.
type ElementID uuid.UUID

// NewElementID returns a fresh random element id.
func NewElementID() ElementID {
	return ElementID(uuid.New())
}

// ParseElementID parses the canonical string form of an element id.
func ParseElementID(s string) (ElementID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ElementID{}, fmt.Errorf("%w %q: %v", ErrInvalidID, s, err)
	}
	return ElementID(u), nil
}

// String returns the canonical string form.
func (id ElementID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether id is the zero value.
func (id ElementID) IsZero() bool {
	return id == ElementID{}
}

// MarshalText implements encoding.TextMarshaler.
func (id ElementID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ElementID) UnmarshalText(data []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	*id = ElementID(u)
	return nil
}

// PageID uniquely identifies a page.
type PageID uuid.UUID

// NewPageID returns a fresh random page id.
func NewPageID() PageID {
	return PageID(uuid.New())
}

// String returns the canonical string form.
func (id PageID) String() string {
	return uuid.UUID(id).String()
}

// MarshalText implements encoding.TextMarshaler.
func (id PageID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *PageID) UnmarshalText(data []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	*id = PageID(u)
	return nil
}

// DocumentID uniquely identifies a document.
type DocumentID uuid.UUID

// NewDocumentID returns a fresh random document id.
func NewDocumentID() DocumentID {
	return DocumentID(uuid.New())
}

// String returns the canonical string form.
func (id DocumentID) String() string {
	return uuid.UUID(id).String()
}

// MarshalText implements encoding.TextMarshaler.
func (id DocumentID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *DocumentID) UnmarshalText(data []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	*id = DocumentID(u)
	return nil
}
