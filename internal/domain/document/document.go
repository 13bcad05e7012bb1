package document

import (
	"fmt"
	"time"
)

// Document is a seeded text record (immutable value object).
type Document struct {
	id     string
	author string
	text   string
	date   time.Time
}

// New validates and creates a Document.
func New(id, author, text string, date time.Time) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required")
	}
	if author == "" {
		return Document{}, fmt.Errorf("author is required")
	}
	if date.IsZero() {
		return Document{}, fmt.Errorf("date is required")
	}
	return Document{id: id, author: author, text: text, date: date}, nil
}

// Reconstruct creates a Document without validation (storage hydration).
func Reconstruct(id, author, text string, date time.Time) Document {
	return Document{id: id, author: author, text: text, date: date}
}

// ID returns the document ID.
func (d Document) ID() string { return d.id }

// Author returns the author name.
func (d Document) Author() string { return d.author }

// Text returns the document body.
func (d Document) Text() string { return d.text }

// Date returns the creation instant.
func (d Document) Date() time.Time { return d.date }

// Timestamp returns the creation instant as unix seconds, the stored representation.
func (d Document) Timestamp() int64 { return d.date.Unix() }
