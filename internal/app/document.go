package app

import (
	"io"
	"os"

	"github.com/dshills/canvasedit/internal/document"
	"github.com/dshills/canvasedit/internal/export"
)

// loadDocument reads a JSON document from path.
func loadDocument(path string) (*document.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	doc, err := document.ReadDocument(f)
	if err != nil {
		return nil, &FileError{Op: "read", Path: path, Err: err}
	}
	return doc, nil
}

// writeFile creates path and fills it with write.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}
	if err := write(f); err != nil {
		f.Close()
		return &FileError{Op: "save", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}
	return nil
}

func saveDocument(path string, doc *document.Document) error {
	return writeFile(path, func(w io.Writer) error {
		return document.WriteDocument(w, doc)
	})
}

func savePDF(path string, doc *document.Document) error {
	return writeFile(path, func(w io.Writer) error {
		return export.WritePDF(w, doc)
	})
}
