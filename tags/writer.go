/*
 * Copyright © 2025 Draftbase Software, All rights reserved.
 */

package tags

import (
	"bufio"
	"fmt"
	"io"
)

// Writer is the serialization sink for records. Implementations decide
// buffering and output format; WriteTags emits exactly one record and
// does not follow its link chain.
type Writer interface {
	WriteTags(*TagSet) error
}

// TextWriter writes records in the textual tag format: group code on
// one line, value on the next.
type TextWriter struct {
	w *bufio.Writer
}

// NewTextWriter creates a TextWriter over w.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w)}
}

// WriteTags emits every tag of the record.
func (t *TextWriter) WriteTags(s *TagSet) error {
	for _, tag := range s.Tags() {
		if _, err := fmt.Fprintf(t.w, "%d\n%s\n", tag.Code, tag.Value); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes any buffered output to the underlying writer.
func (t *TextWriter) Flush() error {
	return t.w.Flush()
}
