/*
 * Copyright © 2025 Draftbase Software, All rights reserved.
 */

package tags

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/draftbase/dxfspace/errors"
)

// Reader reads group code/value pairs from the textual tag format: one
// line holding the group code, the next holding the value.
type Reader struct {
	sc   *bufio.Scanner
	line int
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{sc: bufio.NewScanner(r)}
}

// ReadTag returns the next tag, or io.EOF when the input is exhausted.
func (r *Reader) ReadTag() (Tag, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return Tag{}, err
		}
		return Tag{}, io.EOF
	}
	r.line++
	codeLine := strings.TrimSpace(r.sc.Text())

	code, err := strconv.Atoi(codeLine)
	if err != nil {
		return Tag{}, errors.NewStructureError(fmt.Sprintf("invalid group code %q at line %d", codeLine, r.line))
	}

	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return Tag{}, err
		}
		return Tag{}, errors.NewStructureError(fmt.Sprintf("group code %d at line %d has no value line", code, r.line))
	}
	r.line++
	return Tag{Code: code, Value: strings.TrimRight(r.sc.Text(), "\r")}, nil
}

// ReadAll reads every record from r, splitting the tag stream at
// code-0 tags. A trailing EOF marker record is dropped. Tags appearing
// before the first code-0 tag are a structural error.
func ReadAll(r io.Reader) ([]*TagSet, error) {
	tr := NewReader(r)
	var records []*TagSet
	var current *TagSet

	for {
		tag, err := tr.ReadTag()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if tag.Code == CodeType {
			current = New(tag)
			records = append(records, current)
			continue
		}
		if current == nil {
			return nil, errors.NewStructureError(fmt.Sprintf("tag (%d, %q) before first record", tag.Code, tag.Value))
		}
		current.Append(tag)
	}

	if n := len(records); n > 0 && records[n-1].DXFType() == "EOF" {
		records = records[:n-1]
	}
	return records, nil
}
