// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// Package targets reads the list of target addresses, one per line. Blank
// lines as well as lines starting with “#” are skipped.
package targets

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

var (
	// ErrFileNotFound signals a target file that doesn't exist.
	ErrFileNotFound = errors.New("target file not found")
	// ErrFileUnreadable signals a target file that exists, but can't be read.
	ErrFileUnreadable = errors.New("target file unreadable")
)

// Line is a single non-blank line of target input.
type Line struct {
	Number int    // 1-based line number
	Text   string // line text, with surrounding whitespace trimmed
}

// byteOrderMark is stripped from the beginning of the first line.
const byteOrderMark = "\ufeff"

// Read all target lines from r. Lines of any length are read completely, so
// that even overlong garbage lines end up as lines to be rejected later.
func Read(r io.Reader) ([]Line, error) {
	lines := []Line{}
	reader := bufio.NewReader(r)
	for lineno := 1; ; lineno++ {
		text, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if lineno == 1 {
			text = strings.TrimPrefix(text, byteOrderMark)
		}
		text = strings.TrimSpace(text)
		if text != "" && !strings.HasPrefix(text, "#") {
			lines = append(lines, Line{Number: lineno, Text: text})
		}
		if err != nil {
			return lines, nil
		}
	}
}

// ReadFile reads all target lines from the file at path.
func ReadFile(path string) ([]Line, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrFileNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrFileUnreadable, err)
	}
	defer f.Close()
	lines, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileUnreadable, err)
	}
	return lines, nil
}
