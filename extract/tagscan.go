// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package extract

import (
	"bytes"
	"strings"
)

// DefaultMarker is the opening tag the tag-scan strategy looks for by default.
const DefaultMarker = "<FWRI>"

// TagScan returns the unstructured extraction strategy, searching the raw
// response text case-insensitively for the specified marker. The version token
// is the text following the marker up to the next “<”, with surrounding
// whitespace trimmed.
func TagScan(marker string) Extractor {
	m := []byte(marker)
	return ExtractorFunc(func(body []byte) (string, error) {
		idx := indexFold(body, m)
		if idx < 0 {
			return "", ErrNoVersion
		}
		rest := body[idx+len(m):]
		if end := bytes.IndexByte(rest, '<'); end >= 0 {
			rest = rest[:end]
		}
		version := strings.TrimSpace(string(rest))
		if version == "" {
			return "", ErrNoVersion
		}
		return version, nil
	})
}

// indexFold returns the index of the first case-insensitive occurrence of sep
// in s, or -1. Lowering s upfront would shift offsets for non-UTF-8 bodies, so
// compare in place instead.
func indexFold(s, sep []byte) int {
	if len(sep) == 0 {
		return -1
	}
	for i := 0; i+len(sep) <= len(s); i++ {
		if bytes.EqualFold(s[i:i+len(sep)], sep) {
			return i
		}
	}
	return -1
}
