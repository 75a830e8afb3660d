// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package extract

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoVersion signals a response without any recognizable version token.
	ErrNoVersion = errors.New("no version token found")
	// ErrParse signals a response body that could not be parsed at all.
	ErrParse = errors.New("malformed response body")
)

// Extractor extracts a version token from a response body.
type Extractor interface {
	Extract(body []byte) (string, error)
}

// ExtractorFunc adapts a plain function to the Extractor interface.
type ExtractorFunc func(body []byte) (string, error)

// Extract calls f(body).
func (f ExtractorFunc) Extract(body []byte) (string, error) { return f(body) }

// Names lists the strategy names understood by ByName.
var Names = []string{"xml", "tag", "pattern"}

// ByName returns the extractor with default settings for the given strategy
// name, which must be one of “xml”, “tag”, or “pattern”.
func ByName(name string) (Extractor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "xml":
		return XML(), nil
	case "tag":
		return TagScan(DefaultMarker), nil
	case "pattern":
		return Pattern(DefaultPattern), nil
	}
	return nil, fmt.Errorf("unknown extraction strategy %q, expected one of %s",
		name, strings.Join(Names, ", "))
}

// ByNames returns a single extractor for the given list of strategy names; for
// more than one name the strategies get chained in the order specified.
func ByNames(names []string) (Extractor, error) {
	if len(names) == 0 {
		return nil, errors.New("no extraction strategy specified")
	}
	extractors := make([]Extractor, 0, len(names))
	for _, name := range names {
		e, err := ByName(name)
		if err != nil {
			return nil, err
		}
		extractors = append(extractors, e)
	}
	if len(extractors) == 1 {
		return extractors[0], nil
	}
	return Chain(extractors...), nil
}

// Chain returns an extractor trying each of the specified extractors in turn,
// returning the first version found. If none succeeds, the error of the last
// extractor is returned.
func Chain(extractors ...Extractor) Extractor {
	return ExtractorFunc(func(body []byte) (string, error) {
		err := ErrNoVersion
		for _, e := range extractors {
			var version string
			if version, err = e.Extract(body); err == nil {
				return version, nil
			}
		}
		return "", err
	})
}
