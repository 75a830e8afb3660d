// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package extract

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// fwriElement is the element carrying the firmware revision information.
const fwriElement = "FWRI"

// XML returns the structured extraction strategy.
func XML() Extractor {
	return ExtractorFunc(extractXML)
}

// extractXML streams through the XML tokens instead of unmarshalling into a
// fixed struct, as the FWRI element moves around the document tree between
// firmware generations.
func extractXML(body []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.CharsetReader = charset.NewReaderLabel
	seenElement := false
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if !seenElement {
					return "", fmt.Errorf("%w: no XML elements", ErrParse)
				}
				return "", ErrNoVersion
			}
			return "", fmt.Errorf("%w: %v", ErrParse, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		seenElement = true
		if !strings.EqualFold(start.Name.Local, fwriElement) {
			continue
		}
		version, err := fwriVersion(dec, start)
		if err != nil {
			return "", err
		}
		if version == "" {
			return "", ErrNoVersion
		}
		return version, nil
	}
}

// fwriVersion consumes the FWRI element's contents, returning its version
// child's text if present, otherwise its version attribute, or finally the
// element's own text.
func fwriVersion(dec *xml.Decoder, start xml.StartElement) (string, error) {
	var ownText, childVersion strings.Builder
	hasChildVersion := false
	depth := 1
	inVersion := 0
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return "", fmt.Errorf("%w: unterminated %s element: %v", ErrParse, start.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 2 && strings.EqualFold(t.Name.Local, "version") && !hasChildVersion {
				hasChildVersion = true
				inVersion = depth
			}
		case xml.EndElement:
			if inVersion == depth {
				inVersion = -1
			}
			depth--
		case xml.CharData:
			switch {
			case inVersion > 0:
				childVersion.Write(t)
			case depth == 1:
				ownText.Write(t)
			}
		}
	}
	if hasChildVersion {
		return strings.TrimSpace(childVersion.String()), nil
	}
	for _, attr := range start.Attr {
		if strings.EqualFold(attr.Name.Local, "version") {
			return strings.TrimSpace(attr.Value), nil
		}
	}
	return strings.TrimSpace(ownText.String()), nil
}
