// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package extract

import (
	"regexp"
)

// DefaultPattern matches a “d.dd” version between FWRI (or the frequently
// misspelled FRWI) tags, in any letter case.
var DefaultPattern = regexp.MustCompile(`(?i)<(?:fwri|frwi)>\s*(\d\.\d{2})\s*</(?:fwri|frwi)>`)

// Pattern returns the regular expression extraction strategy. The first
// capture group of the expression is the version; expressions without any
// capture group yield the whole match instead.
func Pattern(re *regexp.Regexp) Extractor {
	return ExtractorFunc(func(body []byte) (string, error) {
		m := re.FindSubmatch(body)
		if m == nil {
			return "", ErrNoVersion
		}
		if len(m) > 1 {
			return string(m[1]), nil
		}
		return string(m[0]), nil
	})
}
