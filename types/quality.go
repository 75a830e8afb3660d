// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import "fmt"

// Quality indicates the "quality" of a host's firmware version query, such as
// unresolved, found, unreachable, et cetera.
type Quality int

// The query qualities of a host.
const (
	Unresolved  Quality = iota // host neither in query nor queried.
	Resolving                  // host query in flight.
	Invalid                    // input line isn't a valid address at all.
	Unreachable                // no scheme got a successful response.
	NotFound                   // reachable, but no version token located.
	Found                      // version successfully retrieved.
)

// String returns the clear-text representation of a Quality value.
func (q Quality) String() string {
	switch q {
	case Unresolved:
		return "unresolved"
	case Resolving:
		return "resolving"
	case Invalid:
		return "invalid"
	case Unreachable:
		return "unreachable"
	case NotFound:
		return "not found"
	case Found:
		return "found"
	}
	return fmt.Sprintf("Quality(%d)", q)
}

// IsPending returns true as long as a host hasn't received its final verdict.
func (q Quality) IsPending() bool {
	switch q {
	case Unresolved, Resolving:
		return true
	default:
		return false
	}
}

// IsFailure returns true for all final verdicts that didn't yield a version.
func (q Quality) IsFailure() bool {
	switch q {
	case Invalid, Unreachable, NotFound:
		return true
	default:
		return false
	}
}
