// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package addr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/siemens/fwdig/types"
)

// ErrInvalidFormat signals an input line that isn't a (permissibly) well-formed
// IPv4 or IPv6 address, with optional CIDR suffix.
var ErrInvalidFormat = errors.New("invalid IP/CIDR format")

// InvalidError wraps [ErrInvalidFormat] together with the offending input text
// and a short reason.
type InvalidError struct {
	Text   string // original input text
	Reason string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("%s: %q: %s", ErrInvalidFormat.Error(), e.Text, e.Reason)
}

// Unwrap returns [ErrInvalidFormat].
func (e *InvalidError) Unwrap() error { return ErrInvalidFormat }

// Address is a validated host address, optionally with a CIDR prefix length.
type Address struct {
	Addr      string       // bare address part
	Family    types.Family // IPv4 or IPv6
	Prefix    int          // prefix length, only meaningful if HasPrefix
	HasPrefix bool
	suffix    string // prefix length text as validated, such as "024"
}

// String returns the address in its “addr/prefix” form if it has a prefix,
// otherwise the bare address. The prefix length is rendered as it was
// validated, so String reproduces the validated text.
func (a Address) String() string {
	if !a.HasPrefix {
		return a.Addr
	}
	if a.suffix != "" {
		return a.Addr + "/" + a.suffix
	}
	return a.Addr + "/" + strconv.Itoa(a.Prefix)
}

// Bare returns the address without any CIDR suffix.
func (a Address) Bare() string { return a.Addr }

// Option can be passed to Validate.
type Option func(*policy)

type policy struct {
	strictSubnetting bool
}

// StrictSubnetting restricts IPv4 prefix lengths to 8, 16, 24, and 32.
func StrictSubnetting() Option {
	return func(p *policy) {
		p.strictSubnetting = true
	}
}

// Validate the specified line of input text, returning the validated
// [Address] or an error wrapping [ErrInvalidFormat].
func Validate(line string, options ...Option) (Address, error) {
	var p policy
	for _, opt := range options {
		opt(&p)
	}
	text := strings.TrimSpace(line)
	if text == "" {
		return Address{}, invalid(text, "empty line")
	}
	a := Address{Addr: text, Family: types.IPv4}
	if strings.Contains(text, ":") {
		a.Family = types.IPv6
	}
	if idx := strings.Index(text, "/"); idx >= 0 {
		suffix := text[idx+1:]
		if strings.Contains(suffix, "/") {
			return Address{}, invalid(text, "more than one '/'")
		}
		a.Addr = text[:idx]
		prefix, err := parsePrefix(suffix, a.Family, p)
		if err != nil {
			return Address{}, invalid(text, err.Error())
		}
		a.Prefix = prefix
		a.HasPrefix = true
		a.suffix = suffix
	}
	var err error
	switch a.Family {
	case types.IPv4:
		err = checkIPv4(a.Addr)
	default:
		err = checkIPv6(a.Addr)
	}
	if err != nil {
		return Address{}, invalid(text, err.Error())
	}
	return a, nil
}

func invalid(text, reason string) error {
	return &InvalidError{Text: text, Reason: reason}
}

// checkIPv4 requires exactly four dot-separated unsigned decimal components,
// each in [0..255]. Leading zeros are fine, as long as the component parses.
func checkIPv4(s string) error {
	octets := strings.Split(s, ".")
	if len(octets) != 4 {
		return fmt.Errorf("expected 4 octets, got %d", len(octets))
	}
	for _, octet := range octets {
		if !isDecimal(octet) {
			return fmt.Errorf("octet %q is not a decimal number", octet)
		}
		v, err := strconv.ParseUint(octet, 10, 64)
		if err != nil || v > 255 {
			return fmt.Errorf("octet %q out of range [0..255]", octet)
		}
	}
	return nil
}

// checkIPv6 only checks that s consists of hex digits and colons and contains
// at least one colon.
func checkIPv6(s string) error {
	if !strings.Contains(s, ":") {
		return errors.New("missing ':'")
	}
	for _, r := range s {
		switch {
		case r == ':':
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return fmt.Errorf("invalid character %q", r)
		}
	}
	return nil
}

func parsePrefix(s string, family types.Family, p policy) (int, error) {
	if !isDecimal(s) {
		return 0, fmt.Errorf("prefix length %q is not a decimal number", s)
	}
	v, err := strconv.ParseUint(s, 10, 64)
	limit := uint64(32)
	if family == types.IPv6 {
		limit = 128
	}
	if err != nil || v > limit {
		return 0, fmt.Errorf("prefix length %q out of range [0..%d]", s, limit)
	}
	if family == types.IPv4 && p.strictSubnetting {
		switch v {
		case 8, 16, 24, 32:
		default:
			return 0, fmt.Errorf("prefix length %d not in {8,16,24,32}", v)
		}
	}
	return int(v), nil
}

// isDecimal reports whether s is a non-empty run of ASCII digits.
func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
