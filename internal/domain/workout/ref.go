package workout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidRef = errors.New("invalid workout reference")

// maxVersionDigits caps pinned versions well under int overflow; no real
// library comes anywhere near it.
const maxVersionDigits = 9

// Ref is a parsed workout reference. Version 0 means "latest published
// version"; any positive version is a pin to that exact record.
type Ref struct {
	ID      string
	Version int
}

func (r Ref) Pinned() bool {
	return r.Version > 0
}

func (r Ref) String() string {
	if !r.Pinned() {
		return r.ID
	}
	return fmt.Sprintf("%s@v%d", r.ID, r.Version)
}

// ParseRef reads the reference grammar: a workout id of lower-case letters,
// digits, and hyphens, optionally followed by "@v" and a positive integer
// with no leading zero. The three outcomes are exhaustive: a pinned Ref, a
// latest Ref, or ErrInvalidRef.
func ParseRef(raw string) (Ref, error) {
	id := raw
	version := 0

	if at := strings.IndexByte(raw, '@'); at >= 0 {
		id = raw[:at]
		suffix := raw[at+1:]

		if len(suffix) < 2 || suffix[0] != 'v' {
			return Ref{}, fmt.Errorf("%w: %q has a malformed version suffix", ErrInvalidRef, raw)
		}

		digits := suffix[1:]
		if digits[0] < '1' || digits[0] > '9' {
			return Ref{}, fmt.Errorf("%w: %q version must be a positive integer without leading zeros", ErrInvalidRef, raw)
		}
		if len(digits) > maxVersionDigits {
			return Ref{}, fmt.Errorf("%w: %q version is out of range", ErrInvalidRef, raw)
		}
		for i := 1; i < len(digits); i++ {
			if digits[i] < '0' || digits[i] > '9' {
				return Ref{}, fmt.Errorf("%w: %q version must be a positive integer", ErrInvalidRef, raw)
			}
		}

		parsed, err := strconv.Atoi(digits)
		if err != nil {
			return Ref{}, fmt.Errorf("%w: %q version is out of range", ErrInvalidRef, raw)
		}
		version = parsed
	}

	if !ValidID(id) {
		return Ref{}, fmt.Errorf("%w: %q has an invalid workout id", ErrInvalidRef, raw)
	}

	return Ref{ID: id, Version: version}, nil
}

// ValidID reports whether id matches the reference grammar's id charset:
// non-empty, lower-case ASCII letters, digits, and hyphens only.
func ValidID(id string) bool {
	if id == "" {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
			return false
		}
	}
	return true
}
