package discovery

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

var (
	ErrEmptyDomain   = errors.New("domain is required")
	ErrInvalidDomain = errors.New("invalid domain")
)

// NormalizeDomain turns user input into the ASCII, lowercase form used for
// lookups and cache keys. A scheme, path or port typed by the user is dropped.
func NormalizeDomain(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrEmptyDomain
	}
	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil {
			return "", fmt.Errorf("%w: %q: %v", ErrInvalidDomain, raw, err)
		}
		s = u.Hostname()
	} else if i := strings.IndexAny(s, "/:"); i != -1 {
		s = s[:i]
	}

	s = strings.TrimSuffix(strings.TrimPrefix(strings.ToLower(s), "*."), ".")
	if s == "" {
		return "", ErrEmptyDomain
	}

	ascii, err := idna.Lookup.ToASCII(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidDomain, raw, err)
	}
	if !strings.Contains(ascii, ".") {
		return "", fmt.Errorf("%w: %q has no parent zone", ErrInvalidDomain, raw)
	}
	return ascii, nil
}

// cleanName normalises one name reported by a source. ok is false for names
// that are not valid hostnames.
func cleanName(name string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.TrimPrefix(s, "*.")
	s = strings.TrimSuffix(s, ".")
	if s == "" || strings.ContainsAny(s, " @/") {
		return "", false
	}
	ascii, err := idna.Lookup.ToASCII(s)
	if err != nil {
		return "", false
	}
	return ascii, true
}

// InScope reports whether name is d itself or a name below it.
func InScope(name, d string) bool {
	return name == d || strings.HasSuffix(name, "."+d)
}
