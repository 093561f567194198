// Package format validates the externally defined value formats used by
// Curation Metadata: MIME types, BCP-47 locale tags and URLs.
//
// The validators only check shape. Whether a well-formed value names
// something real is a question for a LocaleLookup or MimeLookup, which the
// caller may supply.
package format

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Format errors. Every error returned by this package wraps one of these.
var (
	ErrInvalidMime   = errors.New("invalid MIME type")
	ErrInvalidLocale = errors.New("invalid locale")
	ErrInvalidURL    = errors.New("invalid URL")
)

// topLevelTypes are the IANA registered top-level media types.
var topLevelTypes = map[string]bool{
	"application": true,
	"audio":       true,
	"example":     true,
	"font":        true,
	"haptics":     true,
	"image":       true,
	"message":     true,
	"model":       true,
	"multipart":   true,
	"text":        true,
	"video":       true,
}

// restrictedName is the RFC 6838 restricted-name production.
var restrictedName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9!#$&^_.+-]{0,126}$`)

// ValidateMime accepts "type/subtype" where type is a registered top-level
// media type. Parameters such as "; charset=utf-8" are not accepted.
func ValidateMime(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty", ErrInvalidMime)
	}
	typ, sub, ok := strings.Cut(s, "/")
	if !ok {
		return fmt.Errorf("%w: %q is not type/subtype", ErrInvalidMime, s)
	}
	if !topLevelTypes[strings.ToLower(typ)] {
		return fmt.Errorf("%w: unregistered top-level type %q", ErrInvalidMime, typ)
	}
	if !restrictedName.MatchString(sub) {
		return fmt.Errorf("%w: malformed subtype %q", ErrInvalidMime, sub)
	}
	return nil
}

// localePattern is language[-REGION]: a lowercase ISO 639 code of two or
// three letters, optionally followed by an uppercase ISO 3166 alpha-2 region.
var localePattern = regexp.MustCompile(`^[a-z]{2,3}(-[A-Z]{2})?$`)

// ValidateLocale accepts "xx", "xxx", "xx-YY" and "xxx-YY".
func ValidateLocale(s string) error {
	if !localePattern.MatchString(s) {
		return fmt.Errorf("%w: %q does not match language[-REGION]", ErrInvalidLocale, s)
	}
	return nil
}

// SplitLocale returns the language and region parts of a locale that passed
// ValidateLocale. Region is empty when absent.
func SplitLocale(s string) (language, region string) {
	language, region, _ = strings.Cut(s, "-")
	return language, region
}

// Recognized URL schemes. Content is usually pinned on IPFS or Arweave.
var urlSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ipfs":  true,
	"ipns":  true,
	"ar":    true,
}

// ValidateURL accepts absolute URLs with a recognized scheme. http and https
// need a host; the content schemes need a host or a path naming the content.
func ValidateURL(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	if strings.ContainsAny(s, " \t\r\n") {
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidURL, s)
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if !u.IsAbs() {
		return fmt.Errorf("%w: %q is not absolute", ErrInvalidURL, s)
	}
	scheme := strings.ToLower(u.Scheme)
	if !urlSchemes[scheme] {
		return fmt.Errorf("%w: unrecognized scheme %q", ErrInvalidURL, u.Scheme)
	}
	switch scheme {
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("%w: %q has no host", ErrInvalidURL, s)
		}
	default:
		if u.Host == "" && strings.Trim(u.Path, "/") == "" && u.Opaque == "" {
			return fmt.Errorf("%w: %q names no content", ErrInvalidURL, s)
		}
	}
	return nil
}
