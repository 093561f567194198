package format

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/language"
)

// LocaleLookup resolves a well-formed locale against a reference table.
type LocaleLookup interface {
	LookupLocale(tag string) error
}

// MimeLookup resolves a well-formed MIME type against a reference table.
type MimeLookup interface {
	LookupMime(mediaType string) error
}

// LanguageLookup checks locales against the ISO 639 and ISO 3166 tables
// shipped with golang.org/x/text.
type LanguageLookup struct{}

var _ LocaleLookup = LanguageLookup{}

// LookupLocale returns an error wrapping ErrInvalidLocale if the language or
// region subtag is well-formed but unknown.
func (LanguageLookup) LookupLocale(tag string) error {
	lang, region := SplitLocale(tag)
	if _, err := language.ParseBase(lang); err != nil {
		return fmt.Errorf("%w: unknown language %q", ErrInvalidLocale, lang)
	}
	if region == "" {
		return nil
	}
	r, err := language.ParseRegion(region)
	if err != nil || !r.IsCountry() {
		return fmt.Errorf("%w: unknown region %q", ErrInvalidLocale, region)
	}
	return nil
}

// MimetypeLookup checks MIME types against the signature table of
// github.com/gabriel-vasile/mimetype, including its aliases.
type MimetypeLookup struct{}

var _ MimeLookup = MimetypeLookup{}

// LookupMime returns an error wrapping ErrInvalidMime if mediaType is not in
// the table.
func (MimetypeLookup) LookupMime(mediaType string) error {
	if mimetype.Lookup(mediaType) == nil {
		return fmt.Errorf("%w: %q is not a known media type", ErrInvalidMime, mediaType)
	}
	return nil
}
