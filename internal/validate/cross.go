package validate

import (
	"strings"

	"github.com/mesh-intelligence/curation/pkg/types"
)

// crossRule checks a relationship between fields. Rules read the raw
// document and run whatever the field checks found.
type crossRule func(doc map[string]any) []Violation

// crossRules run in this order on every document.
var crossRules = []crossRule{
	contentOrMedia,
	completeNFTAddress,
	imageMimeTypeHasImage,
}

// focusRules run after crossRules when Options.FocusRules is set.
var focusRules = []crossRule{
	focusAsset,
}

// contentOrMedia requires content unless media is a non-empty sequence.
func contentOrMedia(doc map[string]any) []Violation {
	if nonBlank(doc, types.FieldContent) || nonEmptyList(doc, types.FieldMedia) {
		return nil
	}
	return []Violation{violation(types.FieldContent, types.CodeMissingContentOrMedia,
		"content is required unless media holds at least one item")}
}

// completeNFTAddress requires both parts of FromNFT when it is present.
func completeNFTAddress(doc map[string]any) []Violation {
	v, ok := doc[types.FieldFromNFT]
	if !ok || v == nil {
		return nil
	}
	addr, _ := v.(map[string]any)
	var missing []string
	for _, name := range []string{types.FieldContractAddress, types.FieldTokenID} {
		if !nonBlank(addr, name) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return []Violation{violation(types.FieldFromNFT, types.CodeIncompleteNFTAddress,
		"FromNFT needs both contractAddress and tokenId; missing %s", strings.Join(missing, " and "))}
}

// imageMimeTypeHasImage requires image when imageMimeType is given.
func imageMimeTypeHasImage(doc map[string]any) []Violation {
	if !presentValue(doc, types.FieldImageMimeType) || presentValue(doc, types.FieldImage) {
		return nil
	}
	return []Violation{violation(types.FieldImageMimeType, types.CodeOrphanedImageMimeType,
		"imageMimeType is set but image is absent")}
}

// focusAsset requires the asset a main content focus is presented with:
// EMBED is shown through animation_url, and VIDEO, IMAGE and AUDIO need
// something to play or show.
func focusAsset(doc map[string]any) []Violation {
	focus, _ := doc[types.FieldMainContentFocus].(string)
	switch types.MainFocus(focus) {
	case types.FocusEmbed:
		if !presentValue(doc, types.FieldAnimationURL) {
			return []Violation{violation(types.FieldAnimationURL, types.CodeMissingFocusAsset,
				"mainContentFocus EMBED requires animation_url")}
		}
	case types.FocusVideo, types.FocusImage, types.FocusAudio:
		if !nonEmptyList(doc, types.FieldMedia) &&
			!presentValue(doc, types.FieldImage) &&
			!presentValue(doc, types.FieldAnimationURL) {
			return []Violation{violation(types.FieldMedia, types.CodeMissingFocusAsset,
				"mainContentFocus %s requires media, image or animation_url", focus)}
		}
	}
	return nil
}

// presentValue reports whether key is set to a non-null value.
func presentValue(obj map[string]any, key string) bool {
	v, ok := obj[key]
	return ok && v != nil
}

// nonBlank reports whether key holds a string that is not blank after
// trimming. A nil obj has no keys.
func nonBlank(obj map[string]any, key string) bool {
	s, ok := obj[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

// nonEmptyList reports whether key holds a sequence with at least one item.
func nonEmptyList(obj map[string]any, key string) bool {
	l, ok := AsList(obj[key])
	return ok && len(l) > 0
}
