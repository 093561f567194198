package types

import (
	"errors"
	"fmt"
)

// ViolationCode classifies a validation failure.
type ViolationCode string

// Field-level violation codes.
const (
	CodeTypeMismatch         ViolationCode = "TypeMismatch"
	CodeMissingRequiredField ViolationCode = "MissingRequiredField"
	CodeUnknownEnumValue     ViolationCode = "UnknownEnumValue"
	CodeInvalidFormat        ViolationCode = "InvalidFormat"
	CodeUnknownField         ViolationCode = "UnknownField"
	CodeUnsupportedVersion   ViolationCode = "UnsupportedVersion"
)

// Cross-field violation codes.
const (
	CodeMissingContentOrMedia ViolationCode = "MissingContentOrMedia"
	CodeIncompleteNFTAddress  ViolationCode = "IncompleteNFTAddress"
	CodeOrphanedImageMimeType ViolationCode = "OrphanedImageMimeType"

	// CodeMissingFocusAsset is only produced when focus rules are enabled.
	CodeMissingFocusAsset ViolationCode = "MissingFocusAsset"
)

// Violation is one problem found in a document. Field is a path such as
// "locale", "media[2].item" or "FromNFT.tokenId".
type Violation struct {
	Field   string        `json:"field"`
	Code    ViolationCode `json:"code"`
	Message string        `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s: %s", v.Field, v.Code, v.Message)
}

// ValidationResult is the complete outcome of validating one document.
// OK is true iff Violations is empty.
type ValidationResult struct {
	OK         bool        `json:"ok"`
	Violations []Violation `json:"violations"`
}

// NewValidationResult builds a result from a violation list. The list is
// never nil so that JSON output always carries an array.
func NewValidationResult(violations []Violation) ValidationResult {
	if violations == nil {
		violations = []Violation{}
	}
	return ValidationResult{OK: len(violations) == 0, Violations: violations}
}

// Has reports whether the result contains a violation with the given code.
func (r ValidationResult) Has(code ViolationCode) bool {
	for _, v := range r.Violations {
		if v.Code == code {
			return true
		}
	}
	return false
}

// Codes returns the violation codes in order.
func (r ValidationResult) Codes() []ViolationCode {
	codes := make([]ViolationCode, 0, len(r.Violations))
	for _, v := range r.Violations {
		codes = append(codes, v.Code)
	}
	return codes
}

// ErrInvalidDocument is returned when an operation that requires a valid
// document is given one with violations.
var ErrInvalidDocument = errors.New("invalid curation metadata document")

// InvalidDocumentError carries the violations that made a document invalid.
type InvalidDocumentError struct {
	Result ValidationResult
}

func (e *InvalidDocumentError) Error() string {
	n := len(e.Result.Violations)
	if n == 0 {
		return ErrInvalidDocument.Error()
	}
	return fmt.Sprintf("%s: %d violation(s), first: %s", ErrInvalidDocument, n, e.Result.Violations[0])
}

func (e *InvalidDocumentError) Unwrap() error {
	return ErrInvalidDocument
}
