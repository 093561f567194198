// Package types defines the Curation Metadata document model, its closed
// enumerations, the validation result types, and the Catalog interface with
// its standard errors.
package types
