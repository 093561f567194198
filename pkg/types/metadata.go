package types

// MetadataVersion identifies a revision of the document shape.
type MetadataVersion string

// Known metadata versions.
const (
	Version1_0_0 MetadataVersion = "1.0.0"
)

// CurationType classifies what a curation is.
type CurationType string

// Curation types for version 1.0.0. PROTFOLIO keeps the historic spelling
// because it is part of the wire format.
const (
	CurationTypeProfile     CurationType = "PROFILE"
	CurationTypeContentOnly CurationType = "CONTENT_ONLY"
	CurationTypeCombined    CurationType = "COMBINED"
	CurationTypePortfolio   CurationType = "PROTFOLIO"
	CurationTypeFeed        CurationType = "FEED"
	CurationTypeDapp        CurationType = "DAPP"
)

// MainFocus is the main content focus of a curation.
type MainFocus string

// Main content focus values for version 1.0.0.
const (
	FocusVideo    MainFocus = "VIDEO"
	FocusImage    MainFocus = "IMAGE"
	FocusArticle  MainFocus = "ARTICLE"
	FocusTextOnly MainFocus = "TEXT_ONLY"
	FocusAudio    MainFocus = "AUDIO"
	FocusLink     MainFocus = "LINK"
	FocusEmbed    MainFocus = "EMBED"
)

// ContentWarning flags content that needs a warning before display.
type ContentWarning string

// Content warnings for version 1.0.0.
const (
	WarningNSFW      ContentWarning = "NSFW"
	WarningSensitive ContentWarning = "SENSITIVE"
	WarningSpoiler   ContentWarning = "SPOILER"
)

// DisplayType controls how marketplaces render an attribute value.
type DisplayType string

// Attribute display types for version 1.0.0.
const (
	DisplayNumber DisplayType = "number"
	DisplayString DisplayType = "string"
	DisplayDate   DisplayType = "date"
)

// Wire names of the top-level document fields.
const (
	FieldVersion          = "version"
	FieldCurationType     = "curation_type"
	FieldMetadataID       = "metadata_id"
	FieldDescription      = "description"
	FieldContent          = "content"
	FieldLocale           = "locale"
	FieldTags             = "tags"
	FieldContentWarning   = "contentWarning"
	FieldMainContentFocus = "mainContentFocus"
	FieldExternalURL      = "external_url"
	FieldOracleURL        = "oracle_url"
	FieldName             = "name"
	FieldAttributes       = "attributes"
	FieldImage            = "image"
	FieldImageMimeType    = "imageMimeType"
	FieldMedia            = "media"
	FieldAnimationURL     = "animation_url"
	FieldFromNFT          = "FromNFT"
)

// Wire names of fields nested inside media items, attributes and FromNFT.
const (
	FieldMediaItem       = "item"
	FieldMediaType       = "type"
	FieldMediaAltTag     = "altTag"
	FieldMediaCover      = "cover"
	FieldAttrDisplayType = "displayType"
	FieldAttrTraitType   = "traitType"
	FieldAttrValue       = "value"
	FieldContractAddress = "contractAddress"
	FieldTokenID         = "tokenId"
)

// CurationMetadata is the metadata document of a curation minted or
// referenced as an NFT. Optional scalars are pointers and optional sequences
// are nil when absent, so that absent and empty stay distinguishable.
type CurationMetadata struct {
	Version          MetadataVersion     `json:"version"`
	CurationType     CurationType        `json:"curation_type"`
	MetadataID       string              `json:"metadata_id"`
	Description      *string             `json:"description,omitempty"`
	Content          *string             `json:"content,omitempty"`
	Locale           string              `json:"locale"`
	Tags             []string            `json:"tags,omitempty"`
	ContentWarning   *ContentWarning     `json:"contentWarning,omitempty"`
	MainContentFocus MainFocus           `json:"mainContentFocus"`
	ExternalURL      *string             `json:"external_url,omitempty"`
	OracleURL        *string             `json:"oracle_url,omitempty"`
	Name             string              `json:"name"`
	Attributes       []MetadataAttribute `json:"attributes,omitempty"`
	Image            *string             `json:"image,omitempty"`
	ImageMimeType    *string             `json:"imageMimeType,omitempty"`
	Media            []MetadataMedia     `json:"media,omitempty"`
	AnimationURL     *string             `json:"animation_url,omitempty"`
	FromNFT          *NFTAddress         `json:"FromNFT,omitempty"`
}

// MetadataMedia is a media item attached to a curation.
type MetadataMedia struct {
	Item   string  `json:"item"`
	Type   *string `json:"type,omitempty"` // MIME type or a CurationType tag.
	AltTag *string `json:"altTag,omitempty"`
	Cover  *string `json:"cover,omitempty"`
}

// MetadataAttribute is a marketplace display attribute.
type MetadataAttribute struct {
	DisplayType *DisplayType `json:"displayType,omitempty"`
	TraitType   *string      `json:"traitType,omitempty"`
	Value       string       `json:"value"`
}

// NFTAddress points at the token a curation is based on. Both parts are
// opaque here; chain-specific checks belong to on-chain registration.
type NFTAddress struct {
	ContractAddress string `json:"contractAddress"`
	TokenID         string `json:"tokenId"`
}

// String returns a pointer to s, for filling optional fields.
func String(s string) *string {
	return &s
}
