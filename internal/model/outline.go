package model

// NodeKind discriminates the two outline node shapes. Filtering and
// collection switch on it exhaustively so a future third kind shows up as a
// compile-time gap rather than a silently ignored string.
type NodeKind string

const (
	NodeKindArgument NodeKind = "argument"
	NodeKindEvidence NodeKind = "evidence"
)

type ClaimType string

const (
	ClaimTypeFactual      ClaimType = "factual"
	ClaimTypeInterpretive ClaimType = "interpretive"
	ClaimTypePrescriptive ClaimType = "prescriptive"
)

type VerificationStatus string

const (
	VerificationVerified   VerificationStatus = "verified"
	VerificationDisputed   VerificationStatus = "disputed"
	VerificationUnverified VerificationStatus = "unverified"
)

// OutlineNode is one node of the parse-derived argument outline. A parsed
// resource carries an ordered forest of these. IDs are unique within a single
// tree; the tree arrives fresh from the external parser and is read-only
// afterwards (filtering builds new nodes, never mutates).
type OutlineNode struct {
	ID                 string             `json:"id"`
	Kind               NodeKind           `json:"kind"`
	Title              string             `json:"title"`
	Content            string             `json:"content,omitempty"`
	ClaimType          ClaimType          `json:"claimType,omitempty"`
	VerificationStatus VerificationStatus `json:"verificationStatus,omitempty"`
	SourceURL          string             `json:"sourceUrl,omitempty"`
	Children           []OutlineNode      `json:"children,omitempty"`
}

// ParsedResource is the document shape served by the external parsing
// service, keyed by a parsed-resource identifier.
type ParsedResource struct {
	Outline        []OutlineNode `json:"outline"`
	MainThesis     string        `json:"mainThesis,omitempty"`
	Summary        string        `json:"summary,omitempty"`
	TotalClaims    int           `json:"totalClaims"`
	TotalEvidence  int           `json:"totalEvidence"`
	VerifiedClaims int           `json:"verifiedClaims"`
	SourcesCited   []string      `json:"sourcesCited,omitempty"`
}
