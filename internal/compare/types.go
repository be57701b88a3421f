// Package compare implements the type comparison engine: it resolves mapped
// names in both declaration realms, pairs members by name, and classifies
// each pair as covered, partial, or missing.
package compare

// Status classifies one member pair.
type Status string

const (
	// StatusCovered means the polyfill declares a matching member
	StatusCovered Status = "covered"
	// StatusPartial means the member exists with a differing signature
	StatusPartial Status = "partial"
	// StatusMissing means the polyfill does not declare the member
	StatusMissing Status = "missing"
)

// MemberComparison is one matched (or unmatched) member pair. Created fresh
// on every run and never mutated afterwards.
type MemberComparison struct {
	Name               string  `json:"name"`
	FullPath           string  `json:"fullPath"`
	Status             Status  `json:"status"`
	ReferenceSignature *string `json:"referenceSignature"`
	PolyfillSignature  *string `json:"polyfillSignature"`
	// SignatureMatch is true only for exact textual matches after
	// normalization; a lenient-mode widening is covered but not a match.
	SignatureMatch bool   `json:"signatureMatch"`
	SignatureDiff  string `json:"signatureDiff,omitempty"`
}

// Stats aggregates member classifications.
type Stats struct {
	Total           int     `json:"total"`
	Covered         int     `json:"covered"`
	Partial         int     `json:"partial"`
	Missing         int     `json:"missing"`
	PercentComplete float64 `json:"percentComplete"`
}

// InterfaceComparison is one reference-to-polyfill comparison unit.
// PolyfillInterfaceName is nil for null-mapped and unresolvable types.
type InterfaceComparison struct {
	ReferenceInterfaceName string             `json:"referenceInterfaceName"`
	PolyfillInterfaceName  *string            `json:"polyfillInterfaceName"`
	Members                []MemberComparison `json:"members"`
	Stats                  Stats              `json:"stats"`
}

// Result is the complete output of one comparison run.
type Result struct {
	Timestamp        string                `json:"timestamp"`
	ReferencePath    string                `json:"referencePath"`
	PolyfillPath     string                `json:"polyfillPath"`
	StrictSignatures bool                  `json:"strictSignatures"`
	Interfaces       []InterfaceComparison `json:"interfaces"`
	Overall          Stats                 `json:"overall"`
	Warnings         []string              `json:"warnings"`
}
