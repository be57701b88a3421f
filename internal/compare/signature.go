package compare

import (
	"fmt"
	"strings"
)

// Normalize canonicalizes a textual signature: field separators become
// commas, union and separator spacing is made uniform, and whitespace runs
// collapse to single spaces. Exact equality after normalization is the only
// unconditionally safe classification; everything beyond it goes through the
// widening heuristic.
func Normalize(sig string) string {
	s := strings.TrimSpace(sig)
	s = strings.ReplaceAll(s, ";", ",")
	s = strings.ReplaceAll(s, ",", ", ")
	s = strings.ReplaceAll(s, "|", " | ")
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimSuffix(s, ",")
	return s
}

// unionMembers splits a normalized signature on top-level-looking union
// separators into a trimmed member set.
func unionMembers(normalized string) map[string]bool {
	set := make(map[string]bool)
	for _, part := range strings.Split(normalized, " | ") {
		part = strings.TrimSpace(part)
		if part != "" {
			set[part] = true
		}
	}
	return set
}

// isCompatibleWidening reports whether the polyfill signature is a widening
// of the reference signature: every union member of the reference appears in
// the polyfill's union member set, or the polyfill contains the reference as
// a substring. Textual approximation of structural subtyping; annotation
// files are tuned against its observable behavior, so it must stay stable.
func isCompatibleWidening(ref, poly string) bool {
	polySet := unionMembers(poly)
	allPresent := true
	for member := range unionMembers(ref) {
		if !polySet[member] {
			allPresent = false
			break
		}
	}
	if allPresent {
		return true
	}
	return strings.Contains(poly, ref)
}

// classifySignatures compares two rendered signatures and returns the member
// status, whether the signatures matched exactly, and a diff message for
// non-exact outcomes.
func classifySignatures(refSig, polySig string, strict bool) (status Status, exact bool, diff string) {
	ref := Normalize(refSig)
	poly := Normalize(polySig)

	if ref == poly {
		return StatusCovered, true, ""
	}

	if isCompatibleWidening(ref, poly) {
		if strict {
			return StatusPartial, false,
				fmt.Sprintf("Signature differs: reference expects %q, polyfill has %q", ref, poly)
		}
		return StatusCovered, false, ""
	}

	return StatusPartial, false,
		fmt.Sprintf("Signature mismatch: reference=%q vs polyfill=%q", ref, poly)
}
