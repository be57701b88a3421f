package compare

import (
	"context"
	"fmt"
	"strings"
	"time"

	apierrors "apicov/internal/errors"
	"apicov/internal/ifacemap"
	"apicov/internal/logging"
	"apicov/internal/tsdecl"
)

// privateMarker prefixes members excluded from comparison by convention.
const privateMarker = "_"

// Options configures a comparison run.
type Options struct {
	// ReferenceDeclDir holds the reference runtime's declaration files
	ReferenceDeclDir string
	// PolyfillDeclPath is the polyfill's exported declaration file
	PolyfillDeclPath string
	// StrictSignatures classifies compatible widenings as partial instead of
	// covered
	StrictSignatures bool
	// Mappings overrides the compiled-in interface map (tests only)
	Mappings []ifacemap.Mapping
	// SkipList overrides the compiled-in skip list (tests only)
	SkipList []ifacemap.SkipEntry
}

// Engine compares the polyfill's declared surface against the reference
// declarations. Each Compare call builds a fresh resolution context; an
// Engine holds no state between runs.
type Engine struct {
	opts   Options
	logger *logging.Logger
}

// NewEngine creates a comparison engine.
func NewEngine(opts Options, logger *logging.Logger) *Engine {
	if opts.Mappings == nil {
		opts.Mappings = ifacemap.Mappings()
	}
	if opts.SkipList == nil {
		opts.SkipList = ifacemap.SkipList()
	}
	return &Engine{opts: opts, logger: logger}
}

func (e *Engine) skipped(reference string) (ifacemap.SkipEntry, bool) {
	for _, entry := range e.opts.SkipList {
		if entry.Reference == reference {
			return entry, true
		}
	}
	return ifacemap.SkipEntry{}, false
}

// Compare runs the full comparison. Unresolvable names and unreadable files
// degrade to warnings plus pessimistic (missing) classifications; the only
// fatal condition is an empty input path.
func (e *Engine) Compare(ctx context.Context) (*Result, error) {
	if strings.TrimSpace(e.opts.ReferenceDeclDir) == "" {
		return nil, apierrors.New(apierrors.ConfigInvalid, "reference declaration path is empty", nil)
	}
	if strings.TrimSpace(e.opts.PolyfillDeclPath) == "" {
		return nil, apierrors.New(apierrors.ConfigInvalid, "polyfill declaration path is empty", nil)
	}

	// One semantic context spans both sources so type rendering is
	// consistent between the two sides.
	declCtx := tsdecl.NewContext(e.logger)
	if err := declCtx.LoadDirectory(ctx, tsdecl.ReferenceRealm, e.opts.ReferenceDeclDir); err != nil {
		return nil, apierrors.New(apierrors.ConfigInvalid, "invalid reference declaration path", err)
	}
	if err := declCtx.LoadFile(ctx, tsdecl.PolyfillRealm, e.opts.PolyfillDeclPath); err != nil {
		return nil, apierrors.New(apierrors.ConfigInvalid, "invalid polyfill declaration path", err)
	}

	result := &Result{
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		ReferencePath:    e.opts.ReferenceDeclDir,
		PolyfillPath:     e.opts.PolyfillDeclPath,
		StrictSignatures: e.opts.StrictSignatures,
		Warnings:         declCtx.Warnings(),
	}

	// Every reference declaration must be mapped or skip-listed; a name that
	// is neither is a configuration gap in the interface map.
	mapped := make(map[string]bool, len(e.opts.Mappings))
	for _, mapping := range e.opts.Mappings {
		mapped[mapping.Reference] = true
	}
	for _, name := range declCtx.Names(tsdecl.ReferenceRealm) {
		// Dotted names alias nested declarations of a mapped container.
		if strings.Contains(name, ".") || mapped[name] {
			continue
		}
		if _, ok := e.skipped(name); ok {
			continue
		}
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Reference type not mapped or skip-listed: %s", name))
	}

	for _, mapping := range e.opts.Mappings {
		if entry, skipped := e.skipped(mapping.Reference); skipped {
			// Skip-listed names drop out silently; the reason lives in the
			// skip list itself.
			if e.logger != nil {
				e.logger.Debug("Skipping reference type", logging.Fields{
					"name":   mapping.Reference,
					"reason": entry.Reason,
					"mode":   string(entry.Mode),
				})
			}
			continue
		}

		reference, ok := declCtx.Resolve(tsdecl.ReferenceRealm, mapping.Reference)
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Could not find reference type: %s", mapping.Reference))
			continue
		}

		iface := e.compareInterface(declCtx, mapping, reference, result)
		iface.Stats = ComputeStats(iface.Members)
		result.Interfaces = append(result.Interfaces, iface)
	}

	result.Overall = AggregateStats(result.Interfaces)

	if e.logger != nil {
		e.logger.Info("Comparison completed", logging.Fields{
			"interfaces":      len(result.Interfaces),
			"members":         result.Overall.Total,
			"percentComplete": result.Overall.PercentComplete,
			"warnings":        len(result.Warnings),
		})
	}

	return result, nil
}

// compareInterface produces the member comparisons for one mapping. The
// polyfill side may be null-mapped (intentionally unimplemented, no warning)
// or unresolvable (warning); both record every reference member as missing.
func (e *Engine) compareInterface(declCtx *tsdecl.Context, mapping ifacemap.Mapping, reference *tsdecl.ResolvedType, result *Result) InterfaceComparison {
	iface := InterfaceComparison{
		ReferenceInterfaceName: mapping.Reference,
	}

	if mapping.Polyfill == "" {
		iface.Members = missingMembers(mapping.Reference, reference)
		return iface
	}

	polyfill, ok := declCtx.Resolve(tsdecl.PolyfillRealm, mapping.Polyfill)
	if !ok {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not find polyfill type: %s", mapping.Polyfill))
		iface.Members = missingMembers(mapping.Reference, reference)
		return iface
	}

	iface.PolyfillInterfaceName = &mapping.Polyfill

	polyByName := make(map[string]tsdecl.Member, len(polyfill.Members))
	for _, m := range polyfill.Members {
		if _, exists := polyByName[m.Name]; !exists {
			polyByName[m.Name] = m
		}
	}

	for _, refMember := range reference.Members {
		if strings.HasPrefix(refMember.Name, privateMarker) {
			continue
		}

		comparison := MemberComparison{
			Name:     refMember.Name,
			FullPath: mapping.Reference + "." + refMember.Name,
		}
		refSig := refMember.Type
		comparison.ReferenceSignature = &refSig

		polyMember, found := polyByName[refMember.Name]
		if !found {
			comparison.Status = StatusMissing
			iface.Members = append(iface.Members, comparison)
			continue
		}

		polySig := polyMember.Type
		comparison.PolyfillSignature = &polySig
		comparison.Status, comparison.SignatureMatch, comparison.SignatureDiff =
			classifySignatures(refMember.Type, polyMember.Type, e.opts.StrictSignatures)

		iface.Members = append(iface.Members, comparison)
	}

	return iface
}

// missingMembers records every non-private reference member as missing with
// no polyfill signature.
func missingMembers(referenceName string, reference *tsdecl.ResolvedType) []MemberComparison {
	var members []MemberComparison
	for _, refMember := range reference.Members {
		if strings.HasPrefix(refMember.Name, privateMarker) {
			continue
		}
		refSig := refMember.Type
		members = append(members, MemberComparison{
			Name:               refMember.Name,
			FullPath:           referenceName + "." + refMember.Name,
			Status:             StatusMissing,
			ReferenceSignature: &refSig,
		})
	}
	return members
}
