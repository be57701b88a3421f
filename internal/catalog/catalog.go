// Package catalog extracts the reference declaration tree into a named API
// catalog: the authoritative list of what should exist. The comparison engine
// re-resolves names itself; the catalog's job is to make sure every declared
// API gets a final coverage record even when the engine never touched it.
package catalog

import (
	"context"
	"strings"

	"apicov/internal/logging"
	"apicov/internal/tsdecl"
	"apicov/internal/version"
)

// Kind classifies a catalog entry.
type Kind string

const (
	KindFunction  Kind = "function"
	KindConstant  Kind = "constant"
	KindClass     Kind = "class"
	KindNamespace Kind = "namespace"
	KindInterface Kind = "interface"
	KindTypeAlias Kind = "type-alias"
)

// Entry is one reference API declaration. Entries are created once per
// extraction run and immutable thereafter.
type Entry struct {
	Name          string  `json:"name"`
	FullPath      string  `json:"fullPath"`
	Kind          Kind    `json:"kind"`
	Category      string  `json:"category"`
	DeclaringFile string  `json:"declaringFile"`
	Signature     string  `json:"signature,omitempty"`
	Children      []Entry `json:"children,omitempty"`
	// Parent is a back-reference path, not an ownership edge.
	Parent string `json:"parent,omitempty"`
}

// Catalog is the extraction result.
type Catalog struct {
	Version  string   `json:"version"`
	Entries  []Entry  `json:"entries"`
	Warnings []string `json:"warnings"`
}

// Extract walks the reference declaration directory into a catalog.
func Extract(ctx context.Context, referenceDir string, logger *logging.Logger) (*Catalog, error) {
	declCtx := tsdecl.NewContext(logger)
	if err := declCtx.LoadDirectory(ctx, tsdecl.ReferenceRealm, referenceDir); err != nil {
		return nil, err
	}

	cat := &Catalog{Version: version.Version}

	for _, name := range declCtx.Names(tsdecl.ReferenceRealm) {
		// Dotted names are aliases of nested declarations already reachable
		// through their bare name.
		if strings.Contains(name, ".") {
			continue
		}

		decl, ok := declCtx.Decl(tsdecl.ReferenceRealm, name)
		if !ok {
			continue
		}

		entry := Entry{
			Name:          name,
			FullPath:      name,
			Kind:          declKind(decl.Kind),
			Category:      Categorize(name),
			DeclaringFile: decl.File,
		}

		if resolved, ok := declCtx.Resolve(tsdecl.ReferenceRealm, name); ok {
			for _, m := range resolved.Members {
				entry.Children = append(entry.Children, Entry{
					Name:          m.Name,
					FullPath:      name + "." + m.Name,
					Kind:          memberKind(m.Kind),
					Category:      entry.Category,
					DeclaringFile: decl.File,
					Signature:     m.Type,
					Parent:        name,
				})
			}
		}

		cat.Entries = append(cat.Entries, entry)
	}

	cat.Warnings = declCtx.Warnings()
	return cat, nil
}

// FullPaths returns the full path of every leaf entry (members of containers,
// or the container itself when it has no members).
func (c *Catalog) FullPaths() []string {
	var paths []string
	for _, entry := range c.Entries {
		if len(entry.Children) == 0 {
			paths = append(paths, entry.FullPath)
			continue
		}
		for _, child := range entry.Children {
			paths = append(paths, child.FullPath)
		}
	}
	return paths
}

// Categorize assigns a functional grouping tag based on the API name.
func Categorize(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "file") || strings.Contains(lower, "blob") || strings.Contains(lower, "sink"):
		return "file"
	case strings.Contains(lower, "subprocess") || strings.Contains(lower, "spawn"):
		return "process"
	case strings.Contains(lower, "shell"):
		return "shell"
	case strings.Contains(lower, "hash") || strings.Contains(lower, "crypto") || strings.Contains(lower, "password"):
		return "crypto"
	case strings.Contains(lower, "socket") || strings.Contains(lower, "server") || strings.Contains(lower, "dns") || lower == "udp":
		return "network"
	default:
		return "general"
	}
}

func declKind(kind tsdecl.DeclKind) Kind {
	switch kind {
	case tsdecl.KindModule:
		return KindNamespace
	case tsdecl.KindInterface:
		return KindInterface
	case tsdecl.KindTypeAlias:
		return KindTypeAlias
	case tsdecl.KindClass:
		return KindClass
	default:
		return KindInterface
	}
}

func memberKind(kind string) Kind {
	switch kind {
	case "function", "method":
		return KindFunction
	default:
		return KindConstant
	}
}
