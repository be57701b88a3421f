// Package tsdecl builds a semantic resolution context over TypeScript
// declaration files.
//
// A Context spans both declaration sources of a comparison run (the reference
// runtime's .d.ts tree and the polyfill's own declaration file) so that type
// rendering is consistent between the two sides. Names resolve to one of two
// shapes: a module-style export set (declare module / declare namespace) or a
// member list (interface, type alias with an object type, ambient class).
package tsdecl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"apicov/internal/logging"
)

// Realm identifies which declaration source a name is resolved against.
type Realm string

const (
	// ReferenceRealm holds the reference runtime's declarations
	ReferenceRealm Realm = "reference"
	// PolyfillRealm holds the polyfill's declared surface
	PolyfillRealm Realm = "polyfill"
)

// DeclKind classifies a named declaration.
type DeclKind string

const (
	// KindModule is a declare module / declare namespace export set
	KindModule DeclKind = "module"
	// KindInterface is an interface declaration
	KindInterface DeclKind = "interface"
	// KindTypeAlias is a type alias declaration
	KindTypeAlias DeclKind = "type-alias"
	// KindClass is an ambient class declaration
	KindClass DeclKind = "class"
)

// Member is one binding of a resolved type: an interface member or a
// module-level export. Type holds the rendered textual signature.
type Member struct {
	Name     string
	Kind     string // "method", "property", "function", "constant"
	Type     string
	Optional bool
}

// ResolvedType is the resolution result for a named type.
type ResolvedType struct {
	Name              string
	IsModuleExportSet bool
	Members           []Member
}

// fragment is one syntactic occurrence of a declaration. TypeScript merges
// repeated interface and module declarations, so a name may own several.
type fragment struct {
	node *sitter.Node
	src  []byte
	file string
}

// Decl is a named declaration registered in a realm.
type Decl struct {
	Name      string
	Kind      DeclKind
	File      string // file of the first fragment
	fragments []fragment
}

type realm struct {
	decls map[string]*Decl
	order []string // registration order, for deterministic walks
}

// Context is a declaration-resolution context spanning both realms of a
// comparison run. Each run builds a fresh context; there is no shared state
// between runs.
type Context struct {
	parser   *sitter.Parser
	logger   *logging.Logger
	realms   map[Realm]*realm
	warnings []string
}

// NewContext creates an empty resolution context.
func NewContext(logger *logging.Logger) *Context {
	parser := sitter.NewParser()
	parser.SetLanguage(typescript.GetLanguage())

	return &Context{
		parser: parser,
		logger: logger,
		realms: map[Realm]*realm{
			ReferenceRealm: {decls: map[string]*Decl{}},
			PolyfillRealm:  {decls: map[string]*Decl{}},
		},
	}
}

// LoadDirectory parses every .d.ts file under dir (sorted, non-recursive into
// node_modules) into the given realm. Unreadable or unparseable files degrade
// to warnings.
func (c *Context) LoadDirectory(ctx context.Context, r Realm, dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("declaration directory path is empty")
	}

	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			name := info.Name()
			if strings.HasPrefix(name, ".") || name == "node_modules" {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".d.ts") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		c.warnf("Could not read declaration directory %s: %v", dir, err)
		return nil
	}
	if len(files) == 0 {
		c.warnf("No declaration files found in %s", dir)
		return nil
	}

	sort.Strings(files)
	for _, f := range files {
		c.loadFile(ctx, r, f)
	}
	return nil
}

// LoadFile parses a single declaration file into the given realm.
func (c *Context) LoadFile(ctx context.Context, r Realm, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("declaration file path is empty")
	}
	c.loadFile(ctx, r, path)
	return nil
}

func (c *Context) loadFile(ctx context.Context, r Realm, path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		c.warnf("Could not read declaration file %s: %v", path, err)
		return
	}

	tree, err := c.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		c.warnf("Could not parse declaration file %s: %v", path, err)
		return
	}

	c.registerProgram(r, tree.RootNode(), source, path)

	if c.logger != nil {
		c.logger.Debug("Loaded declaration file", logging.Fields{
			"realm": string(r),
			"file":  path,
		})
	}
}

// Resolve looks up a name in a realm and flattens its fragments into one
// member list. The second return is false when the name is unknown or its
// shape is unsupported.
func (c *Context) Resolve(r Realm, name string) (*ResolvedType, bool) {
	decl, ok := c.realms[r].decls[name]
	if !ok {
		return nil, false
	}

	resolved := &ResolvedType{
		Name:              name,
		IsModuleExportSet: decl.Kind == KindModule,
	}

	seen := map[string]bool{}
	for _, frag := range decl.fragments {
		for _, m := range c.fragmentMembers(decl.Kind, frag) {
			// First declaration wins across merged fragments.
			if seen[m.Name] {
				continue
			}
			seen[m.Name] = true
			resolved.Members = append(resolved.Members, m)
		}
	}

	if decl.Kind == KindTypeAlias && resolved.Members == nil && !aliasesObjectType(decl) {
		// An alias to a non-object type has no member list to compare.
		return nil, false
	}

	return resolved, true
}

// Decl returns the registered declaration for a name.
func (c *Context) Decl(r Realm, name string) (*Decl, bool) {
	d, ok := c.realms[r].decls[name]
	return d, ok
}

// Names returns all registered names of a realm in registration order.
func (c *Context) Names(r Realm) []string {
	return append([]string(nil), c.realms[r].order...)
}

// Warnings returns the accumulated non-fatal problems of this context.
func (c *Context) Warnings() []string {
	return append([]string(nil), c.warnings...)
}

func (c *Context) warnf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	c.warnings = append(c.warnings, msg)
	if c.logger != nil {
		c.logger.Warn(msg, nil)
	}
}

func (c *Context) register(r Realm, name string, kind DeclKind, frag fragment) {
	rl := c.realms[r]
	if existing, ok := rl.decls[name]; ok {
		// Declaration merging: repeated interface/module declarations add
		// fragments to the same name. Conflicting kinds keep the first.
		if existing.Kind == kind {
			existing.fragments = append(existing.fragments, frag)
		}
		return
	}
	rl.decls[name] = &Decl{
		Name:      name,
		Kind:      kind,
		File:      frag.file,
		fragments: []fragment{frag},
	}
	rl.order = append(rl.order, name)
}

func aliasesObjectType(decl *Decl) bool {
	for _, frag := range decl.fragments {
		if value := frag.node.ChildByFieldName("value"); value != nil && value.Type() == "object_type" {
			return true
		}
	}
	return false
}
