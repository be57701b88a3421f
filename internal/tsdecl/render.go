package tsdecl

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// renderCallable renders a function or method declaration as an arrow-style
// textual signature: "(path: string) => string". This is the canonical
// rendering both realms share, so identical declarations compare equal
// byte-for-byte.
func renderCallable(node *sitter.Node, src []byte) string {
	params := "()"
	if p := node.ChildByFieldName("parameters"); p != nil {
		params = collapse(text(p, src))
	}

	ret := "void"
	if r := node.ChildByFieldName("return_type"); r != nil {
		ret = renderAnnotation(r, src)
	}

	return params + " => " + ret
}

// renderAnnotation renders the type inside a type annotation node (": T").
// A missing annotation renders as "any", matching how the compiler treats it.
func renderAnnotation(annotation *sitter.Node, src []byte) string {
	if annotation == nil {
		return "any"
	}

	// The annotation's last named child is the type itself; earlier children
	// are the ':' and assertion tokens.
	count := int(annotation.NamedChildCount())
	if count == 0 {
		rendered := strings.TrimPrefix(collapse(text(annotation, src)), ": ")
		return strings.TrimPrefix(rendered, ":")
	}
	return collapse(text(annotation.NamedChild(count-1), src))
}

// collapse normalizes whitespace runs (including newlines in multi-line
// types) to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
