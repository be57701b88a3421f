package tsdecl

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// registerProgram walks the top-level statements of a parsed declaration file
// and registers every named container declaration (module, namespace,
// interface, type alias, ambient class).
func (c *Context) registerProgram(r Realm, root *sitter.Node, src []byte, file string) {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		c.registerStatement(r, root.NamedChild(i), src, file, "")
	}
}

// registerStatement registers one statement's declaration, if it is a
// container. prefix carries the dotted path of enclosing modules.
func (c *Context) registerStatement(r Realm, stmt *sitter.Node, src []byte, file string, prefix string) {
	decl := unwrap(stmt)
	if decl == nil {
		return
	}

	frag := fragment{node: decl, src: src, file: file}

	switch decl.Type() {
	case "module", "internal_module":
		name := moduleName(decl, src)
		if name == "" {
			return
		}
		c.registerNested(r, name, KindModule, frag, prefix)

		body := decl.ChildByFieldName("body")
		if body == nil {
			return
		}
		childPrefix := name + "."
		if prefix != "" {
			childPrefix = prefix + name + "."
		}
		for i := 0; i < int(body.NamedChildCount()); i++ {
			c.registerStatement(r, body.NamedChild(i), src, file, childPrefix)
		}

	case "interface_declaration":
		c.registerNamed(r, decl, src, KindInterface, frag, prefix)

	case "type_alias_declaration":
		c.registerNamed(r, decl, src, KindTypeAlias, frag, prefix)

	case "class_declaration", "abstract_class_declaration":
		c.registerNamed(r, decl, src, KindClass, frag, prefix)
	}
}

func (c *Context) registerNamed(r Realm, decl *sitter.Node, src []byte, kind DeclKind, frag fragment, prefix string) {
	nameNode := decl.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	c.registerNested(r, text(nameNode, src), kind, frag, prefix)
}

// registerNested registers a declaration under its bare name and, when nested
// inside a module, under its dotted path as well, so both "BunFile" and
// "bun.BunFile" resolve.
func (c *Context) registerNested(r Realm, name string, kind DeclKind, frag fragment, prefix string) {
	c.register(r, name, kind, frag)
	if prefix != "" {
		c.register(r, prefix+name, kind, frag)
	}
}

// fragmentMembers extracts the member list of one declaration fragment.
func (c *Context) fragmentMembers(kind DeclKind, frag fragment) []Member {
	switch kind {
	case KindModule:
		return c.moduleMembers(frag)
	case KindInterface:
		return c.bodyMembers(frag.node.ChildByFieldName("body"), frag.src)
	case KindTypeAlias:
		value := frag.node.ChildByFieldName("value")
		if value != nil && value.Type() == "object_type" {
			return c.bodyMembers(value, frag.src)
		}
		return nil
	case KindClass:
		return c.bodyMembers(frag.node.ChildByFieldName("body"), frag.src)
	default:
		return nil
	}
}

// moduleMembers collects the exported top-level bindings of a module body:
// functions and constants. Nested interfaces and classes are registered as
// named declarations instead and are resolved separately.
func (c *Context) moduleMembers(frag fragment) []Member {
	body := frag.node.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	var members []Member
	for i := 0; i < int(body.NamedChildCount()); i++ {
		decl := unwrap(body.NamedChild(i))
		if decl == nil {
			continue
		}

		switch decl.Type() {
		case "function_signature", "function_declaration":
			nameNode := decl.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			members = append(members, Member{
				Name: text(nameNode, frag.src),
				Kind: "function",
				Type: renderCallable(decl, frag.src),
			})

		case "lexical_declaration", "variable_declaration":
			for j := 0; j < int(decl.NamedChildCount()); j++ {
				declarator := decl.NamedChild(j)
				if declarator.Type() != "variable_declarator" {
					continue
				}
				nameNode := declarator.ChildByFieldName("name")
				if nameNode == nil {
					continue
				}
				members = append(members, Member{
					Name: text(nameNode, frag.src),
					Kind: "constant",
					Type: renderAnnotation(declarator.ChildByFieldName("type"), frag.src),
				})
			}
		}
	}
	return members
}

// bodyMembers collects named members of an interface body, object type, or
// class body. Call, construct, and index signatures carry no member name and
// are not part of name-based pairing.
func (c *Context) bodyMembers(body *sitter.Node, src []byte) []Member {
	if body == nil {
		return nil
	}

	var members []Member
	for i := 0; i < int(body.NamedChildCount()); i++ {
		node := body.NamedChild(i)

		switch node.Type() {
		case "property_signature", "public_field_definition":
			nameNode := node.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			members = append(members, Member{
				Name:     propertyName(nameNode, src),
				Kind:     "property",
				Type:     renderAnnotation(node.ChildByFieldName("type"), src),
				Optional: hasOptionalMarker(node),
			})

		case "method_signature", "method_definition":
			nameNode := node.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			members = append(members, Member{
				Name:     propertyName(nameNode, src),
				Kind:     "method",
				Type:     renderCallable(node, src),
				Optional: hasOptionalMarker(node),
			})
		}
	}
	return members
}

// unwrap strips ambient and export wrappers down to the declaration itself.
func unwrap(stmt *sitter.Node) *sitter.Node {
	for stmt != nil {
		switch stmt.Type() {
		case "ambient_declaration":
			var inner *sitter.Node
			for i := 0; i < int(stmt.NamedChildCount()); i++ {
				child := stmt.NamedChild(i)
				if child.Type() != "comment" {
					inner = child
					break
				}
			}
			stmt = inner
		case "export_statement":
			stmt = stmt.ChildByFieldName("declaration")
		default:
			return stmt
		}
	}
	return nil
}

// moduleName extracts a module's name, stripping quotes from string names
// (declare module "bun").
func moduleName(decl *sitter.Node, src []byte) string {
	nameNode := decl.ChildByFieldName("name")
	if nameNode == nil {
		return ""
	}
	name := text(nameNode, src)
	return strings.Trim(name, `"'`)
}

// propertyName renders a member name, stripping quotes from string-literal
// property names.
func propertyName(nameNode *sitter.Node, src []byte) string {
	return strings.Trim(text(nameNode, src), `"'`)
}

// hasOptionalMarker reports whether a member carries a '?' token.
func hasOptionalMarker(node *sitter.Node) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child != nil && child.Type() == "?" {
			return true
		}
	}
	return false
}

func text(node *sitter.Node, src []byte) string {
	return string(src[node.StartByte():node.EndByte()])
}
