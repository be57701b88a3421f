package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeDecl(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	writeDecl(t, dir, "bun.d.ts", `
declare module "bun" {
  export const version: string;
  export function file(path: string): string;
  export interface BunFile {
    size: number;
  }
}
`)

	cat, err := Extract(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if cat.Version == "" {
		t.Error("catalog should carry a version string")
	}

	byPath := map[string]Entry{}
	var index func(entries []Entry)
	index = func(entries []Entry) {
		for _, e := range entries {
			byPath[e.FullPath] = e
			index(e.Children)
		}
	}
	index(cat.Entries)

	mod, ok := byPath["bun"]
	if !ok {
		t.Fatal("module bun should be cataloged")
	}
	if mod.Kind != KindNamespace {
		t.Errorf("bun kind = %q, want namespace", mod.Kind)
	}
	if len(mod.Children) != 2 {
		t.Fatalf("bun should have 2 children, got %d", len(mod.Children))
	}

	fileFn, ok := byPath["bun.file"]
	if !ok {
		t.Fatal("bun.file should be cataloged")
	}
	if fileFn.Kind != KindFunction {
		t.Errorf("bun.file kind = %q, want function", fileFn.Kind)
	}
	if fileFn.Signature != "(path: string) => string" {
		t.Errorf("bun.file signature = %q", fileFn.Signature)
	}
	if fileFn.Parent != "bun" {
		t.Errorf("bun.file parent = %q, want bun", fileFn.Parent)
	}

	iface, ok := byPath["BunFile"]
	if !ok {
		t.Fatal("BunFile should be cataloged under its bare name")
	}
	if iface.Kind != KindInterface {
		t.Errorf("BunFile kind = %q, want interface", iface.Kind)
	}
	if iface.Category != "file" {
		t.Errorf("BunFile category = %q, want file", iface.Category)
	}

	if _, ok := byPath["bun.BunFile"]; ok {
		t.Error("dotted aliases should not produce duplicate catalog entries")
	}
}

func TestFullPaths(t *testing.T) {
	dir := t.TempDir()
	writeDecl(t, dir, "api.d.ts", `
declare class Hash {
  update(data: string): Hash;
}
type Alias = "a" | "b";
`)

	cat, err := Extract(context.Background(), dir, nil)
	if err != nil {
		t.Fatal(err)
	}

	paths := map[string]bool{}
	for _, p := range cat.FullPaths() {
		paths[p] = true
	}

	if !paths["Hash.update"] {
		t.Errorf("FullPaths should include Hash.update, got %v", paths)
	}
	// Memberless entries surface themselves.
	if !paths["Alias"] {
		t.Errorf("FullPaths should include the memberless Alias, got %v", paths)
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"BunFile", "file"},
		{"FileSink", "file"},
		{"Subprocess", "process"},
		{"ShellPromise", "shell"},
		{"CryptoHasher", "crypto"},
		{"Hash", "crypto"},
		{"TCPSocketListener", "network"},
		{"udp", "network"},
		{"Transpiler", "general"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.name); got != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}
