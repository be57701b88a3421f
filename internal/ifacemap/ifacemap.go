// Package ifacemap holds the static pairing of reference type names to
// polyfill type names. The table is compiled in, not runtime-loaded: changing
// a pairing is a code change reviewed alongside the polyfill it describes.
package ifacemap

// Mapping pairs a reference type or module name with its polyfill
// counterpart. An empty Polyfill means the reference type is intentionally
// unimplemented: its members report missing without a warning.
type Mapping struct {
	Reference string
	Polyfill  string
}

// HandlingMode describes what to do with a skip-listed name.
type HandlingMode string

const (
	// ModeSkip drops the name from comparison entirely
	ModeSkip HandlingMode = "skip"
	// ModeManual means coverage for this name is tracked by hand in annotations
	ModeManual HandlingMode = "manual"
	// ModeTransform means the polyfill reshapes this API beyond name pairing
	ModeTransform HandlingMode = "transform"
)

// SkipEntry is a reference name excluded from comparison, with the reason.
type SkipEntry struct {
	Reference string
	Reason    string
	Mode      HandlingMode
}

// mappings pairs every compared reference name with its polyfill name, in
// comparison order. Order is part of the engine's determinism contract.
var mappings = []Mapping{
	{Reference: "bun", Polyfill: "BunPolyfillModule"},
	{Reference: "Bun", Polyfill: "BunPolyfillModule"},
	{Reference: "BunFile", Polyfill: "PolyfillFile"},
	{Reference: "FileBlob", Polyfill: "PolyfillFile"},
	{Reference: "FileSink", Polyfill: "PolyfillFileSink"},
	{Reference: "Subprocess", Polyfill: "PolyfillSubprocess"},
	{Reference: "SyncSubprocess", Polyfill: "PolyfillSyncSubprocess"},
	{Reference: "SpawnOptions", Polyfill: "PolyfillSpawnOptions"},
	{Reference: "CryptoHasher", Polyfill: "PolyfillCryptoHasher"},
	{Reference: "Hash", Polyfill: "PolyfillHash"},
	{Reference: "ShellExpression", Polyfill: "PolyfillShellExpression"},
	{Reference: "ShellOutput", Polyfill: "PolyfillShellOutput"},
	{Reference: "ShellPromise", Polyfill: "PolyfillShellPromise"},
	{Reference: "Glob", Polyfill: "PolyfillGlob"},
	{Reference: "Transpiler", Polyfill: ""},         // no transpiler outside the native runtime
	{Reference: "Socket", Polyfill: ""},             // TCP socket API intentionally unimplemented
	{Reference: "TCPSocketListener", Polyfill: ""},  // depends on Socket
	{Reference: "udp", Polyfill: ""},                // UDP namespace intentionally unimplemented
	{Reference: "DNSLookup", Polyfill: "PolyfillDNSLookup"},
	{Reference: "Server", Polyfill: ""},             // Bun.serve requires the native HTTP stack
	{Reference: "HeapSnapshot", Polyfill: ""},       // JSC-specific introspection
}

// skipList names reference types excluded from comparison.
var skipList = []SkipEntry{
	{Reference: "Env", Reason: "process.env passthrough, no declared members to pair", Mode: ModeSkip},
	{Reference: "BunRegisterPlugin", Reason: "plugin loader hooks are internal-only", Mode: ModeSkip},
	{Reference: "PluginBuilder", Reason: "plugin loader hooks are internal-only", Mode: ModeSkip},
	{Reference: "ArrayBufferView", Reason: "lib.dom type re-exported for convenience", Mode: ModeSkip},
	{Reference: "MMapOptions", Reason: "mmap flags map to native constants, tracked via annotations", Mode: ModeManual},
	{Reference: "SavepointSQL", Reason: "sqlite surface is reshaped into a single driver type", Mode: ModeTransform},
	{Reference: "TranspilerOptions", Reason: "dropped together with Transpiler", Mode: ModeSkip},
}

// Mappings returns the comparison pairs in declared order.
func Mappings() []Mapping {
	return append([]Mapping(nil), mappings...)
}

// SkipList returns the excluded reference names.
func SkipList() []SkipEntry {
	return append([]SkipEntry(nil), skipList...)
}

// Skipped reports whether a reference name is skip-listed, and why.
func Skipped(reference string) (SkipEntry, bool) {
	for _, e := range skipList {
		if e.Reference == reference {
			return e, true
		}
	}
	return SkipEntry{}, false
}

// Lookup returns the mapping for a reference name.
func Lookup(reference string) (Mapping, bool) {
	for _, m := range mappings {
		if m.Reference == reference {
			return m, true
		}
	}
	return Mapping{}, false
}
