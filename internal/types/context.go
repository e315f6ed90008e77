package types

// ResolveContext carries every ambient value the resolver needs,
// instead of reading SDK path / module-cache path / architecture from
// process-global state.
type ResolveContext struct {
	CompilerVersion             string
	SupportedInterfaceMajor     int
	Arch                        string
	SDKPath                     string
	TargetTriple                string
	RuntimeResourcePath         string
	ClangModuleCachePath        string
	PrebuiltModuleCachePath     string
	TrackSystemDeps             bool
	DebuggerSupport             bool
	DetailedPreprocessingRecord bool
	HashDependencies            bool

	// The remaining §4.5 fixed sub-invocation injections (suppress
	// warnings, disable the ObjC-attribute-requires-Foundation check,
	// force optimization=speed) have no live consumer: DefaultSubCompiler
	// stands in for the real front end, which is out of scope. Left
	// unmodeled rather than added as dead fields; see DESIGN.md.

	// InterfaceSuffix and ModuleSuffix default to ".swiftinterface" and
	// ".swiftmodule" when empty, the extensions spec.md names throughout,
	// but stay configurable rather than hard-coded.
	InterfaceSuffix string
	ModuleSuffix    string

	// ForceRebuild skips the writable-cache and prebuilt-cache probes,
	// falling through straight to a build, without disturbing the
	// OnlyInterface/PreferInterface semantics of LoadMode.
	ForceRebuild bool
}

// InterfaceExt returns the configured interface suffix, defaulting to
// ".swiftinterface".
func (c ResolveContext) InterfaceExt() string {
	if c.InterfaceSuffix == "" {
		return ".swiftinterface"
	}
	return c.InterfaceSuffix
}

// ModuleExt returns the configured module suffix, defaulting to
// ".swiftmodule".
func (c ResolveContext) ModuleExt() string {
	if c.ModuleSuffix == "" {
		return ".swiftmodule"
	}
	return c.ModuleSuffix
}

// CacheKeyInputs is the fixed-order input set combined into a Cache Key.
// It deliberately excludes effective language version and interface
// content: content changes invalidate via the entry's dependency list,
// not the key, so one key maps to at most one entry, rebuilt in place.
type CacheKeyInputs struct {
	CompilerVersion string
	InterfacePath   string
	Arch            string
	SDKPath         string
	TrackSystemDeps bool
}
