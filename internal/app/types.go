package app

import "ifacecache/internal/types"

// ResolveRequest drives FindModuleFilesInDirectory.
type ResolveRequest struct {
	Context            types.ResolveContext
	LoadMode           types.LoadMode
	ModuleName         string
	InterfacePath      string
	CachedOutputPath   string
	AdjacentModulePath string
	PrebuiltCacheDir   string
}

// ResolveResult reports which tier served the request and, on success,
// the resulting module bytes.
type ResolveResult struct {
	Status       types.ResolveStatus
	ModuleBytes  []byte
	TrackedPaths []string
}

// BuildRequest drives BuildModuleFromInterface, the standalone builder
// that bypasses cache discovery entirely.
type BuildRequest struct {
	Context       types.ResolveContext
	ModuleName    string
	InterfacePath string
	OutputPath    string
}

// BuildResult reports whether the standalone build succeeded.
type BuildResult struct {
	Success bool
}
