package core

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"ifacecache/internal/ports"
	"ifacecache/internal/types"
)

// Resolver wires the collaborator ports and the Sub-Build Driver into
// the top-level resolve/build operations the app layer consumes.
type Resolver struct {
	Filesystem       ports.Filesystem
	BinaryModule     ports.BinaryModule
	Diagnostics      ports.Diagnostics
	Tracker          ports.DependencyTracker
	Driver           SubBuildDriver
	WritableCacheDir string
	PrebuiltCacheDir string
}

// FindModuleFilesInDirectory resolves a module by name, trying the cache
// tiers before falling back to a sub-build, and returns the module bytes
// the caller loads into its own module system. Only ModuleBytes is
// filled in; DocBytes is always left empty.
func (r Resolver) FindModuleFilesInDirectory(ctx context.Context, resolveCtx types.ResolveContext, loadMode types.LoadMode, moduleName, interfacePath, cachedOutputPath, adjacentModulePath string) (types.ModuleFiles, types.ResolveStatus) {
	assert.NotEmpty(ctx, moduleName, "module name must be set")
	assert.NotEmpty(ctx, interfacePath, "interface path must be set")
	assert.NotEmpty(ctx, cachedOutputPath, "cached output path must be set")

	if !r.Filesystem.Exists(interfacePath) {
		return types.ModuleFiles{}, types.StatusNoSuchFile
	}

	req := DiscoveryRequest{
		Context:            resolveCtx,
		LoadMode:           loadMode,
		ModuleName:         moduleName,
		InterfacePath:      interfacePath,
		CachedOutputPath:   cachedOutputPath,
		AdjacentModulePath: adjacentModulePath,
		PrebuiltCacheDir:   r.PrebuiltCacheDir,
	}
	artifact, outcome := Discover(req, r.Filesystem, r.BinaryModule, r.Tracker)
	switch outcome {
	case OutcomeFound:
		if artifact.Kind == types.ArtifactPrebuilt {
			if err := r.tryWriteForwardingRecord(artifact, cachedOutputPath, resolveCtx.SDKPath); err != nil {
				// Forwarding writer failures are softened per §4.6/§7: the
				// prebuilt hit itself is still good, only the shortcut is lost.
				return types.ModuleFiles{ModuleBytes: artifact.Buffer}, types.StatusNotSupported
			}
		}
		return types.ModuleFiles{ModuleBytes: artifact.Buffer}, types.StatusOK
	case OutcomeDelegate:
		return types.ModuleFiles{}, types.StatusNotSupported
	}

	buf, err := r.Filesystem.Read(interfacePath)
	if err != nil {
		return types.ModuleFiles{}, types.StatusNoSuchFile
	}
	header, err := ParseInterfaceHeader(buf, r.Diagnostics)
	if err != nil {
		return types.ModuleFiles{}, types.StatusInvalidArgument
	}

	cfg := types.SubBuildConfig{
		Context:       resolveCtx,
		ModuleName:    moduleName,
		InterfacePath: interfacePath,
		OutputPath:    cachedOutputPath,
		Header:        header,
	}
	built, err := r.Driver.Run(ctx, cfg)
	if err != nil {
		return types.ModuleFiles{}, types.StatusInvalidArgument
	}

	// A fresh sub-build writes a binary module straight to
	// cachedOutputPath — there is nothing prebuilt to forward to here.
	// The Forwarding Writer's precondition (§4.6) is a Prebuilt
	// discovery hit, handled above in the OutcomeFound branch.
	return types.ModuleFiles{ModuleBytes: built}, types.StatusOK
}

// tryWriteForwardingRecord points cachedOutputPath at a Prebuilt
// discovery hit instead of duplicating its bytes into the writable
// cache, per §4.6.
func (r Resolver) tryWriteForwardingRecord(artifact types.DiscoveredArtifact, cachedOutputPath, sdkPath string) error {
	validated, err := r.BinaryModule.ValidateAndExtractDeps(artifact.Buffer)
	if err != nil {
		return err
	}
	return WriteForwardingRecord(r.Filesystem, sdkPath, artifact, validated.Deps, cachedOutputPath)
}

// BuildModuleFromInterface is the standalone builder, bypassing
// discovery entirely: it always performs a sub-build and writes the
// result to outputPath, regardless of any existing cache entry.
func (r Resolver) BuildModuleFromInterface(ctx context.Context, resolveCtx types.ResolveContext, moduleName, interfacePath, outputPath string) (bool, error) {
	assert.NotEmpty(ctx, moduleName, "module name must be set")
	assert.NotEmpty(ctx, interfacePath, "interface path must be set")
	assert.NotEmpty(ctx, outputPath, "output path must be set")

	if !r.Filesystem.Exists(interfacePath) {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no such interface file: " + interfacePath)
	}
	buf, err := r.Filesystem.Read(interfacePath)
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("unreadable interface file: " + interfacePath).
			WithCause(err)
	}
	header, err := ParseInterfaceHeader(buf, r.Diagnostics)
	if err != nil {
		return false, err
	}

	cfg := types.SubBuildConfig{
		Context:       resolveCtx,
		ModuleName:    moduleName,
		InterfacePath: interfacePath,
		OutputPath:    outputPath,
		Header:        header,
	}
	if _, err := r.Driver.Run(ctx, cfg); err != nil {
		return false, err
	}
	return true, nil
}
