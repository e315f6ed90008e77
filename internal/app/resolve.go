package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"ifacecache/internal/types"
)

func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	interfacePath := strings.TrimSpace(req.InterfacePath)
	if interfacePath == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("interface path is required")
	}
	moduleName := strings.TrimSpace(req.ModuleName)
	if moduleName == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("module name is required")
	}
	cachedOutputPath := strings.TrimSpace(req.CachedOutputPath)
	if cachedOutputPath == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("cache output path is required")
	}

	resolver := s.resolver(filepath.Dir(cachedOutputPath), req.PrebuiltCacheDir, req.Context.TrackSystemDeps)
	files, status := resolver.FindModuleFilesInDirectory(ctx, req.Context, req.LoadMode, moduleName, interfacePath, cachedOutputPath, req.AdjacentModulePath)

	tracked := []string{}
	if memTracker, ok := resolver.Tracker.(trackedPathsReporter); ok {
		tracked = memTracker.Paths()
	}

	if status != types.StatusOK && status != types.StatusNotSupported {
		return ResolveResult{Status: status, TrackedPaths: tracked}, nil
	}
	return ResolveResult{Status: status, ModuleBytes: files.ModuleBytes, TrackedPaths: tracked}, nil
}

// trackedPathsReporter is satisfied by adapters.MemoryTracker; kept
// narrow so app doesn't need to import the adapters package's concrete
// type just to read back what it already handed to core.Resolver.
type trackedPathsReporter interface {
	Paths() []string
}
