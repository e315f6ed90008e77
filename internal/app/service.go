package app

import (
	"ifacecache/internal/adapters"
	"ifacecache/internal/core"
	"ifacecache/internal/ports"
)

// Service wires the default adapters behind the core Resolver, exposing
// the two resolve/build operations the CLI drives.
type Service struct {
	Filesystem   ports.Filesystem
	BinaryModule ports.BinaryModule
	Diagnostics  ports.Diagnostics
	Compiler     ports.SubCompiler
}

func NewService() Service {
	fs := adapters.OSFilesystem{}
	return Service{
		Filesystem:   fs,
		BinaryModule: adapters.MsgpackBinaryModule{},
		Diagnostics:  adapters.ZerologDiagnostics{},
		Compiler:     adapters.DefaultSubCompiler{Filesystem: fs},
	}
}

// resolver assembles a core.Resolver for one request, given the cache
// directories and tracking preference that request carries.
func (s Service) resolver(writableCacheDir, prebuiltCacheDir string, trackSystemDeps bool) core.Resolver {
	tracker := adapters.NewMemoryTracker(trackSystemDeps)
	driver := core.SubBuildDriver{
		Compiler:         s.Compiler,
		Filesystem:       s.Filesystem,
		BinaryModule:     s.BinaryModule,
		Diagnostics:      s.Diagnostics,
		WritableCacheDir: writableCacheDir,
		PrebuiltCacheDir: prebuiltCacheDir,
	}
	return core.Resolver{
		Filesystem:       s.Filesystem,
		BinaryModule:     s.BinaryModule,
		Diagnostics:      s.Diagnostics,
		Tracker:          tracker,
		Driver:           driver,
		WritableCacheDir: writableCacheDir,
		PrebuiltCacheDir: prebuiltCacheDir,
	}
}
