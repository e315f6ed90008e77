package core

import (
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	"ifacecache/internal/ports"
	"ifacecache/internal/types"
)

// ValidateDependencies reports whether every dependency in deps still
// matches the file on disk, resolving SDK-relative paths against
// sdkPath. Every dependency is reported to tracker exactly once,
// regardless of the outcome — the list is never short-circuited on an
// early mismatch, because downstream build systems must see every
// dependency even on a stale batch.
func ValidateDependencies(fs ports.Filesystem, tracker ports.DependencyTracker, sdkPath string, deps []types.Dependency) bool {
	upToDate := true
	for _, dep := range deps {
		full := resolveDependencyPath(dep, sdkPath)
		if tracker != nil {
			tracker.Add(full, dep.SDKRelative)
		}
		if !validateOne(fs, full, dep) {
			upToDate = false
		}
	}
	return upToDate
}

// resolveDependencyPath expands a Dependency's path to an absolute
// filesystem path, prefixing the SDK root when the dependency is
// SDK-relative.
func resolveDependencyPath(dep types.Dependency, sdkPath string) string {
	if dep.SDKRelative {
		return filepath.Join(sdkPath, dep.Path)
	}
	return dep.Path
}

// validateOne performs the lazy, memoized-by-construction check: the
// file is only read when the verifier actually needs its contents.
func validateOne(fs ports.Filesystem, full string, dep types.Dependency) bool {
	info, err := fs.Stat(full)
	if err != nil {
		return false
	}
	if info.Size != dep.Size {
		return false
	}
	switch dep.Verifier.Kind {
	case types.VerifierModTime:
		return info.MTimeNS == dep.Verifier.ModTimeNS
	case types.VerifierContentHash:
		data, err := fs.Read(full)
		if err != nil {
			return false
		}
		return xxhash.Sum64(data) == dep.Verifier.ContentHash
	default:
		return false
	}
}
