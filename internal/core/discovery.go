package core

import (
	"strings"

	"ifacecache/internal/ports"
	"ifacecache/internal/types"
)

// DiscoveryOutcome tags why Discover stopped walking the tiers.
type DiscoveryOutcome int

const (
	OutcomeFound DiscoveryOutcome = iota
	OutcomeNotFound
	OutcomeDelegate
)

// DiscoveryRequest bundles everything the Discovery State Machine needs
// to walk the three storage tiers for a single resolve.
type DiscoveryRequest struct {
	Context            types.ResolveContext
	LoadMode           types.LoadMode
	ModuleName         string
	InterfacePath      string
	CachedOutputPath   string
	AdjacentModulePath string
	PrebuiltCacheDir   string
}

// Discover walks the writable cache, the prebuilt cache, and the
// adjacent module, in that order, returning the first tier that yields
// a validated artifact. Every tier failure is swallowed and the next
// tier is tried — Discover never returns an error.
func Discover(req DiscoveryRequest, fs ports.Filesystem, bm ports.BinaryModule, tracker ports.DependencyTracker) (types.DiscoveredArtifact, DiscoveryOutcome) {
	if req.LoadMode == types.OnlySerialized {
		panic("ifacecache: OnlySerialized load mode is illegal for this resolver")
	}
	if req.LoadMode == types.OnlyInterface {
		return types.DiscoveredArtifact{}, OutcomeNotFound
	}

	if !req.Context.ForceRebuild {
		if artifact, ok := probeWritableCache(req, fs, bm, tracker); ok {
			return artifact, OutcomeFound
		}
		if artifact, ok := probePrebuiltCache(req, fs, bm, tracker); ok {
			return artifact, OutcomeFound
		}
	}

	if req.LoadMode == types.PreferSerialized {
		if probeAdjacentModule(req, fs) {
			return types.DiscoveredArtifact{}, OutcomeDelegate
		}
	}

	return types.DiscoveredArtifact{}, OutcomeNotFound
}

// probeWritableCache implements transition 1 of §4.4: open the cached
// output path, disambiguate binary module vs. forwarding record by
// magic-number probe, and validate accordingly.
func probeWritableCache(req DiscoveryRequest, fs ports.Filesystem, bm ports.BinaryModule, tracker ports.DependencyTracker) (types.DiscoveredArtifact, bool) {
	if !fs.Exists(req.CachedOutputPath) {
		return types.DiscoveredArtifact{}, false
	}
	buf, err := fs.Read(req.CachedOutputPath)
	if err != nil {
		return types.DiscoveredArtifact{}, false
	}

	if bm.IsSerializedModule(buf) {
		validated, err := bm.ValidateAndExtractDeps(buf)
		if err != nil {
			return types.DiscoveredArtifact{}, false
		}
		if !ValidateDependencies(fs, tracker, req.Context.SDKPath, validated.Deps) {
			return types.DiscoveredArtifact{}, false
		}
		return types.DiscoveredArtifact{Path: req.CachedOutputPath, Kind: types.ArtifactNormal, Buffer: buf}, true
	}

	record, err := parseForwardingRecord(buf)
	if err != nil {
		return types.DiscoveredArtifact{}, false
	}
	// A forwarding record whose underlying file is missing is treated
	// as absent, not as an error (§4.4 tie-break rule a).
	if !fs.Exists(record.UnderlyingPath) {
		return types.DiscoveredArtifact{}, false
	}
	underlying, err := fs.Read(record.UnderlyingPath)
	if err != nil {
		return types.DiscoveredArtifact{}, false
	}
	// Structural sanity check only — the prebuilt's own manifest is not
	// re-validated here; the forwarding record's own list is authoritative.
	if !bm.IsSerializedModule(underlying) {
		return types.DiscoveredArtifact{}, false
	}
	if !ValidateDependencies(fs, tracker, req.Context.SDKPath, forwardingDepsToDependencies(record.Dependencies)) {
		return types.DiscoveredArtifact{}, false
	}
	return types.DiscoveredArtifact{Path: record.UnderlyingPath, Kind: types.ArtifactForwarded, Buffer: underlying}, true
}

// probePrebuiltCache implements transition 2 of §4.4.
func probePrebuiltCache(req DiscoveryRequest, fs ports.Filesystem, bm ports.BinaryModule, tracker ports.DependencyTracker) (types.DiscoveredArtifact, bool) {
	if req.PrebuiltCacheDir == "" || !underSDKRoot(req.InterfacePath, req.Context.SDKPath) {
		return types.DiscoveredArtifact{}, false
	}
	candidate := prebuiltCandidatePath(req)
	if !fs.Exists(candidate) {
		return types.DiscoveredArtifact{}, false
	}
	buf, err := fs.Read(candidate)
	if err != nil {
		return types.DiscoveredArtifact{}, false
	}
	if !bm.IsSerializedModule(buf) {
		return types.DiscoveredArtifact{}, false
	}
	validated, err := bm.ValidateAndExtractDeps(buf)
	if err != nil {
		return types.DiscoveredArtifact{}, false
	}
	if !ValidateDependencies(fs, tracker, req.Context.SDKPath, validated.Deps) {
		return types.DiscoveredArtifact{}, false
	}
	return types.DiscoveredArtifact{Path: candidate, Kind: types.ArtifactPrebuilt, Buffer: buf}, true
}

// probeAdjacentModule implements transition 3 of §4.4. Per the Delegate
// exclusivity law (§8), the outcome depends only on existence, never on
// validity: a present-but-stale adjacent module still delegates, so the
// other loader can emit its own diagnostic.
func probeAdjacentModule(req DiscoveryRequest, fs ports.Filesystem) bool {
	return req.AdjacentModulePath != "" && fs.Exists(req.AdjacentModulePath)
}

func underSDKRoot(path, sdkPath string) bool {
	if sdkPath == "" {
		return false
	}
	prefix := ensureTrailingSeparator(sdkPath)
	return strings.HasPrefix(path, prefix) || path == sdkPath
}

// prebuiltCandidatePath builds the prebuilt-cache lookup path: when the
// interface lives inside a module-suffix-named bundle directory (e.g.
// ".../Foo.swiftmodule/Foo-x86_64.swiftinterface"), the candidate nests
// under a matching directory of that same name in the prebuilt cache;
// otherwise it sits directly under the prebuilt cache root.
func prebuiltCandidatePath(req DiscoveryRequest) string {
	moduleBasename := swapSuffix(basename(req.InterfacePath), req.Context.InterfaceExt(), req.Context.ModuleExt())
	parent := basename(dirname(req.InterfacePath))
	if strings.HasSuffix(parent, req.Context.ModuleExt()) {
		return joinPath(req.PrebuiltCacheDir, parent, moduleBasename)
	}
	return joinPath(req.PrebuiltCacheDir, moduleBasename)
}
