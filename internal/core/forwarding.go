package core

import (
	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"ifacecache/internal/ports"
	"ifacecache/internal/types"
)

// parseForwardingRecord decodes a textual Forwarding Record. An unknown
// version is rejected outright rather than accepted on a best-effort
// basis, per the on-disk format's contract.
func parseForwardingRecord(buf []byte) (types.ForwardingRecord, error) {
	var record types.ForwardingRecord
	if err := yaml.Unmarshal(buf, &record); err != nil {
		return types.ForwardingRecord{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unparseable forwarding record").
			WithCause(err)
	}
	if record.Version != types.ForwardingRecordVersion {
		return types.ForwardingRecord{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("unsupported forwarding record version")
	}
	return record, nil
}

// forwardingDepsToDependencies maps a Forwarding Record's own dependency
// list onto the shape the Dependency Validator expects: absolute paths,
// mtime-based verification, never SDK-relative.
func forwardingDepsToDependencies(deps []types.ForwardingDependency) []types.Dependency {
	out := make([]types.Dependency, 0, len(deps))
	for _, d := range deps {
		out = append(out, types.Dependency{
			Path:     d.Path,
			Size:     d.Size,
			Verifier: types.ModTime(d.MTime),
		})
	}
	return out
}

// WriteForwardingRecord materializes a Forwarding Record at
// cachedOutputPath pointing at a prebuilt artifact. The dependency list
// is the fully expanded (SDK-resolved, absolute) set with currently
// observed size and mtime — never the values from the prebuilt's
// embedded manifest, which may use ContentHash or SDK-relative paths the
// forwarding format cannot express.
func WriteForwardingRecord(fs ports.Filesystem, sdkPath string, artifact types.DiscoveredArtifact, embeddedDeps []types.Dependency, cachedOutputPath string) error {
	record := types.ForwardingRecord{
		UnderlyingPath: artifact.Path,
		Version:        types.ForwardingRecordVersion,
	}
	for _, dep := range embeddedDeps {
		full := resolveDependencyPath(dep, sdkPath)
		info, err := fs.Stat(full)
		if err != nil {
			continue
		}
		record.Dependencies = append(record.Dependencies, types.ForwardingDependency{
			Path:  full,
			Size:  info.Size,
			MTime: info.MTimeNS,
		})
	}

	out, err := yaml.Marshal(record)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal forwarding record").
			WithCause(err)
	}
	return fs.WriteAtomic(cachedOutputPath, out)
}
