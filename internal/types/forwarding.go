package types

// ForwardingRecordVersion is the only version this resolver understands.
// An on-disk record with a different version is rejected outright.
const ForwardingRecordVersion = 1

// ForwardingDependency is one entry of a Forwarding Record's dependency
// list. Paths here are always absolute and freshness is always checked
// by size plus mtime — the forwarding format has no notion of
// SDK-relative paths or content hashing.
//
// Field order matches the on-disk key order (mtime, path, size).
type ForwardingDependency struct {
	MTime uint64 `yaml:"mtime"`
	Path  string `yaml:"path"`
	Size  uint64 `yaml:"size"`
}

// ForwardingRecord points at a prebuilt binary module and carries its
// own, independently validated dependency list so the writable cache
// entry is self-contained.
//
// Field order matches the on-disk key order (path, dependencies, version).
type ForwardingRecord struct {
	UnderlyingPath string                 `yaml:"path"`
	Dependencies   []ForwardingDependency `yaml:"dependencies"`
	Version        int                    `yaml:"version"`
}
