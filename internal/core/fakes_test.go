package core

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"ifacecache/internal/ports"
	"ifacecache/internal/types"
)

// fakeFile is one in-memory filesystem entry.
type fakeFile struct {
	data  []byte
	mtime uint64
}

// fakeFS is an in-memory ports.Filesystem used across core tests.
type fakeFS struct {
	files map[string]fakeFile
}

func newFakeFS() *fakeFS {
	return &fakeFS{files: map[string]fakeFile{}}
}

func (f *fakeFS) put(path string, data []byte, mtime uint64) {
	f.files[path] = fakeFile{data: data, mtime: mtime}
}

func (f *fakeFS) Stat(path string) (ports.FileInfo, error) {
	entry, ok := f.files[path]
	if !ok {
		return ports.FileInfo{}, errors.New("no such file: " + path)
	}
	return ports.FileInfo{Size: uint64(len(entry.data)), MTimeNS: entry.mtime}, nil
}

func (f *fakeFS) Read(path string) ([]byte, error) {
	entry, ok := f.files[path]
	if !ok {
		return nil, errors.New("no such file: " + path)
	}
	return entry.data, nil
}

func (f *fakeFS) WriteAtomic(path string, data []byte) error {
	f.files[path] = fakeFile{data: data, mtime: f.files[path].mtime + 1}
	return nil
}

func (f *fakeFS) Exists(path string) bool {
	_, ok := f.files[path]
	return ok
}

func (f *fakeFS) MkdirAll(string) error { return nil }

// fakeTracker records reported paths without any system-dep gating.
type fakeTracker struct {
	added []string
}

func (t *fakeTracker) Add(path string, _ bool) { t.added = append(t.added, path) }

func (t *fakeTracker) SystemDepCollectionEnabled() bool { return true }

// fakeDiag records every diagnostic kind reported.
type fakeDiag struct {
	kinds []types.DiagKind
}

func (d *fakeDiag) Diag(kind types.DiagKind, _ ...any) { d.kinds = append(d.kinds, kind) }

// fakeBinaryModule is a trivial BinaryModule for tests: serialized
// buffers are text starting with the sentinel "FAKE\n", followed by the
// module name and one pipe-delimited line per dependency.
type fakeBinaryModule struct{}

const fakeModuleMagic = "FAKE\n"

func (fakeBinaryModule) IsSerializedModule(buf []byte) bool {
	return strings.HasPrefix(string(buf), fakeModuleMagic)
}

func (fakeBinaryModule) ValidateAndExtractDeps(buf []byte) (ports.ValidatedModule, error) {
	if !strings.HasPrefix(string(buf), fakeModuleMagic) {
		return ports.ValidatedModule{}, errors.New("not a fake module")
	}
	lines := strings.Split(strings.TrimPrefix(string(buf), fakeModuleMagic), "\n")
	if len(lines) == 0 {
		return ports.ValidatedModule{}, errors.New("truncated fake module")
	}
	var deps []types.Dependency
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		fields := strings.Split(line, "|")
		if len(fields) != 5 {
			return ports.ValidatedModule{}, errors.New("malformed fake dependency line")
		}
		size, _ := strconv.ParseUint(fields[2], 10, 64)
		verifierKind, _ := strconv.Atoi(fields[3])
		verifierVal, _ := strconv.ParseUint(fields[4], 10, 64)
		dep := types.Dependency{
			Path:        fields[0],
			SDKRelative: fields[1] == "1",
			Size:        size,
		}
		if types.VerifierKind(verifierKind) == types.VerifierContentHash {
			dep.Verifier = types.ContentHash(verifierVal)
		} else {
			dep.Verifier = types.ModTime(verifierVal)
		}
		deps = append(deps, dep)
	}
	return ports.ValidatedModule{Deps: deps}, nil
}

func (fakeBinaryModule) Serialize(input ports.SerializeInput) ([]byte, error) {
	var b strings.Builder
	b.WriteString(fakeModuleMagic)
	b.WriteString(input.ModuleName)
	b.WriteString("\n")
	for _, dep := range input.Deps {
		sdkRelative := "0"
		if dep.SDKRelative {
			sdkRelative = "1"
		}
		verifierVal := dep.Verifier.ModTimeNS
		if dep.Verifier.Kind == types.VerifierContentHash {
			verifierVal = dep.Verifier.ContentHash
		}
		b.WriteString(dep.Path)
		b.WriteString("|")
		b.WriteString(sdkRelative)
		b.WriteString("|")
		b.WriteString(strconv.FormatUint(dep.Size, 10))
		b.WriteString("|")
		b.WriteString(strconv.Itoa(int(dep.Verifier.Kind)))
		b.WriteString("|")
		b.WriteString(strconv.FormatUint(verifierVal, 10))
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}

// fakeSubCompiler returns a fixed outcome or error, configured per test.
type fakeSubCompiler struct {
	outcome types.SubBuildOutcome
	err     error
	panic   any
}

func (c fakeSubCompiler) Compile(_ context.Context, _ types.SubBuildConfig) (types.SubBuildOutcome, error) {
	if c.panic != nil {
		panic(c.panic)
	}
	return c.outcome, c.err
}
