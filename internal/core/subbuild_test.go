package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"ifacecache/internal/ports"
	"ifacecache/internal/types"
)

func TestSubBuildDriverRunWritesEntry(t *testing.T) {
	fs := newFakeFS()
	bm := fakeBinaryModule{}
	fs.put("/deps/Bar.h", []byte("x"), 10)

	compiler := fakeSubCompiler{outcome: types.SubBuildOutcome{
		Success:          true,
		Payload:          []byte("compiled"),
		RawDeps:          []string{"/deps/Bar.h"},
		ParsedModuleName: "Foo",
	}}
	driver := SubBuildDriver{Compiler: compiler, Filesystem: fs, BinaryModule: bm}
	cfg := types.SubBuildConfig{
		Context:       types.ResolveContext{SupportedInterfaceMajor: 1},
		ModuleName:    "Foo",
		InterfacePath: "/sdk/Foo.swiftinterface",
		OutputPath:    "/cache/Foo.swiftmodule",
		Header:        types.InterfaceHeader{FormatVersion: "1.0"},
	}
	fs.put(cfg.InterfacePath, []byte("// interface"), 1)

	out, err := driver.Run(context.Background(), cfg)
	require.NoError(t, err)
	require.True(t, bm.IsSerializedModule(out))

	written, err := fs.Read(cfg.OutputPath)
	require.NoError(t, err)
	require.Equal(t, out, written)
}

func TestSubBuildDriverVersionGateRejectsMismatch(t *testing.T) {
	driver := SubBuildDriver{Compiler: fakeSubCompiler{}, Filesystem: newFakeFS(), BinaryModule: fakeBinaryModule{}}
	cfg := types.SubBuildConfig{
		Context: types.ResolveContext{SupportedInterfaceMajor: 2},
		Header:  types.InterfaceHeader{FormatVersion: "1.5"},
	}
	_, err := driver.Run(context.Background(), cfg)
	require.Error(t, err)
}

func TestSubBuildDriverCrashIsolation(t *testing.T) {
	driver := SubBuildDriver{
		Compiler:     fakeSubCompiler{panic: "child exploded"},
		Filesystem:   newFakeFS(),
		BinaryModule: fakeBinaryModule{},
	}
	cfg := types.SubBuildConfig{
		Context: types.ResolveContext{SupportedInterfaceMajor: 1},
		Header:  types.InterfaceHeader{FormatVersion: "1.0"},
	}
	_, err := driver.Run(context.Background(), cfg)
	require.Error(t, err)
}

func TestSubBuildDriverModuleNameMismatchFatalByDefault(t *testing.T) {
	compiler := fakeSubCompiler{outcome: types.SubBuildOutcome{Success: true, ParsedModuleName: "Other"}}
	driver := SubBuildDriver{Compiler: compiler, Filesystem: newFakeFS(), BinaryModule: fakeBinaryModule{}, Diagnostics: &fakeDiag{}}
	cfg := types.SubBuildConfig{
		Context:    types.ResolveContext{SupportedInterfaceMajor: 1},
		ModuleName: "Foo",
		Header:     types.InterfaceHeader{FormatVersion: "1.0"},
	}
	_, err := driver.Run(context.Background(), cfg)
	require.Error(t, err)
}

func TestSubBuildDriverModuleNameMismatchSoftenedWithDebuggerSupport(t *testing.T) {
	fs := newFakeFS()
	compiler := fakeSubCompiler{outcome: types.SubBuildOutcome{Success: true, ParsedModuleName: "Other"}}
	diag := &fakeDiag{}
	driver := SubBuildDriver{Compiler: compiler, Filesystem: fs, BinaryModule: fakeBinaryModule{}, Diagnostics: diag}
	cfg := types.SubBuildConfig{
		Context:       types.ResolveContext{SupportedInterfaceMajor: 1, DebuggerSupport: true},
		ModuleName:    "Foo",
		InterfacePath: "/sdk/Foo.swiftinterface",
		OutputPath:    "/cache/Foo.swiftmodule",
		Header:        types.InterfaceHeader{FormatVersion: "1.0"},
	}
	fs.put(cfg.InterfacePath, []byte("// interface"), 1)
	_, err := driver.Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Contains(t, diag.kinds, types.DiagSerializationNameMismatch)
}

func TestFlattenDependenciesDedupesAndFlattensNested(t *testing.T) {
	fs := newFakeFS()
	bm := fakeBinaryModule{}
	fs.put("/deps/A.h", []byte("a"), 1)

	nestedBuf, err := bm.Serialize(ports.SerializeInput{
		ModuleName: "Nested",
		Deps:       []types.Dependency{{Path: "/deps/Inner.h", Size: 2, Verifier: types.ModTime(5)}},
	})
	require.NoError(t, err)
	fs.put("/cache/Nested.swiftmodule", nestedBuf, 1)

	ctx := types.ResolveContext{}
	raw := []string{"/deps/A.h", "/cache/Nested.swiftmodule", "/deps/A.h"}
	deps, err := flattenDependencies(raw, ctx, "/cache", "", false, fs, bm, nil)
	require.NoError(t, err)

	var paths []string
	for _, d := range deps {
		paths = append(paths, d.Path)
	}
	require.Equal(t, []string{"/deps/A.h", "/deps/Inner.h"}, paths)
}

func TestFlattenDependenciesMissingFileIsFatal(t *testing.T) {
	fs := newFakeFS()
	diag := &fakeDiag{}
	_, err := flattenDependencies([]string{"/deps/Missing.h"}, types.ResolveContext{}, "", "", false, fs, fakeBinaryModule{}, diag)
	require.Error(t, err)
	require.Contains(t, diag.kinds, types.DiagMissingDependency)
}

func TestFlattenDependenciesHashMode(t *testing.T) {
	fs := newFakeFS()
	fs.put("/deps/A.h", []byte("hello"), 1)
	deps, err := flattenDependencies([]string{"/deps/A.h"}, types.ResolveContext{}, "", "", true, fs, fakeBinaryModule{}, nil)
	require.NoError(t, err)
	require.Len(t, deps, 1)
	require.Equal(t, types.VerifierContentHash, deps[0].Verifier.Kind)
}

func TestFlattenDependenciesIdempotent(t *testing.T) {
	fs := newFakeFS()
	fs.put("/deps/A.h", []byte("a"), 1)
	raw := []string{"/deps/A.h"}
	first, err := flattenDependencies(raw, types.ResolveContext{}, "", "", false, fs, fakeBinaryModule{}, nil)
	require.NoError(t, err)
	second, err := flattenDependencies(raw, types.ResolveContext{}, "", "", false, fs, fakeBinaryModule{}, nil)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
