package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"ifacecache/internal/ports"
	"ifacecache/internal/types"
)

func TestResolverPrebuiltHitWritesForwardingRecordThenSecondResolveIsForwarded(t *testing.T) {
	fs := newFakeFS()
	fs.put("/sdk/Foo.swiftinterface", nil, 1)
	fs.put("/deps/Bar.h", []byte("x"), 10)

	bm := fakeBinaryModule{}
	prebuiltBuf, err := bm.Serialize(ports.SerializeInput{ModuleName: "Foo", Deps: []types.Dependency{
		{Path: "/deps/Bar.h", Size: 1, Verifier: types.ModTime(10)},
	}})
	require.NoError(t, err)
	fs.put("/prebuilt/Foo.swiftmodule", prebuiltBuf, 1)

	resolver := Resolver{
		Filesystem:       fs,
		BinaryModule:     bm,
		Tracker:          &fakeTracker{},
		PrebuiltCacheDir: "/prebuilt",
	}
	ctx := types.ResolveContext{SDKPath: "/sdk"}

	first, status := resolver.FindModuleFilesInDirectory(context.Background(), ctx, types.PreferSerialized, "Foo", "/sdk/Foo.swiftinterface", "/cache/Foo.swiftmodule", "")
	require.Equal(t, types.StatusOK, status)
	require.Equal(t, prebuiltBuf, first.ModuleBytes)

	// The forwarding record must now live at cachedOutputPath, not a
	// second copy of the binary module.
	require.True(t, fs.Exists("/cache/Foo.swiftmodule"))
	written, err := fs.Read("/cache/Foo.swiftmodule")
	require.NoError(t, err)
	require.False(t, bm.IsSerializedModule(written), "cachedOutputPath must hold a forwarding record, not the binary module itself")

	second, status := resolver.FindModuleFilesInDirectory(context.Background(), ctx, types.PreferSerialized, "Foo", "/sdk/Foo.swiftinterface", "/cache/Foo.swiftmodule", "")
	require.Equal(t, types.StatusOK, status)
	require.Equal(t, prebuiltBuf, second.ModuleBytes)
}

func TestResolverFreshSubBuildDoesNotWriteForwardingRecord(t *testing.T) {
	fs := newFakeFS()
	fs.put("/sdk/Foo.swiftinterface", []byte("// interface-format-version: 1\n// interface-flags:\n"), 1)
	fs.put("/deps/Bar.h", []byte("x"), 10)

	bm := fakeBinaryModule{}
	compiler := fakeSubCompiler{outcome: types.SubBuildOutcome{
		Success:          true,
		Payload:          []byte("compiled"),
		RawDeps:          []string{"/deps/Bar.h"},
		ParsedModuleName: "Foo",
	}}
	resolver := Resolver{
		Filesystem:       fs,
		BinaryModule:     bm,
		Tracker:          &fakeTracker{},
		PrebuiltCacheDir: "/prebuilt",
		Driver:           SubBuildDriver{Compiler: compiler, Filesystem: fs, BinaryModule: bm},
	}
	ctx := types.ResolveContext{SDKPath: "/sdk", SupportedInterfaceMajor: 1}

	result, status := resolver.FindModuleFilesInDirectory(context.Background(), ctx, types.PreferSerialized, "Foo", "/sdk/Foo.swiftinterface", "/cache/Foo.swiftmodule", "")
	require.Equal(t, types.StatusOK, status)
	require.True(t, bm.IsSerializedModule(result.ModuleBytes))

	written, err := fs.Read("/cache/Foo.swiftmodule")
	require.NoError(t, err)
	require.True(t, bm.IsSerializedModule(written), "a fresh sub-build must leave a real binary module at cachedOutputPath")
}

func TestPrebuiltCandidatePathNestsUnderBundleDirectory(t *testing.T) {
	req := DiscoveryRequest{
		Context:          types.ResolveContext{},
		ModuleName:       "Foo",
		InterfacePath:    "/sdk/Foo.swiftmodule/Foo-x86_64.swiftinterface",
		PrebuiltCacheDir: "/prebuilt",
	}
	require.Equal(t, "/prebuilt/Foo.swiftmodule/Foo-x86_64.swiftmodule", prebuiltCandidatePath(req))
}

func TestPrebuiltCandidatePathFlatLayout(t *testing.T) {
	req := DiscoveryRequest{
		Context:          types.ResolveContext{},
		ModuleName:       "Foo",
		InterfacePath:    "/sdk/Foo.swiftinterface",
		PrebuiltCacheDir: "/prebuilt",
	}
	require.Equal(t, "/prebuilt/Foo.swiftmodule", prebuiltCandidatePath(req))
}
