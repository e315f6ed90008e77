package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ifacecache/internal/app"
	"ifacecache/internal/core"
	"ifacecache/internal/types"
)

type resolveOptions struct {
	InterfacePath      string
	ModuleName         string
	CacheDir           string
	PrebuiltCacheDir   string
	AdjacentModulePath string
	LoadMode           string
	SDKPath            string
	Arch               string
	CompilerVersion    string
	TrackSystemDeps    bool
	HashDependencies   bool
	ForceRebuild       bool
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a module interface against the build cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.InterfacePath, "interface", "", "Module interface file path")
	cmd.Flags().StringVar(&opts.ModuleName, "module", "", "Module name")
	cmd.Flags().StringVar(&opts.CacheDir, "cache-dir", "", "Writable cache directory")
	cmd.Flags().StringVar(&opts.PrebuiltCacheDir, "prebuilt-cache-dir", "", "Prebuilt module cache directory")
	cmd.Flags().StringVar(&opts.AdjacentModulePath, "adjacent-module", "", "Path of an adjacent prebuilt module to delegate to")
	cmd.Flags().StringVar(&opts.LoadMode, "load-mode", "prefer-serialized", "Load mode: prefer-serialized, only-interface, prefer-interface")
	cmd.Flags().StringVar(&opts.SDKPath, "sdk-path", "", "SDK root path")
	cmd.Flags().StringVar(&opts.Arch, "arch", "", "Target architecture")
	cmd.Flags().StringVar(&opts.CompilerVersion, "compiler-version", "", "Compiler version string")
	cmd.Flags().BoolVar(&opts.TrackSystemDeps, "track-system-deps", false, "Report system dependencies to the tracker")
	cmd.Flags().BoolVar(&opts.HashDependencies, "hash-dependencies", false, "Verify dependencies by content hash instead of mtime")
	cmd.Flags().BoolVar(&opts.ForceRebuild, "force-rebuild", false, "Skip both cache tiers and rebuild unconditionally")

	_ = viper.BindPFlag("interface", cmd.Flags().Lookup("interface"))
	_ = viper.BindPFlag("module", cmd.Flags().Lookup("module"))
	_ = viper.BindPFlag("cache_dir", cmd.Flags().Lookup("cache-dir"))
	_ = viper.BindPFlag("prebuilt_cache_dir", cmd.Flags().Lookup("prebuilt-cache-dir"))
	_ = viper.BindPFlag("adjacent_module", cmd.Flags().Lookup("adjacent-module"))
	_ = viper.BindPFlag("load_mode", cmd.Flags().Lookup("load-mode"))
	_ = viper.BindPFlag("sdk_path", cmd.Flags().Lookup("sdk-path"))
	_ = viper.BindPFlag("arch", cmd.Flags().Lookup("arch"))
	_ = viper.BindPFlag("compiler_version", cmd.Flags().Lookup("compiler-version"))
	_ = viper.BindPFlag("track_system_deps", cmd.Flags().Lookup("track-system-deps"))
	_ = viper.BindPFlag("hash_dependencies", cmd.Flags().Lookup("hash-dependencies"))
	_ = viper.BindPFlag("force_rebuild", cmd.Flags().Lookup("force-rebuild"))

	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts resolveOptions) error {
	interfacePath := resolveString(cmd, opts.InterfacePath, "interface", "interface")
	moduleName := resolveString(cmd, opts.ModuleName, "module", "module")
	cacheDir := resolveString(cmd, opts.CacheDir, "cache_dir", "cache-dir")
	cacheKey := core.ComputeCacheKey(types.CacheKeyInputs{
		CompilerVersion: resolveString(cmd, opts.CompilerVersion, "compiler_version", "compiler-version"),
		InterfacePath:   interfacePath,
		Arch:            resolveString(cmd, opts.Arch, "arch", "arch"),
		SDKPath:         resolveString(cmd, opts.SDKPath, "sdk_path", "sdk-path"),
		TrackSystemDeps: resolveBool(cmd, opts.TrackSystemDeps, "track_system_deps", "track-system-deps"),
	})

	service := newAppService()
	result, err := service.Resolve(ctx, app.ResolveRequest{
		Context: types.ResolveContext{
			CompilerVersion:         resolveString(cmd, opts.CompilerVersion, "compiler_version", "compiler-version"),
			SupportedInterfaceMajor: 1,
			Arch:                    resolveString(cmd, opts.Arch, "arch", "arch"),
			SDKPath:                 resolveString(cmd, opts.SDKPath, "sdk_path", "sdk-path"),
			TrackSystemDeps:         resolveBool(cmd, opts.TrackSystemDeps, "track_system_deps", "track-system-deps"),
			HashDependencies:        resolveBool(cmd, opts.HashDependencies, "hash_dependencies", "hash-dependencies"),
			ForceRebuild:            resolveBool(cmd, opts.ForceRebuild, "force_rebuild", "force-rebuild"),
		},
		LoadMode:           parseLoadMode(resolveString(cmd, opts.LoadMode, "load_mode", "load-mode")),
		ModuleName:         moduleName,
		InterfacePath:      interfacePath,
		CachedOutputPath:   cacheEntryPath(cacheDir, moduleName, cacheKey),
		AdjacentModulePath: resolveString(cmd, opts.AdjacentModulePath, "adjacent_module", "adjacent-module"),
		PrebuiltCacheDir:   resolveString(cmd, opts.PrebuiltCacheDir, "prebuilt_cache_dir", "prebuilt-cache-dir"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("resolve: %s (%d bytes)\n", result.Status, len(result.ModuleBytes))
	return nil
}

func cacheEntryPath(cacheDir, moduleName, cacheKey string) string {
	return filepath.Join(cacheDir, moduleName+"-"+cacheKey+".swiftmodule")
}
