package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ifacecache/internal/app"
	"ifacecache/internal/types"
)

type buildOptions struct {
	InterfacePath    string
	ModuleName       string
	OutputPath       string
	SDKPath          string
	Arch             string
	CompilerVersion  string
	TrackSystemDeps  bool
	HashDependencies bool
}

func newBuildCommand() *cobra.Command {
	opts := buildOptions{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a module directly from an interface file, bypassing the cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.InterfacePath, "interface", "", "Module interface file path")
	cmd.Flags().StringVar(&opts.ModuleName, "module", "", "Module name")
	cmd.Flags().StringVar(&opts.OutputPath, "output", "", "Output module path")
	cmd.Flags().StringVar(&opts.SDKPath, "sdk-path", "", "SDK root path")
	cmd.Flags().StringVar(&opts.Arch, "arch", "", "Target architecture")
	cmd.Flags().StringVar(&opts.CompilerVersion, "compiler-version", "", "Compiler version string")
	cmd.Flags().BoolVar(&opts.TrackSystemDeps, "track-system-deps", false, "Report system dependencies to the tracker")
	cmd.Flags().BoolVar(&opts.HashDependencies, "hash-dependencies", false, "Verify dependencies by content hash instead of mtime")

	_ = viper.BindPFlag("interface", cmd.Flags().Lookup("interface"))
	_ = viper.BindPFlag("module", cmd.Flags().Lookup("module"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("sdk_path", cmd.Flags().Lookup("sdk-path"))
	_ = viper.BindPFlag("arch", cmd.Flags().Lookup("arch"))
	_ = viper.BindPFlag("compiler_version", cmd.Flags().Lookup("compiler-version"))
	_ = viper.BindPFlag("track_system_deps", cmd.Flags().Lookup("track-system-deps"))
	_ = viper.BindPFlag("hash_dependencies", cmd.Flags().Lookup("hash-dependencies"))

	return cmd
}

func runBuild(ctx context.Context, cmd *cobra.Command, opts buildOptions) error {
	service := newAppService()
	result, err := service.Build(ctx, app.BuildRequest{
		Context: types.ResolveContext{
			CompilerVersion:         resolveString(cmd, opts.CompilerVersion, "compiler_version", "compiler-version"),
			SupportedInterfaceMajor: 1,
			Arch:                    resolveString(cmd, opts.Arch, "arch", "arch"),
			SDKPath:                 resolveString(cmd, opts.SDKPath, "sdk_path", "sdk-path"),
			TrackSystemDeps:         resolveBool(cmd, opts.TrackSystemDeps, "track_system_deps", "track-system-deps"),
			HashDependencies:        resolveBool(cmd, opts.HashDependencies, "hash_dependencies", "hash-dependencies"),
		},
		ModuleName:    resolveString(cmd, opts.ModuleName, "module", "module"),
		InterfacePath: resolveString(cmd, opts.InterfacePath, "interface", "interface"),
		OutputPath:    resolveString(cmd, opts.OutputPath, "output", "output"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("build: success=%t\n", result.Success)
	return nil
}
