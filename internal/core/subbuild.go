package core

import (
	"context"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"ifacecache/internal/ports"
	"ifacecache/internal/types"
)

// SubBuildDriver configures and runs a child compilation of an
// interface file, collects its realized dependency set (flattening
// cached-module deps one level deep), and emits the binary module plus
// its embedded dependency manifest.
type SubBuildDriver struct {
	Compiler         ports.SubCompiler
	Filesystem       ports.Filesystem
	BinaryModule     ports.BinaryModule
	Diagnostics      ports.Diagnostics
	WritableCacheDir string
	PrebuiltCacheDir string
}

// Run builds cfg.ModuleName from the interface at cfg.InterfacePath and
// writes the resulting binary module to cfg.OutputPath, returning the
// bytes written.
func (d SubBuildDriver) Run(ctx context.Context, cfg types.SubBuildConfig) ([]byte, error) {
	if err := checkVersionGate(cfg.Header.FormatVersion, cfg.Context.SupportedInterfaceMajor, d.Diagnostics); err != nil {
		return nil, err
	}

	outcome, err := compileWithCrashIsolation(ctx, d.Compiler, cfg)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("crash in child build").
			WithCause(err)
	}
	if !outcome.Success {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("build of module interface failed")
	}

	if outcome.ParsedModuleName != "" && outcome.ParsedModuleName != cfg.ModuleName {
		if d.Diagnostics != nil {
			d.Diagnostics.Diag(types.DiagSerializationNameMismatch, outcome.ParsedModuleName, cfg.ModuleName)
		}
		if !cfg.Context.DebuggerSupport {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("serialized module name does not match expected module name")
		}
		// Debugger-support mode softens this diagnostic to non-fatal.
	}

	rawDeps := append([]string{cfg.InterfacePath}, outcome.RawDeps...)
	flattened, err := flattenDependencies(rawDeps, cfg.Context, d.WritableCacheDir, d.PrebuiltCacheDir, cfg.Context.HashDependencies, d.Filesystem, d.BinaryModule, d.Diagnostics)
	if err != nil {
		return nil, err
	}

	bytes, err := d.BinaryModule.Serialize(ports.SerializeInput{
		ModuleName: cfg.ModuleName,
		Deps:       flattened,
		Payload:    outcome.Payload,
	})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to serialize module").
			WithCause(err)
	}

	if err := d.Filesystem.WriteAtomic(cfg.OutputPath, bytes); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write cached module entry").
			WithCause(err)
	}
	return bytes, nil
}

// checkVersionGate requires the interface's major format version to
// equal the compiler's supported major; minor differences are accepted.
func checkVersionGate(formatVersion string, supportedMajor int, diag ports.Diagnostics) error {
	majorStr := formatVersion
	if idx := strings.IndexByte(formatVersion, '.'); idx >= 0 {
		majorStr = formatVersion[:idx]
	}
	major, err := strconv.Atoi(majorStr)
	if err != nil || major != supportedMajor {
		if diag != nil {
			diag.Diag(types.DiagUnsupportedVersion, formatVersion)
		}
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("unsupported interface format version: " + formatVersion)
	}
	return nil
}

// compileWithCrashIsolation runs the child compilation on a dedicated
// goroutine and recovers a panic there, converting it into the
// documented non-fatal CrashInChildBuild failure instead of letting it
// escape to the resolver's caller.
func compileWithCrashIsolation(ctx context.Context, compiler ports.SubCompiler, cfg types.SubBuildConfig) (types.SubBuildOutcome, error) {
	type result struct {
		outcome types.SubBuildOutcome
		err     error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("panic in child build").
					WithCause(panicToError(r))}
			}
		}()
		outcome, err := compiler.Compile(ctx, cfg)
		done <- result{outcome: outcome, err: err}
	}()
	res := <-done
	return res.outcome, res.err
}

func panicToError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return errbuilder.New().WithCode(errbuilder.CodeInternal).WithMsg(panicMessage(r))
}

func panicMessage(r any) string {
	if s, ok := r.(string); ok {
		return s
	}
	return "unrecoverable panic in child build"
}

// flattenDependencies transforms the child's raw dependency paths into
// the one-level-deep, deduplicated manifest a cached module embeds:
// SDK-relative rewriting, splicing in a nested cached module's embedded
// dependency list (one level; that list is not expanded further), and
// ModTime/ContentHash verification depending on hashMode.
func flattenDependencies(raw []string, ctx types.ResolveContext, writableCacheDir, prebuiltCacheDir string, hashMode bool, fs ports.Filesystem, bm ports.BinaryModule, diag ports.Diagnostics) ([]types.Dependency, error) {
	seen := map[string]bool{}
	var out []types.Dependency
	for _, p := range raw {
		if seen[p] {
			continue
		}
		seen[p] = true

		if isCachedModule(p, ctx, writableCacheDir, prebuiltCacheDir) {
			buf, err := fs.Read(p)
			if err != nil {
				if diag != nil {
					diag.Diag(types.DiagErrorExtractingDependenciesFromCachedModule, p)
				}
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("error extracting dependencies from cached module: " + p).
					WithCause(err)
			}
			validated, err := bm.ValidateAndExtractDeps(buf)
			if err != nil {
				if diag != nil {
					diag.Diag(types.DiagErrorExtractingDependenciesFromCachedModule, p)
				}
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("error extracting dependencies from cached module: " + p).
					WithCause(err)
			}
			out = append(out, validated.Deps...)
			continue
		}

		dep, err := buildDependencyRecord(fs, ctx.SDKPath, p, hashMode)
		if err != nil {
			if diag != nil {
				diag.Diag(types.DiagMissingDependency, p)
			}
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("missing dependency of module interface: " + p).
				WithCause(err)
		}
		out = append(out, dep)
	}
	return out, nil
}

// isCachedModule reports whether p is itself an entry in one of the two
// cache directories, identified by extension and path prefix.
func isCachedModule(p string, ctx types.ResolveContext, writableCacheDir, prebuiltCacheDir string) bool {
	if !strings.HasSuffix(p, ctx.ModuleExt()) {
		return false
	}
	if writableCacheDir != "" && strings.HasPrefix(p, ensureTrailingSeparator(writableCacheDir)) {
		return true
	}
	if prebuiltCacheDir != "" && strings.HasPrefix(p, ensureTrailingSeparator(prebuiltCacheDir)) {
		return true
	}
	return false
}

func buildDependencyRecord(fs ports.Filesystem, sdkPath, rawPath string, hashMode bool) (types.Dependency, error) {
	info, err := fs.Stat(rawPath)
	if err != nil {
		return types.Dependency{}, err
	}
	relPath, sdkRelative := makeSDKRelative(rawPath, sdkPath)
	dep := types.Dependency{Path: relPath, SDKRelative: sdkRelative, Size: info.Size}
	if hashMode {
		data, err := fs.Read(rawPath)
		if err != nil {
			return types.Dependency{}, err
		}
		dep.Verifier = types.ContentHash(xxhash.Sum64(data))
	} else {
		dep.Verifier = types.ModTime(info.MTimeNS)
	}
	return dep, nil
}
