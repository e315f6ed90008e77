package adapters

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	"ifacecache/internal/ports"
	"ifacecache/internal/types"
)

// DefaultSubCompiler is a minimal reference SubCompiler. Lexing,
// parsing, type-checking and code generation belong to a real compiler
// front end and are explicitly out of scope here; this adapter only
// exercises the SubCompiler port contract end to end so the driver and
// its dependency flattening are testable without one.
//
// It recognizes two textual conventions in an interface file:
//   - a "-module-name <name>" flag in the header's flags line, compared
//     by the driver against the requested module name;
//   - "// dep: <path>" comment lines in the body, one dependency path
//     per line, reported back as RawDeps.
//
// The "payload" it produces is simply the interface file's own bytes;
// a real compiler would emit compiled IR here instead.
type DefaultSubCompiler struct {
	Filesystem ports.Filesystem
}

func (c DefaultSubCompiler) Compile(_ context.Context, cfg types.SubBuildConfig) (types.SubBuildOutcome, error) {
	buf, err := c.Filesystem.Read(cfg.InterfacePath)
	if err != nil {
		return types.SubBuildOutcome{}, err
	}

	outcome := types.SubBuildOutcome{
		Success:          true,
		Payload:          buf,
		ParsedModuleName: parseModuleNameFlag(cfg.Header.Flags),
		RawDeps:          parseDepComments(buf),
	}
	return outcome, nil
}

func parseModuleNameFlag(flags []string) string {
	for i, flag := range flags {
		if flag == "-module-name" && i+1 < len(flags) {
			return flags[i+1]
		}
	}
	return ""
}

func parseDepComments(buf []byte) []string {
	var deps []string
	scanner := bufio.NewScanner(bytes.NewReader(buf))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if rest, ok := strings.CutPrefix(line, "// dep:"); ok {
			if path := strings.TrimSpace(rest); path != "" {
				deps = append(deps, path)
			}
		}
	}
	return deps
}
