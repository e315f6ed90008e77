package core

import (
	"regexp"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/shlex"

	"ifacecache/internal/ports"
	"ifacecache/internal/types"
)

// interfaceVersionPattern and interfaceFlagsPattern match the two
// well-known header lines every interface file must carry.
var (
	interfaceVersionPattern = regexp.MustCompile(`(?m)^//\s*interface-format-version:\s*(\S+)\s*$`)
	interfaceFlagsPattern   = regexp.MustCompile(`(?m)^//\s*interface-flags:\s*(.*)$`)
)

// ParseInterfaceHeader extracts the format-version and flags header
// lines from an interface file's contents. Both headers must be present
// and parseable; either missing line is fatal for the request.
func ParseInterfaceHeader(buf []byte, diag ports.Diagnostics) (types.InterfaceHeader, error) {
	versionMatch := interfaceVersionPattern.FindSubmatch(buf)
	if versionMatch == nil {
		if diag != nil {
			diag.Diag(types.DiagErrorExtractingVersion)
		}
		return types.InterfaceHeader{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("missing interface format version header")
	}

	flagsMatch := interfaceFlagsPattern.FindSubmatch(buf)
	if flagsMatch == nil {
		if diag != nil {
			diag.Diag(types.DiagErrorExtractingFlags)
		}
		return types.InterfaceHeader{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("missing interface flags header")
	}

	flags, err := shlex.Split(string(flagsMatch[1]))
	if err != nil {
		if diag != nil {
			diag.Diag(types.DiagErrorExtractingFlags, err)
		}
		return types.InterfaceHeader{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unparseable interface flags header").
			WithCause(err)
	}

	return types.InterfaceHeader{
		FormatVersion: string(versionMatch[1]),
		Flags:         flags,
	}, nil
}
