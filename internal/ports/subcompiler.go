package ports

import (
	"context"

	"ifacecache/internal/types"
)

// SubCompiler is the opaque child compilation invoked by the Sub-Build
// Driver. It owns its own dependency tracker internally and reports the
// raw paths it saw back through SubBuildOutcome.RawDeps.
type SubCompiler interface {
	Compile(ctx context.Context, cfg types.SubBuildConfig) (types.SubBuildOutcome, error)
}
