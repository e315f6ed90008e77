package ports

import "ifacecache/internal/types"

// Diagnostics is the collaborator the core reports fatal and
// non-fatal conditions through. args are kind-specific (typically the
// offending path or a parse error).
type Diagnostics interface {
	Diag(kind types.DiagKind, args ...any)
}
