package ports

import "ifacecache/internal/types"

// ValidatedModule is what ValidateAndExtractDeps hands back: the
// dependency manifest embedded in a binary module, already decoded.
type ValidatedModule struct {
	Deps []types.Dependency
}

// SerializeInput is what the core hands the serializer once a build has
// finished: the compiled payload plus the flattened dependency manifest
// to embed alongside it.
type SerializeInput struct {
	ModuleName string
	Deps       []types.Dependency
	Payload    []byte
}

// BinaryModule is the collaborator that knows the binary module wire
// format. Lexing, parsing, type-checking, code generation and the
// serializer's internals are all external to this resolver; only this
// narrow contract is consumed.
type BinaryModule interface {
	IsSerializedModule(buf []byte) bool
	ValidateAndExtractDeps(buf []byte) (ValidatedModule, error)
	Serialize(input SerializeInput) ([]byte, error)
}
