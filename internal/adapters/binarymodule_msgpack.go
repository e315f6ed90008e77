package adapters

import (
	"bytes"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/vmihailenco/msgpack/v5"

	"ifacecache/internal/ports"
	"ifacecache/internal/types"
)

// binaryModuleMagic prefixes every payload this adapter writes, so
// IsSerializedModule can disambiguate a binary module from a textual
// Forwarding Record without attempting a full decode.
var binaryModuleMagic = [4]byte{'I', 'F', 'C', 1}

// moduleEnvelope is the on-disk msgpack shape: the embedded dependency
// manifest plus the opaque compiled payload handed in by the sub-build.
type moduleEnvelope struct {
	ModuleName string             `msgpack:"module_name"`
	Deps       []dependencyRecord `msgpack:"deps"`
	Payload    []byte             `msgpack:"payload"`
}

type dependencyRecord struct {
	Path        string `msgpack:"path"`
	SDKRelative bool   `msgpack:"sdk_relative"`
	Size        uint64 `msgpack:"size"`
	VerifierTag uint8  `msgpack:"verifier_tag"`
	VerifierVal uint64 `msgpack:"verifier_val"`
}

// MsgpackBinaryModule is the default, concrete ports.BinaryModule: a
// magic-number-prefixed msgpack envelope. The serializer that produces
// the compiled IR payload itself is out of scope; this adapter only
// owns the embedded-manifest wire format this resolver consumes.
type MsgpackBinaryModule struct{}

func (MsgpackBinaryModule) IsSerializedModule(buf []byte) bool {
	return len(buf) >= len(binaryModuleMagic) && bytes.Equal(buf[:len(binaryModuleMagic)], binaryModuleMagic[:])
}

func (m MsgpackBinaryModule) ValidateAndExtractDeps(buf []byte) (ports.ValidatedModule, error) {
	if !m.IsSerializedModule(buf) {
		return ports.ValidatedModule{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("not a binary module")
	}
	var env moduleEnvelope
	if err := msgpack.Unmarshal(buf[len(binaryModuleMagic):], &env); err != nil {
		return ports.ValidatedModule{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("corrupt binary module envelope").
			WithCause(err)
	}
	deps := make([]types.Dependency, 0, len(env.Deps))
	for _, d := range env.Deps {
		deps = append(deps, types.Dependency{
			Path:        d.Path,
			SDKRelative: d.SDKRelative,
			Size:        d.Size,
			Verifier:    types.Verifier{Kind: types.VerifierKind(d.VerifierTag), ModTimeNS: verifierModTime(d), ContentHash: verifierHash(d)},
		})
	}
	return ports.ValidatedModule{Deps: deps}, nil
}

func verifierModTime(d dependencyRecord) uint64 {
	if types.VerifierKind(d.VerifierTag) == types.VerifierModTime {
		return d.VerifierVal
	}
	return 0
}

func verifierHash(d dependencyRecord) uint64 {
	if types.VerifierKind(d.VerifierTag) == types.VerifierContentHash {
		return d.VerifierVal
	}
	return 0
}

func (MsgpackBinaryModule) Serialize(input ports.SerializeInput) ([]byte, error) {
	env := moduleEnvelope{
		ModuleName: input.ModuleName,
		Payload:    input.Payload,
	}
	for _, dep := range input.Deps {
		rec := dependencyRecord{
			Path:        dep.Path,
			SDKRelative: dep.SDKRelative,
			Size:        dep.Size,
			VerifierTag: uint8(dep.Verifier.Kind),
		}
		if dep.Verifier.Kind == types.VerifierContentHash {
			rec.VerifierVal = dep.Verifier.ContentHash
		} else {
			rec.VerifierVal = dep.Verifier.ModTimeNS
		}
		env.Deps = append(env.Deps, rec)
	}

	body, err := msgpack.Marshal(env)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal binary module envelope").
			WithCause(err)
	}
	out := make([]byte, 0, len(binaryModuleMagic)+len(body))
	out = append(out, binaryModuleMagic[:]...)
	out = append(out, body...)
	return out, nil
}
