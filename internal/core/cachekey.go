package core

import (
	"strconv"

	"github.com/cespare/xxhash/v2"

	"ifacecache/internal/types"
)

// ComputeCacheKey derives a stable base-36 digest over the fixed input
// set (version, interface path, arch, SDK path, track-system-deps bit).
// The combine order is fixed so the same inputs always yield the same
// key, across processes, on the same toolchain. It deliberately ignores
// interface content: content drift is caught by dependency validation
// of the entry the key names, not by the key itself.
func ComputeCacheKey(in types.CacheKeyInputs) string {
	h := xxhash.New()
	writeField(h, in.CompilerVersion)
	writeField(h, in.InterfacePath)
	writeField(h, in.Arch)
	writeField(h, in.SDKPath)
	if in.TrackSystemDeps {
		writeField(h, "1")
	} else {
		writeField(h, "0")
	}
	return strconv.FormatUint(h.Sum64(), 36)
}

// writeField writes value followed by a separator byte that cannot
// appear inside any field, so concatenation ambiguities ("ab"+"c" vs
// "a"+"bc") hash differently.
func writeField(h *xxhash.Digest, value string) {
	_, _ = h.WriteString(value)
	_, _ = h.Write([]byte{0})
}
