package types

// ResolveStatus is the result code FindModuleFilesInDirectory hands back
// to the loader chain.
type ResolveStatus int

const (
	// StatusOK means a module buffer was found or built successfully.
	StatusOK ResolveStatus = iota
	// StatusNoSuchFile means no interface file is present; the caller
	// should try the next loader.
	StatusNoSuchFile
	// StatusNotSupported means a usable adjacent module exists, or a
	// forwarding write failed; the caller should delegate.
	StatusNotSupported
	// StatusInvalidArgument means a build was attempted and failed.
	StatusInvalidArgument
)

func (s ResolveStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoSuchFile:
		return "no-such-file"
	case StatusNotSupported:
		return "not-supported"
	case StatusInvalidArgument:
		return "invalid-argument"
	default:
		return "unknown"
	}
}

// ModuleFiles is the pair of buffers FindModuleFilesInDirectory returns
// on success: the binary module itself, and its optional companion doc.
type ModuleFiles struct {
	ModuleBytes []byte
	DocBytes    []byte
}
