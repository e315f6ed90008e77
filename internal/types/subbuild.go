package types

// SubBuildConfig configures one child compilation of an interface file.
// SDK path, target triple, runtime resource path, and the two
// module-cache paths are inherited from Context rather than re-specified
// here.
type SubBuildConfig struct {
	Context       ResolveContext
	ModuleName    string
	InterfacePath string
	OutputPath    string
	Header        InterfaceHeader
}

// SubBuildOutcome is what a SubCompiler reports back after attempting a
// build. RawDeps is the raw dependency list the child's own tracker
// collected, not yet flattened or SDK-relativized. ParsedModuleName is
// the module name the child actually parsed out of its flags, compared
// by the driver against SubBuildConfig.ModuleName.
type SubBuildOutcome struct {
	Success          bool
	Payload          []byte
	RawDeps          []string
	ParsedModuleName string
}
