package ports

// DependencyTracker is the optional ambient collaborator that downstream
// build systems use to observe every path this resolver touches, even
// ones that turn out to be stale.
type DependencyTracker interface {
	Add(path string, isSystem bool)
	SystemDepCollectionEnabled() bool
}
