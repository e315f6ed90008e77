package core

import (
	"path/filepath"
	"strings"
)

func basename(path string) string {
	return filepath.Base(path)
}

func dirname(path string) string {
	return filepath.Dir(path)
}

func joinPath(parts ...string) string {
	return filepath.Join(parts...)
}

func ensureTrailingSeparator(path string) string {
	if strings.HasSuffix(path, string(filepath.Separator)) {
		return path
	}
	return path + string(filepath.Separator)
}

// swapSuffix replaces a trailing oldSuffix on name with newSuffix. If
// name does not end in oldSuffix, newSuffix is simply appended.
func swapSuffix(name, oldSuffix, newSuffix string) string {
	if strings.HasSuffix(name, oldSuffix) {
		return strings.TrimSuffix(name, oldSuffix) + newSuffix
	}
	return name + newSuffix
}

// makeSDKRelative splits rawPath into an SDK-relative path (and true)
// when it falls under sdkPath, or returns it unchanged (and false)
// otherwise. Mirrors resolveDependencyPath's inverse.
func makeSDKRelative(rawPath, sdkPath string) (string, bool) {
	if sdkPath == "" {
		return rawPath, false
	}
	if rawPath == sdkPath {
		return "", true
	}
	prefix := ensureTrailingSeparator(sdkPath)
	if strings.HasPrefix(rawPath, prefix) {
		return strings.TrimPrefix(rawPath, prefix), true
	}
	return rawPath, false
}
