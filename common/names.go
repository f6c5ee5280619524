package common

import "strings"

// SplitQualifiedName splits a dotted name into its segments.  Empty segments
// are preserved so callers can report them.
func SplitQualifiedName(name string) []string {
	return strings.Split(name, ".")
}

// SimpleName returns the last segment of a fully-qualified name.
func SimpleName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}

	return name
}

// IsValidIdentifier returns whether or not a given string would be a valid
// identifier (module name, type name segment, variable name, etc.)
func IsValidIdentifier(idstr string) bool {
	if idstr == "" {
		return false
	}

	if idstr[0] == '_' || ('a' <= idstr[0] && idstr[0] <= 'z') || ('A' <= idstr[0] && idstr[0] <= 'Z') {
		for _, c := range idstr[1:] {
			if c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
				continue
			}

			return false
		}

		return true
	}

	return false
}

// IsValidQualifiedName returns whether every segment of a dotted name is a
// valid identifier.
func IsValidQualifiedName(name string) bool {
	for _, seg := range SplitQualifiedName(name) {
		if !IsValidIdentifier(seg) {
			return false
		}
	}

	return true
}
