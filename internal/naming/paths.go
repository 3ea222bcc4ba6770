package naming

import (
	"path/filepath"
	"strings"
)

// GLBExt is the extension discovery matches, compared case-insensitively.
const GLBExt = ".glb"

// IsGLB reports whether name ends in .glb, ignoring case.
func IsGLB(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), GLBExt)
}

// IntermediatePath inserts suffix before the .glb extension of input,
// keeping the extension's original case:
//
//	/a/ship.glb  -> /a/ship-etc1s.glb
//	/a/SHIP.GLB  -> /a/SHIP-etc1s.GLB
//
// An input without a .glb extension gets suffix+".glb" appended so the
// result never equals input.
func IntermediatePath(input, suffix string) string {
	if !IsGLB(input) {
		return input + suffix + GLBExt
	}
	cut := len(input) - len(GLBExt)
	return input[:cut] + suffix + input[cut:]
}

// DisplayName returns path relative to root with forward slashes, falling
// back to the base name when path is not under root.
func DisplayName(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}
