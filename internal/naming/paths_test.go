package naming

import (
	"path/filepath"
	"testing"
)

func TestIntermediatePath(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		suffix string
		want   string
	}{
		{"lowercase", "/w/models/ship.glb", "-etc1s", "/w/models/ship-etc1s.glb"},
		{"uppercase ext kept", "/w/SHIP.GLB", "-etc1s", "/w/SHIP-etc1s.GLB"},
		{"mixed case", "/w/Tree.Glb", "-etc1s", "/w/Tree-etc1s.Glb"},
		{"dots in stem", "/w/a.b.c.glb", "-etc1s", "/w/a.b.c-etc1s.glb"},
		{"custom suffix", "/w/x.glb", ".stage1", "/w/x.stage1.glb"},
		{"relative", "x.glb", "-etc1s", "x-etc1s.glb"},
		{"glb in directory only", "/w/x.glb/file", "-etc1s", "/w/x.glb/file-etc1s.glb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IntermediatePath(tt.input, tt.suffix)
			if got != tt.want {
				t.Errorf("IntermediatePath(%q, %q) = %q, want %q", tt.input, tt.suffix, got, tt.want)
			}
			if again := IntermediatePath(tt.input, tt.suffix); again != got {
				t.Errorf("not deterministic: %q then %q", got, again)
			}
			if got == tt.input {
				t.Errorf("intermediate equals input %q", got)
			}
		})
	}
}

func TestIsGLB(t *testing.T) {
	for name, want := range map[string]bool{
		"a.glb":   true,
		"A.GLB":   true,
		"a.gltf":  false,
		"glb":     false,
		"a.glb.x": false,
	} {
		if got := IsGLB(name); got != want {
			t.Errorf("IsGLB(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	root := filepath.FromSlash("/w/project")
	tests := []struct {
		path string
		want string
	}{
		{filepath.FromSlash("/w/project/a/b/x.glb"), "a/b/x.glb"},
		{filepath.FromSlash("/w/project/x.glb"), "x.glb"},
		{filepath.FromSlash("/elsewhere/y.glb"), "y.glb"},
	}
	for _, tt := range tests {
		if got := DisplayName(root, tt.path); got != tt.want {
			t.Errorf("DisplayName(%q, %q) = %q, want %q", root, tt.path, got, tt.want)
		}
	}
}
