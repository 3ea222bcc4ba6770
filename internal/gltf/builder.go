package gltf

import (
	"github.com/backmassage/glbcrunch/internal/config"
)

// Stage identifies one external compression step.
type Stage string

const (
	StageTexture  Stage = "texture"  // etc1s by default
	StageGeometry Stage = "geometry" // draco by default
)

// Build constructs the argument slice for one stage. args[0] is the tool.
// Extra args from the config follow the two positional paths so they can
// never be mistaken for source or destination.
func Build(cfg *config.Config, stage Stage, src, dst string) []string {
	var sub string
	var extra []string
	switch stage {
	case StageTexture:
		sub, extra = cfg.TextureCommand, cfg.TextureArgs
	case StageGeometry:
		sub, extra = cfg.GeometryCommand, cfg.GeometryArgs
	}

	args := make([]string, 0, 4+len(extra))
	args = append(args, cfg.Tool, sub, src, dst)
	args = append(args, extra...)
	return args
}
