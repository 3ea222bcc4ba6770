package gltf

import (
	"context"

	"github.com/backmassage/glbcrunch/internal/check"
	"github.com/backmassage/glbcrunch/internal/config"
)

// CLI is the gltf-transform backed compressor.
type CLI struct {
	cfg    *config.Config
	prober check.Prober
}

// NewCLI returns a compressor that shells out to cfg.Tool.
func NewCLI(cfg *config.Config) *CLI {
	return &CLI{cfg: cfg}
}

// Probe verifies the tool is invokable ("<tool> --version").
func (c *CLI) Probe(ctx context.Context) error {
	_, err := c.prober.Probe(ctx, c.cfg.Tool)
	return err
}

// TextureCompress runs the texture stage from src into dst.
func (c *CLI) TextureCompress(ctx context.Context, src, dst string) ExecResult {
	return Execute(ctx, c.cfg, Build(c.cfg, StageTexture, src, dst))
}

// GeometryCompress runs the geometry stage from src into dst.
func (c *CLI) GeometryCompress(ctx context.Context, src, dst string) ExecResult {
	return Execute(ctx, c.cfg, Build(c.cfg, StageGeometry, src, dst))
}
