// Package pipeline orchestrates GLB discovery, selection, and the two-stage
// compression of each selected file, plus batch summary reporting.
//
// A batch is strictly sequential: probe the compressor, discover, select,
// then run one [Job] at a time in selection order. Within a job the order is
// texture stage, delete input, geometry stage, delete intermediate. At every
// stage boundary exactly one of {input, intermediate} exists on disk, so an
// interrupted or failed job can be diagnosed by which path is present.
package pipeline
