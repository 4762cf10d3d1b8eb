// Package dream generates synthetic chromatic tensors from a seed, scores
// them against a target and keeps the best candidates in a bounded pool.
//
// Nothing in this package draws randomness or reads the clock. Generate
// perturbs a seed with a fixed function of cell coordinates, and Cycle varies
// the perturbation strength with a cyclic ramp over the step index, so a
// cycle over identical inputs always produces an identical pool.
//
// A Pool is a single-owner container and is not safe for concurrent use.
package dream
