// Package simulate generates the synthetic datasets the three analysis
// pipelines run on. Each generator evaluates its noiseless physics model,
// applies the experiment's instrument effects (laser convolution, thermal
// occupation, resolution smoothing), and adds counting or shot noise scaled
// by the measurement protocol.
//
// Design decision: Every generator derives its own PCG random source from
// the configured seed. No generator touches process-global randomness, so
// identical configurations always reproduce identical datasets, and batch
// runs cannot perturb one another.
package simulate
