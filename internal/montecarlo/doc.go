// Package montecarlo estimates the intersection area by uniform sampling over
// each region's bounding box, producing the same result tables as the
// synthesizer from an actual simulation. Regions are simulated concurrently;
// progress is published to a ProgressReporter so that the compute layer stays
// free of presentation concerns.
package montecarlo
