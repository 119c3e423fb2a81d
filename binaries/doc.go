// Package binaries synthesizes populations of binary-star orbital
// parameters from literature-calibrated distributions and projects their
// orbital motion into observable velocity offsets.
//
// A Population is a fixed-length structure-of-arrays table of orbital
// elements.  Orientation fields (Phase, Theta, Inclination) are drawn
// isotropically once at construction.  Period, MassRatio and Eccentricity
// start at placeholder values and are filled by the three independent
// draw operations, or assigned verbatim with the Set methods.  No
// consistency between fields is enforced; in particular, the tidal
// eccentricity cap reads the current periods, so DrawPeriod must run
// before DrawEccentricities with the Tidal cap, and eccentricities must
// be redrawn if periods are redrawn afterwards.
//
// Velocity projects the population onto the line of sight at an arbitrary
// epoch, and FakeDataset builds synthetic observed catalogs for Monte
// Carlo validation.  The binned density kernels built from these
// projections live in package veldist.
package binaries
