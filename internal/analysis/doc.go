// Package analysis provides integral checks on sampled orbitals.
//
//   - [TotalProbability]: Σ|ψ|²·dv, the normalization of a sampled field
//   - [MeanRadius]: ⟨r⟩ weighted by the sampled probability
//   - [RadialDistribution]: the analytic radial probability r²R²
//   - [ExpectedMeanRadius]: the closed form of ⟨r⟩ for comparison
//   - [EnclosedRadius]: the sphere holding a given probability, by RK4
//
// # Normalization
//
// A grid that contains the orbital integrates close to one:
//
//	p, _ := analysis.TotalProbability(field.Density(), g.DV)
//	if math.Abs(p-1) > 0.05 {
//	    // grid too small or too coarse
//	}
package analysis
