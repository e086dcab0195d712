package analysis

import (
	"fmt"

	"github.com/san-kum/orbital/internal/quantum"
	"github.com/san-kum/orbital/internal/wavefunction"
)

// DefaultRadialStep is the integration step of EnclosedRadius in Bohr radii.
const DefaultRadialStep = 1e-3

// radialRK4 integrates the enclosed probability F(r) = ∫ r²R(r)² dr one
// step at a time with classic RK4. The derivative ignores F, so each step
// is Simpson's rule over [r, r+dr].
type radialRK4 struct {
	norm float64
	s    quantum.State
	z    float64
}

func (k *radialRK4) derive(r float64) float64 {
	rad := k.norm * wavefunction.Radial(k.s.N, k.s.L, r, k.z)
	return r * r * rad * rad
}

func (k *radialRK4) step(f, r, dr float64) float64 {
	k1 := k.derive(r)
	k2 := k.derive(r + dr*0.5)
	k3 := k2
	k4 := k.derive(r + dr)
	return f + dr/6*(k1+2*k2+2*k3+k4)
}

// EnclosedRadius returns the radius of the sphere holding probability p of
// the state. A non-positive dr uses DefaultRadialStep.
func EnclosedRadius(s quantum.State, z, p, dr float64) (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if !(z > 0) {
		return 0, quantum.ErrAtomicNumber
	}
	if !(p >= 0 && p < 1) {
		return 0, fmt.Errorf("enclosed radius %v: %w", p, quantum.ErrFraction)
	}
	if dr <= 0 {
		dr = DefaultRadialStep
	}

	k := &radialRK4{norm: wavefunction.Prefactor(s.N, s.L, z), s: s, z: z}
	// The radial density has decayed to nothing long before this.
	limit := 50 * float64(s.N*s.N) / z

	f, r := 0.0, 0.0
	for r < limit {
		next := k.step(f, r, dr)
		if next >= p {
			return r + dr*(p-f)/(next-f), nil
		}
		f, r = next, r+dr
	}
	return 0, fmt.Errorf("enclosed radius %v: %w", p, quantum.ErrFraction)
}
