// Detection parameter types and ranges
package vision

// Slider-enforced parameter ranges.
const (
	MinStride = 1
	MaxStride = 30

	MinLowThreshold  = 0
	MaxLowThreshold  = 300
	MinHighThreshold = 0
	MaxHighThreshold = 400
)

// Built-in defaults.
const (
	DefaultStride        = 12
	DefaultLowThreshold  = 80
	DefaultHighThreshold = 160
)

// Params holds the three user-adjustable detection knobs. The pipeline reads
// a snapshot and never mutates it. The thresholds are passed to the edge
// detector as given: low may exceed high and the detector orders the pair
// itself, so no cross-field correction happens here.
type Params struct {
	Stride        int
	LowThreshold  float64
	HighThreshold float64
}

// DefaultParams returns the startup parameter set.
func DefaultParams() Params {
	return Params{
		Stride:        DefaultStride,
		LowThreshold:  DefaultLowThreshold,
		HighThreshold: DefaultHighThreshold,
	}
}

// Clamp forces every field into its slider range.
func (p *Params) Clamp() {
	if p.Stride < MinStride {
		p.Stride = MinStride
	}
	if p.Stride > MaxStride {
		p.Stride = MaxStride
	}
	if p.LowThreshold < MinLowThreshold {
		p.LowThreshold = MinLowThreshold
	}
	if p.LowThreshold > MaxLowThreshold {
		p.LowThreshold = MaxLowThreshold
	}
	if p.HighThreshold < MinHighThreshold {
		p.HighThreshold = MinHighThreshold
	}
	if p.HighThreshold > MaxHighThreshold {
		p.HighThreshold = MaxHighThreshold
	}
}
