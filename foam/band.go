// Package foam rasterizes sparse, aging foam bands into dense density
// fields and orchestrates smoothing and multi-threshold contour
// extraction over them. It is a pure per-frame computation layer: the
// upstream wave simulation owns the band list, the renderer consumes
// the extracted geometry.
package foam

// DefaultIntensity is applied to segments whose intensity is unset.
const DefaultIntensity = 0.5

// Segment is one horizontal stretch of whitewater within a band.
// StartX and EndX are normalized [0,1]; the caller clamps them.
type Segment struct {
	StartX, EndX float32
	// Intensity is the local strength in [0,1]. Negative means unset
	// and falls back to DefaultIntensity.
	Intensity float32
}

// intensity resolves the effective segment intensity.
func (s Segment) intensity() float32 {
	if s.Intensity < 0 {
		return DefaultIntensity
	}
	return s.Intensity
}

// Band is one horizontal deposit of foam. Bands are owned and aged by
// the wave simulation; this package treats them as read-only within a
// frame.
type Band struct {
	Y         float32 // vertical position in canvas pixels
	Opacity   float32 // decay factor in [0,1]; <= 0 means dissipated
	SpawnTime float64 // creation timestamp in seconds
	Segments  []Segment
}

// Age returns the band's age at the given time, clamped to >= 0.
func (b *Band) Age(now float64) float32 {
	age := now - b.SpawnTime
	if age < 0 {
		age = 0
	}
	return float32(age)
}

// Variant selects how an aging band's footprint grows and fades
// before rasterization.
type Variant uint8

const (
	// VariantBasic rasterizes segments as-is, with no time dependency.
	VariantBasic Variant = iota
	// VariantExpanding widens segments with age and surrounds the
	// fading core with a quadratic falloff halo.
	VariantExpanding
	// VariantRowSpread expands horizontally and also bleeds into
	// adjacent grid rows, the most physical and most expensive variant.
	VariantRowSpread
	// VariantAgeBlur builds the basic field and defers dispersion to
	// the smoother via a recommended blur pass count.
	VariantAgeBlur
)

func (v Variant) String() string {
	switch v {
	case VariantBasic:
		return "basic"
	case VariantExpanding:
		return "expanding"
	case VariantRowSpread:
		return "row_spread"
	case VariantAgeBlur:
		return "age_blur"
	}
	return "unknown"
}

// ParseVariant maps a config string onto a Variant. Unknown names
// fall back to basic.
func ParseVariant(name string) Variant {
	switch name {
	case "expanding":
		return VariantExpanding
	case "row_spread":
		return VariantRowSpread
	case "age_blur":
		return VariantAgeBlur
	}
	return VariantBasic
}
