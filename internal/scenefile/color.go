package scenefile

import (
	"encoding/json"
	"fmt"

	"spectral-renderer/internal/spectrum"
)

// ColorDoc is the spectrum shorthand of scene files. A color may be written
// as a palette name, a scaled palette entry, an explicit 36-entry array, an
// sRGB or XYZ triple, or a constant. On save, identical values collapse back
// to the shortest form.
type ColorDoc struct {
	Value spectrum.Spectrum
}

type colorObject struct {
	Mul      *float64    `json:"mul,omitempty"`
	Color    *string     `json:"color,omitempty"`
	SRGB     *[3]float64 `json:"srgb,omitempty"`
	XYZ      *[3]float64 `json:"xyz,omitempty"`
	Constant *float64    `json:"constant,omitempty"`
}

func (c *ColorDoc) UnmarshalJSON(data []byte) error {
	// palette name
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		color, err := spectrum.ParseColor(name)
		if err != nil {
			return err
		}
		c.Value = spectrum.FromColor(color)
		return nil
	}

	// explicit data: the full 36-entry spectral form, or the bin count of
	// the active color mode
	var array []float64
	if err := json.Unmarshal(data, &array); err == nil {
		if len(array) == spectrum.SpectralSize {
			var raw [spectrum.SpectralSize]float64
			copy(raw[:], array)
			c.Value = spectrum.FromSpectralData(raw)
			return nil
		}
		if len(array) == spectrum.Size {
			copy(c.Value[:], array)
			return nil
		}
		return fmt.Errorf("scenefile: color array needs %d entries, got %d", spectrum.SpectralSize, len(array))
	}

	var obj colorObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("scenefile: unable to parse color: %w", err)
	}

	switch {
	case obj.Color != nil:
		color, err := spectrum.ParseColor(*obj.Color)
		if err != nil {
			return err
		}
		c.Value = spectrum.FromColor(color)
		if obj.Mul != nil {
			c.Value = c.Value.Scale(*obj.Mul)
		}
		return nil

	case obj.SRGB != nil:
		value, ok := spectrum.FromSRGBTriple(*obj.SRGB)
		if !ok {
			return fmt.Errorf("scenefile: srgb colors are not representable in the spectral build")
		}
		c.Value = value
		return nil

	case obj.XYZ != nil:
		value, ok := spectrum.FromXYZTriple(*obj.XYZ)
		if !ok {
			return fmt.Errorf("scenefile: xyz colors are not representable in the spectral build")
		}
		c.Value = value
		return nil

	case obj.Constant != nil:
		c.Value = spectrum.Splat(*obj.Constant)
		return nil
	}

	return fmt.Errorf("scenefile: unable to parse color from %s", data)
}

func (c ColorDoc) MarshalJSON() ([]byte, error) {
	// palette match
	for _, color := range spectrum.Variants() {
		if c.Value == spectrum.FromColor(color) {
			return json.Marshal(color.String())
		}
	}

	// constant match
	first := c.Value[0]
	constant := true
	for _, v := range c.Value[1:] {
		if v != first {
			constant = false
			break
		}
	}
	if constant {
		return json.Marshal(colorObject{Constant: &first})
	}

	return json.Marshal(c.Value[:])
}
