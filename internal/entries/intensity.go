package entries

import "fmt"

// Intensity describes the perceived effort of an exercise.
type Intensity int

const (
	IntensityMinimum Intensity = iota
	IntensityLow
	IntensityNormal
	IntensityHigh
	IntensityMaximum
	IntensityIntervals
)

var intensityNames = [...]string{"minimum", "low", "normal", "high", "maximum", "intervals"}

func (i Intensity) String() string {
	if i < 0 || int(i) >= len(intensityNames) {
		return fmt.Sprintf("intensity(%d)", int(i))
	}
	return intensityNames[i]
}

// ParseIntensity converts the wire/query representation back to an Intensity.
func ParseIntensity(s string) (Intensity, error) {
	for i, name := range intensityNames {
		if s == name {
			return Intensity(i), nil
		}
	}
	return 0, fmt.Errorf("unknown intensity %q", s)
}

// MarshalJSON encodes the intensity as its lowercase name.
func (i Intensity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + i.String() + `"`), nil
}

// UnmarshalJSON decodes an intensity from its lowercase name.
func (i *Intensity) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("intensity must be a JSON string, got %s", data)
	}
	parsed, err := ParseIntensity(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
