package hoarding

import "fmt"

// DeviceClass selects the layout constants for the kind of screen hosting the overlay.
type DeviceClass int

const (
	// Compact is a phone-sized (or small terminal) host.
	Compact DeviceClass = iota
	// Regular is a tablet-sized (or large terminal) host.
	Regular
)

// Terminals at least this large are treated as Regular by ClassifySize.
const (
	regularMinWidth  = 120
	regularMinHeight = 36
)

func (c DeviceClass) String() string {
	switch c {
	case Compact:
		return "compact"
	case Regular:
		return "regular"
	default:
		return fmt.Sprintf("DeviceClass(%d)", int(c))
	}
}

// ParseDeviceClass parses "compact" or "regular".
func ParseDeviceClass(s string) (DeviceClass, error) {
	switch s {
	case "compact":
		return Compact, nil
	case "regular":
		return Regular, nil
	}
	return Compact, fmt.Errorf("unknown device class %q", s)
}

// ClassifySize resolves the device class from a terminal size in cells.
func ClassifySize(width, height int) DeviceClass {
	if width >= regularMinWidth && height >= regularMinHeight {
		return Regular
	}
	return Compact
}

// Metrics holds the layout constants of an overlay. Spacings and heights are
// in terminal cells; ratios are fractions of the host size.
type Metrics struct {
	EdgeSpacing        int
	Spacing            int
	ImageSizeRatio     float64
	ButtonHeight       int
	ButtonWidthRatio   float64
	ButtonCornerRadius int
}

// MetricsFor returns the constants for a device class.
func MetricsFor(c DeviceClass) Metrics {
	if c == Regular {
		return Metrics{
			EdgeSpacing:        2,
			Spacing:            2,
			ImageSizeRatio:     0.3,
			ButtonHeight:       5,
			ButtonWidthRatio:   0.2,
			ButtonCornerRadius: 7,
		}
	}
	return Metrics{
		EdgeSpacing:        1,
		Spacing:            1,
		ImageSizeRatio:     0.2,
		ButtonHeight:       3,
		ButtonWidthRatio:   0.45,
		ButtonCornerRadius: 5,
	}
}
