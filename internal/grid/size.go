package grid

import "fmt"

// Size bounds. Both dimensions must be even and inside [MinSize, MaxSize].
const (
	MinSize = 16
	MaxSize = 16384
)

// Size is a validated grid width and height. The zero value is not a valid
// size; obtain one from NewSize or a preset.
type Size struct {
	width  int
	height int
}

// Presets used by the CLI and the default configs.
var (
	SmallSquare  = mustSize(32, 32)
	MediumSquare = mustSize(64, 64)
	LargeSquare  = mustSize(128, 128)
	Widescreen   = mustSize(160, 90)
)

// NewSize validates and returns a Size.
func NewSize(width, height int) (Size, error) {
	if err := checkDimension("width", width); err != nil {
		return Size{}, err
	}
	if err := checkDimension("height", height); err != nil {
		return Size{}, err
	}
	return Size{width: width, height: height}, nil
}

// NewSquareSize returns an edge x edge Size.
func NewSquareSize(edge int) (Size, error) {
	return NewSize(edge, edge)
}

func checkDimension(name string, v int) error {
	if v < MinSize || v > MaxSize {
		return fmt.Errorf("grid: %s %d outside [%d, %d]: %w", name, v, MinSize, MaxSize, ErrInvalidSize)
	}
	if v%2 != 0 {
		return fmt.Errorf("grid: %s %d is odd: %w", name, v, ErrInvalidSize)
	}
	return nil
}

func mustSize(w, h int) Size {
	s, err := NewSize(w, h)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Size) Width() int  { return s.width }
func (s Size) Height() int { return s.height }

// Area returns width * height.
func (s Size) Area() int {
	return s.width * s.height
}

// Perimeter returns the number of cells on the outer ring.
func (s Size) Perimeter() int {
	return 2*(s.width+s.height) - 4
}

func (s Size) IsSquare() bool    { return s.width == s.height }
func (s Size) IsLandscape() bool { return s.width > s.height }
func (s Size) IsPortrait() bool  { return s.height > s.width }

// AspectRatio returns width / height.
func (s Size) AspectRatio() float64 {
	return float64(s.width) / float64(s.height)
}

// IsZero reports whether s is the unvalidated zero value.
func (s Size) IsZero() bool {
	return s.width == 0 && s.height == 0
}

func (s Size) String() string {
	return fmt.Sprintf("[%dx%d]", s.width, s.height)
}
