package grid

import "strings"

// MarshalText encodes the shape as its lower-case name.
func (s CellShape) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, ErrUnknownShape
	}
	return []byte(strings.ToLower(s.String())), nil
}

// UnmarshalText accepts any case of a shape name.
func (s *CellShape) UnmarshalText(text []byte) error {
	v, err := ParseCellShape(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalText encodes the boundary as its canonical name. Non-canonical
// pairs cannot be written back.
func (b BoundaryType) MarshalText() ([]byte, error) {
	name := b.Name()
	if name == "custom" {
		return nil, ErrUnknownEdgeBehavior
	}
	return []byte(name), nil
}

// UnmarshalText parses a canonical boundary name.
func (b *BoundaryType) UnmarshalText(text []byte) error {
	v, err := ParseBoundaryType(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}
