package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSize(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"minimum", 16, 16, false},
		{"maximum", 16384, 16384, false},
		{"landscape", 160, 90, false},
		{"too small", 14, 16, true},
		{"too large", 16, 16386, true},
		{"odd width", 17, 16, true},
		{"odd height", 16, 33, true},
		{"zero", 0, 0, true},
		{"negative", -16, 16, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewSize(tc.w, tc.h)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidSize)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.w, s.Width())
			assert.Equal(t, tc.h, s.Height())
		})
	}
}

func TestSizeDerived(t *testing.T) {
	s, err := NewSize(32, 16)
	require.NoError(t, err)

	assert.Equal(t, 512, s.Area())
	assert.Equal(t, 92, s.Perimeter())
	assert.True(t, s.IsLandscape())
	assert.False(t, s.IsPortrait())
	assert.False(t, s.IsSquare())
	assert.InDelta(t, 2.0, s.AspectRatio(), 1e-9)
	assert.Equal(t, "[32x16]", s.String())

	assert.True(t, SmallSquare.IsSquare())
	assert.Equal(t, 32, SmallSquare.Width())
}
