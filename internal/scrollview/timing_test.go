package scrollview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimingCurveEndpoints(t *testing.T) {
	for _, c := range []TimingCurve{Linear, EaseIn, EaseOut, EaseInEaseOut} {
		t.Run(c.String(), func(t *testing.T) {
			assert.Equal(t, 0.0, c.Ease(-1))
			assert.Equal(t, 0.0, c.Ease(0))
			assert.Equal(t, 1.0, c.Ease(1))
			assert.Equal(t, 1.0, c.Ease(2))

			prev := 0.0
			for i := 1; i <= 100; i++ {
				v := c.Ease(float64(i) / 100)
				assert.GreaterOrEqual(t, v, prev-1e-9, "monotonic at %d", i)
				prev = v
			}
		})
	}
}

func TestTimingCurveShape(t *testing.T) {
	assert.InDelta(t, 0.3, Linear.Ease(0.3), 1e-9)
	assert.Less(t, EaseIn.Ease(0.25), 0.25)
	assert.Greater(t, EaseOut.Ease(0.25), 0.25)
	assert.InDelta(t, 0.5, EaseInEaseOut.Ease(0.5), 1e-4)
	assert.Less(t, EaseInEaseOut.Ease(0.2), 0.2)
	assert.Greater(t, EaseInEaseOut.Ease(0.8), 0.8)
}

func TestParseTimingCurve(t *testing.T) {
	for _, c := range []TimingCurve{Linear, EaseIn, EaseOut, EaseInEaseOut} {
		got, err := ParseTimingCurve(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	got, err := ParseTimingCurve("")
	require.NoError(t, err)
	assert.Equal(t, EaseInEaseOut, got)

	_, err = ParseTimingCurve("bounce")
	assert.Error(t, err)
}
