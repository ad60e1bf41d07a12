package impact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompositionFor(t *testing.T) {
	tests := []struct {
		density float64
		want    string
	}{
		{917, "ice"},
		{2000, "carbonaceous"},
		{3000, "stone"},
		{5000, "stony_iron"},
		{7800, "iron"},
		{3100, "stone"},
		{8000, "iron"},
		{950, "ice"},
		{4000, CompositionCustom},
		{12000, CompositionCustom},
		{0, CompositionCustom},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CompositionFor(tt.density), "density=%v", tt.density)
	}
}

func TestDensityOf(t *testing.T) {
	for _, c := range Compositions {
		assert.Equal(t, c.Density, DensityOf(c.Name))
		assert.Equal(t, c.Name, CompositionFor(DensityOf(c.Name)))
	}
	assert.Equal(t, 3000.0, DensityOf("unobtainium"))
}

func TestDescribeComposition(t *testing.T) {
	assert.Equal(t, "Icy composition (comets, volatile-rich)", DescribeComposition("ice"))
	assert.Equal(t, "Rocky composition", DescribeComposition(""))
}
