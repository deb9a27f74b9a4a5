package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildShapeReferencePoint(t *testing.T) {
	// Surveyed reference: (-114, 40) in WGS-84 lands at this easting and
	// northing in EPSG 26912.
	x, y := projectUTM12N(-114, 40)

	assert.InDelta(t, 243900.352024, x, 0.01)
	assert.InDelta(t, 4432069.05679, y, 0.01)
}

func TestBuildShapeCentralMeridian(t *testing.T) {
	// On the central meridian the easting is exactly the false easting.
	x, _ := projectUTM12N(-111, 39)
	assert.InDelta(t, 500000.0, x, 1e-6)
}

func TestBuildShapeWKT(t *testing.T) {
	shape, err := BuildShape(-114, 40)
	require.NoError(t, err)
	assert.Equal(t, "POINT (243900.352024 4432069.056790)", shape)
}

func TestBuildShapeRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name     string
		lon, lat float64
	}{
		{"longitude too small", -181, 40},
		{"longitude too large", 181, 40},
		{"latitude too small", -114, -91},
		{"latitude too large", -114, 91},
		{"swapped lon lat", 40.5, -111.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, err := BuildShape(tt.lon, tt.lat)

			assert.Empty(t, shape)
			var geomErr *GeometryError
			require.ErrorAs(t, err, &geomErr)
			assert.Equal(t, tt.lon, geomErr.Lon)
			assert.Equal(t, tt.lat, geomErr.Lat)
		})
	}
}

func TestBuildShapeAcceptsRangeBoundaries(t *testing.T) {
	_, err := BuildShape(-180, -90)
	assert.NoError(t, err)

	_, err = BuildShape(180, 90)
	assert.NoError(t, err)
}

func TestGeometryErrorMessage(t *testing.T) {
	err := &GeometryError{Lon: 40.5, Lat: -111.8}
	assert.Contains(t, err.Error(), "40.5")
	assert.Contains(t, err.Error(), "-111.8")
}
