package domain

import (
	"fmt"
	"math"
)

// All station geometries are stored in EPSG 26912 (UTM zone 12N, NAD83), the
// spatial reference the destination schema fixes for the Shape column. Source
// coordinates arrive as WGS-84 decimal degrees.
const (
	SRID = 26912

	// GRS80 ellipsoid (NAD83).
	semiMajorAxis = 6378137.0
	flattening    = 1.0 / 298.257222101

	utmScaleFactor   = 0.9996
	utmFalseEasting  = 500000.0
	zone12CentralLon = -111.0
)

// BuildShape validates WGS-84 coordinates and returns the point geometry as
// EPSG 26912 WKT. Coordinates outside the valid longitude/latitude range
// return a GeometryError; callers keep the record and store a null geometry.
func BuildShape(lon, lat float64) (string, error) {
	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return "", &GeometryError{Lon: lon, Lat: lat}
	}
	x, y := projectUTM12N(lon, lat)
	return PointWKT(x, y), nil
}

// PointWKT formats an easting/northing pair as point WKT with six decimal
// places, matching the precision of previously seeded geometries.
func PointWKT(x, y float64) string {
	return fmt.Sprintf("POINT (%.6f %.6f)", x, y)
}

// projectUTM12N converts WGS-84 degrees to UTM zone 12N meters using the
// Snyder transverse Mercator series on the GRS80 ellipsoid. The series is
// accurate to well under a centimeter inside the zone, which covers the
// entire collection area.
func projectUTM12N(lon, lat float64) (x, y float64) {
	phi := lat * math.Pi / 180
	lambda := (lon - zone12CentralLon) * math.Pi / 180

	a := semiMajorAxis
	e2 := flattening * (2 - flattening)
	ep2 := e2 / (1 - e2)

	sinPhi := math.Sin(phi)
	cosPhi := math.Cos(phi)
	tanPhi := math.Tan(phi)

	n := a / math.Sqrt(1-e2*sinPhi*sinPhi)
	t := tanPhi * tanPhi
	c := ep2 * cosPhi * cosPhi
	aa := lambda * cosPhi

	m := meridianArc(a, e2, phi)

	x = utmScaleFactor*n*(aa+
		(1-t+c)*math.Pow(aa, 3)/6+
		(5-18*t+t*t+72*c-58*ep2)*math.Pow(aa, 5)/120) + utmFalseEasting

	y = utmScaleFactor * (m + n*tanPhi*
		(aa*aa/2+
			(5-t+9*c+4*c*c)*math.Pow(aa, 4)/24+
			(61-58*t+t*t+600*c-330*ep2)*math.Pow(aa, 6)/720))

	return x, y
}

// meridianArc is the distance along the meridian from the equator to latitude
// phi (radians).
func meridianArc(a, e2, phi float64) float64 {
	e4 := e2 * e2
	e6 := e4 * e2

	return a * ((1-e2/4-3*e4/64-5*e6/256)*phi -
		(3*e2/8+3*e4/32+45*e6/1024)*math.Sin(2*phi) +
		(15*e4/256+45*e6/1024)*math.Sin(4*phi) -
		(35*e6/3072)*math.Sin(6*phi))
}
