// Package domain models water-chemistry monitoring data in the destination
// vocabulary of the UGS water-chemistry database: Stations (fixed sampling
// locations) and Results (individual analytical measurements).
//
// # Data Sources
//
// Records arrive from five upstream programs, each with its own extract
// shape: WQP (EPA/USGS Water Quality Portal CSV downloads), SDWIS (Safe
// Drinking Water Information System), DOGM (Division of Oil, Gas and
// Mining), DWR (Division of Water Rights), and UGS laboratory extracts.
// Source-specific parsing and column renames live in the source and mapper
// packages; everything in this package speaks the destination vocabulary.
//
// # Identifier Conventions
//
// A station is uniquely identified by (OrgId, StationId). Portal extracts
// carry some organizations twice, once under the bare id and once with an
// EPA "_WQX" suffix ("UTAHDWQ_WQX-4904410"); both name the same physical
// location, so the suffix is stripped before keying. See [NormalizeStationID].
//
// Results have no natural key in the destination schema. [ResultDedupKey]
// derives a deterministic content key from StationId, Param, SampleDate,
// SampleTime and ResultValue so re-running an extract is idempotent.
//
// # Geometry
//
// Source coordinates are WGS-84 decimal degrees. Stored geometries are point
// WKT in EPSG 26912 (UTM zone 12N, NAD83), the spatial reference fixed by
// the destination schema. Coordinates outside the valid WGS-84 range produce
// a [GeometryError] and a null geometry; the station record itself still
// loads. See [BuildShape].
//
// # Non-detects
//
// Laboratories report analytes below the method detection limit with a
// detection-condition text ("Not Detected") or a qualifier code ("U", "ND")
// instead of a numeric value. Such rows are valid results; rows with neither
// a numeric value nor a recognized qualifier fail validation. See
// [IsNonDetect].
//
// # Charge Balance
//
// Complete major-ion samples yield derived rows: total cation and anion
// milliequivalents and the percent charge-balance error, computed from
// equivalent weights of the nine major ions. See [ChargeBalance].
package domain
