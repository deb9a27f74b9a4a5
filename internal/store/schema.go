package store

// The destination schema is a fixed external contract: 33 Stations columns
// (plus the surrogate key) and 42 Results columns (plus the surrogate key and
// the DedupKey column this tool adds for idempotent re-runs). Column names
// and order below match the contract exactly; both drivers share them.

// StationColumns is the insert column order for Stations.
var StationColumns = []string{
	"OrgId", "OrgName", "StationId", "StationName", "StationType",
	"StationComment", "HUC8", "Lon_X", "Lat_Y", "HorAcc", "HorAccUnit",
	"HorCollMeth", "HorRef", "Elev", "ElevUnit", "ElevAcc", "ElevAccUnit",
	"ElevMeth", "ElevRef", "StateCode", "CountyCode", "Aquifer", "FmType",
	"AquiferType", "ConstDate", "Depth", "DepthUnit", "HoleDepth",
	"HoleDUnit", "demELEVm", "DataSource", "WIN", "Shape",
}

// ResultColumns is the insert column order for Results.
var ResultColumns = []string{
	"AnalysisDate", "AnalytMeth", "AnalytMethId", "AutoQual", "CAS_Reg",
	"Chrg", "DataSource", "DetectCond", "IdNum", "LabComments", "LabName",
	"Lat_Y", "LimitType", "Lon_X", "MDL", "MDLUnit", "MethodDescript",
	"OrgId", "OrgName", "Param", "ParamGroup", "ProjectId", "QualCode",
	"ResultComment", "ResultStatus", "ResultValue", "SampComment",
	"SampDepth", "SampDepthRef", "SampDepthU", "SampEquip", "SampFrac",
	"SampleDate", "SampleTime", "SampleId", "SampMedia", "SampMeth",
	"SampMethName", "SampType", "StationId", "Unit", "USGSPCode",
	"DedupKey",
}

const postgresDDL = `
CREATE TABLE IF NOT EXISTS "Stations" (
	"Id"             BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	"OrgId"          VARCHAR(20),
	"OrgName"        VARCHAR(100),
	"StationId"      VARCHAR(100) NOT NULL,
	"StationName"    VARCHAR(100),
	"StationType"    VARCHAR(100),
	"StationComment" VARCHAR(1500),
	"HUC8"           VARCHAR(8),
	"Lon_X"          DOUBLE PRECISION,
	"Lat_Y"          DOUBLE PRECISION,
	"HorAcc"         DOUBLE PRECISION,
	"HorAccUnit"     VARCHAR(10),
	"HorCollMeth"    VARCHAR(100),
	"HorRef"         VARCHAR(10),
	"Elev"           DOUBLE PRECISION,
	"ElevUnit"       VARCHAR(10),
	"ElevAcc"        DOUBLE PRECISION,
	"ElevAccUnit"    VARCHAR(10),
	"ElevMeth"       VARCHAR(100),
	"ElevRef"        VARCHAR(10),
	"StateCode"      BIGINT,
	"CountyCode"     BIGINT,
	"Aquifer"        VARCHAR(100),
	"FmType"         VARCHAR(100),
	"AquiferType"    VARCHAR(100),
	"ConstDate"      DATE,
	"Depth"          DOUBLE PRECISION,
	"DepthUnit"      VARCHAR(10),
	"HoleDepth"      DOUBLE PRECISION,
	"HoleDUnit"      VARCHAR(10),
	"demELEVm"       DOUBLE PRECISION,
	"DataSource"     VARCHAR(20),
	"WIN"            VARCHAR(50),
	"Shape"          geometry(Point, 26912),
	UNIQUE ("OrgId", "StationId")
);

CREATE TABLE IF NOT EXISTS "Results" (
	"Id"             BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	"AnalysisDate"   DATE,
	"AnalytMeth"     VARCHAR(150),
	"AnalytMethId"   VARCHAR(50),
	"AutoQual"       VARCHAR(50),
	"CAS_Reg"        VARCHAR(50),
	"Chrg"           DOUBLE PRECISION,
	"DataSource"     VARCHAR(20),
	"DetectCond"     VARCHAR(50),
	"IdNum"          BIGINT,
	"LabComments"    VARCHAR(500),
	"LabName"        VARCHAR(100),
	"Lat_Y"          DOUBLE PRECISION,
	"LimitType"      VARCHAR(250),
	"Lon_X"          DOUBLE PRECISION,
	"MDL"            DOUBLE PRECISION,
	"MDLUnit"        VARCHAR(50),
	"MethodDescript" VARCHAR(100),
	"OrgId"          VARCHAR(50),
	"OrgName"        VARCHAR(150),
	"Param"          VARCHAR(500),
	"ParamGroup"     VARCHAR(50),
	"ProjectId"      VARCHAR(50),
	"QualCode"       VARCHAR(50),
	"ResultComment"  VARCHAR(1500),
	"ResultStatus"   VARCHAR(50),
	"ResultValue"    DOUBLE PRECISION,
	"SampComment"    VARCHAR(500),
	"SampDepth"      DOUBLE PRECISION,
	"SampDepthRef"   VARCHAR(50),
	"SampDepthU"     VARCHAR(50),
	"SampEquip"      VARCHAR(75),
	"SampFrac"       VARCHAR(50),
	"SampleDate"     DATE,
	"SampleTime"     VARCHAR(8),
	"SampleId"       VARCHAR(100),
	"SampMedia"      VARCHAR(30),
	"SampMeth"       VARCHAR(50),
	"SampMethName"   VARCHAR(75),
	"SampType"       VARCHAR(75),
	"StationId"      VARCHAR(100),
	"Unit"           VARCHAR(50),
	"USGSPCode"      VARCHAR(50),
	"DedupKey"       CHAR(32),
	UNIQUE ("DedupKey")
);

CREATE INDEX IF NOT EXISTS results_stationid_idx ON "Results" ("StationId");
CREATE INDEX IF NOT EXISTS results_sampledate_idx ON "Results" ("SampleDate");
`

const sqliteDDL = `
CREATE TABLE IF NOT EXISTS "Stations" (
	"Id"             INTEGER PRIMARY KEY AUTOINCREMENT,
	"OrgId"          TEXT,
	"OrgName"        TEXT,
	"StationId"      TEXT NOT NULL,
	"StationName"    TEXT,
	"StationType"    TEXT,
	"StationComment" TEXT,
	"HUC8"           TEXT,
	"Lon_X"          REAL,
	"Lat_Y"          REAL,
	"HorAcc"         REAL,
	"HorAccUnit"     TEXT,
	"HorCollMeth"    TEXT,
	"HorRef"         TEXT,
	"Elev"           REAL,
	"ElevUnit"       TEXT,
	"ElevAcc"        REAL,
	"ElevAccUnit"    TEXT,
	"ElevMeth"       TEXT,
	"ElevRef"        TEXT,
	"StateCode"      INTEGER,
	"CountyCode"     INTEGER,
	"Aquifer"        TEXT,
	"FmType"         TEXT,
	"AquiferType"    TEXT,
	"ConstDate"      TEXT,
	"Depth"          REAL,
	"DepthUnit"      TEXT,
	"HoleDepth"      REAL,
	"HoleDUnit"      TEXT,
	"demELEVm"       REAL,
	"DataSource"     TEXT,
	"WIN"            TEXT,
	"Shape"          TEXT,
	UNIQUE ("OrgId", "StationId")
);

CREATE TABLE IF NOT EXISTS "Results" (
	"Id"             INTEGER PRIMARY KEY AUTOINCREMENT,
	"AnalysisDate"   TEXT,
	"AnalytMeth"     TEXT,
	"AnalytMethId"   TEXT,
	"AutoQual"       TEXT,
	"CAS_Reg"        TEXT,
	"Chrg"           REAL,
	"DataSource"     TEXT,
	"DetectCond"     TEXT,
	"IdNum"          INTEGER,
	"LabComments"    TEXT,
	"LabName"        TEXT,
	"Lat_Y"          REAL,
	"LimitType"      TEXT,
	"Lon_X"          REAL,
	"MDL"            REAL,
	"MDLUnit"        TEXT,
	"MethodDescript" TEXT,
	"OrgId"          TEXT,
	"OrgName"        TEXT,
	"Param"          TEXT,
	"ParamGroup"     TEXT,
	"ProjectId"      TEXT,
	"QualCode"       TEXT,
	"ResultComment"  TEXT,
	"ResultStatus"   TEXT,
	"ResultValue"    REAL,
	"SampComment"    TEXT,
	"SampDepth"      REAL,
	"SampDepthRef"   TEXT,
	"SampDepthU"     TEXT,
	"SampEquip"      TEXT,
	"SampFrac"       TEXT,
	"SampleDate"     TEXT,
	"SampleTime"     TEXT,
	"SampleId"       TEXT,
	"SampMedia"      TEXT,
	"SampMeth"       TEXT,
	"SampMethName"   TEXT,
	"SampType"       TEXT,
	"StationId"      TEXT,
	"Unit"           TEXT,
	"USGSPCode"      TEXT,
	"DedupKey"       TEXT,
	UNIQUE ("DedupKey")
);

CREATE INDEX IF NOT EXISTS results_stationid_idx ON "Results" ("StationId");
CREATE INDEX IF NOT EXISTS results_sampledate_idx ON "Results" ("SampleDate");
`
