// Package spa computes topocentric solar position: zenith and azimuth
// angles, surface incidence, sunrise/sunset/transit times, and the equation
// of time, from a fully populated input record.
//
// Calculate validates its input and reports problems through an integer
// status code rather than an error value, so callers on the far side of a
// flat calling convention can forward the code verbatim. Zero means success;
// each nonzero code identifies the first offending input field (see the
// validation table in validate).
package spa

import "math"

// Function selector values. They choose which output groups Calculate
// populates; fields outside the selected groups are left untouched.
const (
	FuncZA    = iota // zenith and azimuth angles
	FuncZAInc        // zenith, azimuth, and surface incidence
	FuncZARTS        // zenith, azimuth, and rise/transit/set
	FuncAll          // all outputs
)

// ParseFunction maps a mode name to a function selector. Unknown names
// select FuncAll, the compute-everything mode.
func ParseFunction(s string) int {
	switch s {
	case "za":
		return FuncZA
	case "za_inc", "inc":
		return FuncZAInc
	case "za_rts", "rts":
		return FuncZARTS
	default:
		return FuncAll
	}
}

// Data is the full input and output record for one calculation. Every input
// field must be set before calling Calculate; there is no partial-input call.
type Data struct {
	// Date and time, in the local zone given by Timezone.
	Year   int     // 4-digit year, -2000 to 6000
	Month  int     // 1 to 12
	Day    int     // 1 to 31
	Hour   int     // 0 to 24
	Minute int     // 0 to 59
	Second float64 // 0 to <60, fractional seconds allowed

	// Time corrections.
	DeltaUT1 float64 // UT1-UTC, fractional seconds, -1 to 1
	DeltaT   float64 // TT-UT1, seconds, |value| <= 8000
	Timezone float64 // offset from UT, hours, -18 to 18

	// Observer location.
	Longitude float64 // degrees, east positive, -180 to 180
	Latitude  float64 // degrees, north positive, -90 to 90
	Elevation float64 // meters above sea level

	// Atmosphere.
	Pressure     float64 // annual average local pressure, millibars, 0 to 5000
	Temperature  float64 // annual average local temperature, Celsius
	AtmosRefract float64 // refraction at sunrise/sunset, degrees, |value| <= 5

	// Surface orientation, used for the incidence angle.
	Slope       float64 // surface tilt from horizontal, degrees, |value| <= 360
	AzmRotation float64 // surface azimuth rotation from south, degrees, |value| <= 360

	// Function selects which outputs to compute (FuncZA..FuncAll).
	Function int

	// Outputs.
	Zenith       float64 // topocentric zenith angle, degrees
	AzimuthAstro float64 // topocentric azimuth, westward from south, degrees
	Azimuth      float64 // topocentric azimuth, eastward from north, degrees
	Incidence    float64 // surface incidence angle, degrees
	SunTransit   float64 // local solar transit (solar noon), fractional hours
	Sunrise      float64 // local sunrise, fractional hours
	Sunset       float64 // local sunset, fractional hours
	STA          float64 // sun transit altitude, degrees
	EOT          float64 // equation of time, minutes
}

// Calculate computes the solar position outputs selected by d.Function,
// writing them into d. It returns 0 on success or a nonzero validation code
// identifying the first out-of-range input field.
func Calculate(d *Data) int {
	if code := validate(d); code != 0 {
		return code
	}

	jd := julianDay(d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second, d.DeltaUT1, d.Timezone)

	g := geocentricSun(jd + d.DeltaT/86400)
	nu := apparentSiderealTime(jd, g)

	topo := topocentricSun(g, nu,
		d.Latitude, d.Longitude, d.Elevation,
		d.Pressure, d.Temperature, d.AtmosRefract)

	d.Zenith = topo.zenithDeg
	d.AzimuthAstro = topo.azimuthAstroDeg
	d.Azimuth = topo.azimuthDeg

	if d.Function == FuncZAInc || d.Function == FuncAll {
		d.Incidence = incidenceAngle(topo.zenithDeg, topo.azimuthAstroDeg, d.Slope, d.AzmRotation)
	}

	if d.Function == FuncZARTS || d.Function == FuncAll {
		calculateRTS(d)
	}

	return 0
}

// incidenceAngle computes the angle between the sun and the normal of a
// tilted surface. Zenith and slope in degrees; azimuthAstro and azmRotation
// both measured westward from south.
func incidenceAngle(zenith, azimuthAstro, slope, azmRotation float64) float64 {
	z := degToRad(zenith)
	s := degToRad(slope)
	cosI := math.Cos(z)*math.Cos(s) +
		math.Sin(s)*math.Sin(z)*math.Cos(degToRad(azimuthAstro-azmRotation))
	if cosI > 1 {
		cosI = 1
	} else if cosI < -1 {
		cosI = -1
	}
	return radToDeg(math.Acos(cosI))
}

// validate checks every input range and returns the code of the first
// violation. Codes match the routine's published table so they can cross the
// boundary unchanged.
func validate(d *Data) int {
	switch {
	case d.Year < -2000 || d.Year > 6000:
		return 1
	case d.Month < 1 || d.Month > 12:
		return 2
	case d.Day < 1 || d.Day > 31:
		return 3
	case d.Hour < 0 || d.Hour > 24:
		return 4
	case d.Minute < 0 || d.Minute > 59:
		return 5
	case d.Second < 0 || d.Second >= 60:
		return 6
	case d.Hour == 24 && d.Minute > 0:
		return 5
	case d.Hour == 24 && d.Second > 0:
		return 6
	case math.Abs(d.DeltaT) > 8000:
		return 7
	case math.Abs(d.Timezone) > 18:
		return 8
	case math.Abs(d.Longitude) > 180:
		return 9
	case math.Abs(d.Latitude) > 90:
		return 10
	case d.Elevation < -6500000:
		return 11
	case d.Pressure < 0 || d.Pressure > 5000:
		return 12
	case d.Temperature <= -273 || d.Temperature > 6000:
		return 13
	case (d.Function == FuncZAInc || d.Function == FuncAll) && math.Abs(d.Slope) > 360:
		return 14
	case (d.Function == FuncZAInc || d.Function == FuncAll) && math.Abs(d.AzmRotation) > 360:
		return 15
	case math.Abs(d.AtmosRefract) > 5:
		return 16
	case d.DeltaUT1 <= -1 || d.DeltaUT1 >= 1:
		return 17
	}
	return 0
}
