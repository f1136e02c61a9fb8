package spa

import "math"

// sunRadiusDeg is the apparent solar disk radius in degrees. It sets the
// cutoff below which refraction is no longer applied and contributes to the
// rise/set horizon depression.
const sunRadiusDeg = 0.26667

// geoSun holds the apparent geocentric solar position for one instant (TT).
type geoSun struct {
	alphaDeg float64 // apparent right ascension (degrees, 0-360)
	deltaDeg float64 // apparent declination (degrees)
	epsDeg   float64 // true obliquity of the ecliptic (degrees)
	dPsiDeg  float64 // nutation in longitude, low-order term (degrees)
	radiusAU float64 // Earth-Sun distance (AU)
	eotMin   float64 // equation of time (minutes of time)
}

// julianDay computes the Julian Day for a civil date and local clock time.
// The timezone offset converts local time to UT; deltaUT1 shifts UT to UT1.
func julianDay(year, month, day, hour, minute int, second, deltaUT1, timezone float64) float64 {
	y := float64(year)
	m := float64(month)

	dayDec := float64(day) +
		(float64(hour)-timezone+(float64(minute)+(second+deltaUT1)/60)/60)/24

	// January/February count as months 13/14 of the previous year.
	if m < 3 {
		y--
		m += 12
	}

	jd := math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + dayDec - 1524.5

	// Gregorian calendar correction, applied after 1582-10-15.
	if jd > 2299160 {
		a := math.Floor(y / 100)
		jd += 2 - a + math.Floor(a/4)
	}

	return jd
}

// geocentricSun computes the apparent geocentric solar position for a
// Julian Ephemeris Day (terrestrial time). Low-order Meeus ephemeris:
// ~0.01 degrees in longitude, which carries through to zenith/azimuth.
func geocentricSun(jde float64) geoSun {
	T := (jde - 2451545.0) / 36525.0

	// Mean longitude and mean anomaly of the Sun (degrees).
	L0 := norm360(280.46646 + T*(36000.76983+T*0.0003032))
	M := norm360(357.52911 + T*(35999.05029-T*0.0001537))
	Mrad := degToRad(M)

	// Eccentricity of Earth's orbit.
	e := 0.016708634 - T*(0.000042037+T*0.0000001267)

	// Equation of center.
	C := (1.914602-T*(0.004817+T*0.000014))*math.Sin(Mrad) +
		(0.019993-T*0.000101)*math.Sin(2*Mrad) +
		0.000289*math.Sin(3*Mrad)

	trueLon := L0 + C
	trueAnom := M + C

	// Earth-Sun distance in AU.
	R := 1.000001018 * (1 - e*e) / (1 + e*math.Cos(degToRad(trueAnom)))

	// Nutation and aberration via the longitude of the ascending node.
	omega := 125.04 - 1934.136*T
	dPsi := -0.00478 * math.Sin(degToRad(omega))
	lambda := trueLon - 0.00569 + dPsi

	// Obliquity of the ecliptic, corrected for nutation.
	eps := 23.439291 - T*(0.0130042+T*(0.00000016-T*0.000000504)) +
		0.00256*math.Cos(degToRad(omega))

	lambdaRad := degToRad(lambda)
	epsRad := degToRad(eps)

	alpha := radToDeg(math.Atan2(math.Cos(epsRad)*math.Sin(lambdaRad), math.Cos(lambdaRad)))
	alpha = norm360(alpha)
	delta := radToDeg(math.Asin(math.Sin(epsRad) * math.Sin(lambdaRad)))

	// Equation of time: mean longitude minus apparent right ascension,
	// with the standard aberration constant. Four minutes per degree.
	eot := 4 * norm180(L0-0.0057183-alpha+dPsi*math.Cos(epsRad))

	return geoSun{
		alphaDeg: alpha,
		deltaDeg: delta,
		epsDeg:   eps,
		dPsiDeg:  dPsi,
		radiusAU: R,
		eotMin:   eot,
	}
}

// apparentSiderealTime computes the apparent sidereal time at Greenwich in
// degrees for a Julian Day (UT1), using the IAU 1982 mean formula plus the
// equation of the equinoxes.
func apparentSiderealTime(jd float64, g geoSun) float64 {
	T := (jd - 2451545.0) / 36525.0

	gmst := 280.46061837 +
		360.98564736629*(jd-2451545.0) +
		0.000387933*T*T -
		T*T*T/38710000.0

	return norm360(gmst + g.dPsiDeg*math.Cos(degToRad(g.epsDeg)))
}

// topoSun holds the topocentric (observer-relative) solar position.
type topoSun struct {
	zenithDeg       float64 // refraction-corrected zenith angle
	azimuthAstroDeg float64 // azimuth measured westward from south
	azimuthDeg      float64 // azimuth measured eastward from north
	elevationDeg    float64 // refraction-corrected elevation
	hourAngleDeg    float64 // topocentric local hour angle
	deltaPrimeDeg   float64 // topocentric declination
}

// topocentricSun converts a geocentric position to the observer's frame:
// parallax correction for the observer's position on the ellipsoid, then
// horizontal coordinates with atmospheric refraction.
func topocentricSun(g geoSun, nuDeg, latDeg, lonDeg, elevM, pressure, temperature, atmosRefract float64) topoSun {
	lat := degToRad(latDeg)
	delta := degToRad(g.deltaDeg)

	// Observer hour angle.
	H := norm360(nuDeg + lonDeg - g.alphaDeg)
	Hrad := degToRad(H)

	// Equatorial horizontal parallax of the Sun.
	xi := degToRad(8.794 / (3600 * g.radiusAU))

	// Observer's position on the WGS-era reference ellipsoid.
	u := math.Atan(0.99664719 * math.Tan(lat))
	x := math.Cos(u) + elevM/6378140*math.Cos(lat)
	y := 0.99664719*math.Sin(u) + elevM/6378140*math.Sin(lat)

	// Parallax in right ascension.
	denom := math.Cos(delta) - x*math.Sin(xi)*math.Cos(Hrad)
	dAlpha := math.Atan2(-x*math.Sin(xi)*math.Sin(Hrad), denom)

	deltaPrime := math.Atan2((math.Sin(delta)-y*math.Sin(xi))*math.Cos(dAlpha), denom)
	HPrime := Hrad - dAlpha

	// Geometric elevation.
	e0 := radToDeg(math.Asin(
		math.Sin(lat)*math.Sin(deltaPrime) +
			math.Cos(lat)*math.Cos(deltaPrime)*math.Cos(HPrime)))

	e := e0 + refractionCorrection(e0, pressure, temperature, atmosRefract)

	// Azimuth westward from south (astronomers' convention), then the
	// navigators' azimuth eastward from north.
	azAstro := norm360(radToDeg(math.Atan2(
		math.Sin(HPrime),
		math.Cos(HPrime)*math.Sin(lat)-math.Tan(deltaPrime)*math.Cos(lat))))
	az := norm360(azAstro + 180)

	return topoSun{
		zenithDeg:       90 - e,
		azimuthAstroDeg: azAstro,
		azimuthDeg:      az,
		elevationDeg:    e,
		hourAngleDeg:    radToDeg(HPrime),
		deltaPrimeDeg:   radToDeg(deltaPrime),
	}
}

// refractionCorrection returns the atmospheric refraction correction in
// degrees (Bennett's formula scaled by pressure and temperature). No
// correction is applied once the sun is fully below the depressed horizon.
func refractionCorrection(e0, pressure, temperature, atmosRefract float64) float64 {
	if e0 < -(sunRadiusDeg + atmosRefract) {
		return 0
	}
	return (pressure / 1010) * (283 / (273 + temperature)) *
		1.02 / (60 * math.Tan(degToRad(e0+10.3/(e0+5.11))))
}

// geometricAltitude is the unrefracted solar altitude for a latitude,
// topocentric declination, and local hour angle, all in degrees.
func geometricAltitude(latDeg, deltaDeg, hDeg float64) float64 {
	lat := degToRad(latDeg)
	delta := degToRad(deltaDeg)
	h := degToRad(hDeg)
	return radToDeg(math.Asin(
		math.Sin(lat)*math.Sin(delta) + math.Cos(lat)*math.Cos(delta)*math.Cos(h)))
}

// norm360 normalizes an angle to [0, 360).
func norm360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// norm180 normalizes an angle to (-180, 180].
func norm180(a float64) float64 {
	a = norm360(a)
	if a > 180 {
		a -= 360
	}
	return a
}

// normHour24 normalizes a fractional hour to [0, 24).
func normHour24(h float64) float64 {
	h = math.Mod(h, 24)
	if h < 0 {
		h += 24
	}
	return h
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
