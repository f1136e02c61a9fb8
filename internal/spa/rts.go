package spa

import "math"

// calculateRTS fills SunTransit, Sunrise, Sunset, STA, and EOT for the
// calendar date in d. Times are local fractional hours in [0, 24).
//
// The events are found by interpolation: the apparent sun is sampled at 0h TT
// of the previous, current, and next day, a first guess for each event comes
// from the transit estimate and the hour-angle half-arc, and each guess is
// corrected once from the interpolated altitude at the guess. Event day
// fractions are kept in [0, 1), so an event past the UT day boundary is
// evaluated at the wrapped fraction of the current day.
func calculateRTS(d *Data) {
	// 0h UT of the calendar date.
	jd0 := julianDay(d.Year, d.Month, d.Day, 0, 0, 0, 0, 0)

	// Daily samples of apparent right ascension and declination bracketing
	// the date, for interpolation at the event fractions.
	var alpha, delta [3]float64
	for i := range alpha {
		g := geocentricSun(jd0 + float64(i-1) + d.DeltaT/86400)
		alpha[i] = g.alphaDeg
		delta[i] = g.deltaDeg
	}
	nu0 := apparentSiderealTime(jd0, geocentricSun(jd0+d.DeltaT/86400))

	// Interpolated sun and local hour angle at a fraction m of the UT day.
	sample := func(m float64) (deltaP, hourAngle, altitude float64) {
		nu := nu0 + 360.985647*m
		n := m + d.DeltaT/86400
		alphaP := interpDaily(alpha, n)
		deltaP = interpDaily(delta, n)
		hourAngle = norm180(nu + d.Longitude - alphaP)
		altitude = geometricAltitude(d.Latitude, deltaP, hourAngle)
		return
	}

	// Approximate transit from the middle sample, corrected by the residual
	// hour angle at the guess.
	m0 := norm360(alpha[1]-d.Longitude-nu0) / 360
	_, hT, altT := sample(m0)
	transit := m0 - hT/360

	d.SunTransit = normHour24(24*transit + d.Timezone)
	d.STA = altT
	d.EOT = geocentricSun(jd0 + transit + d.DeltaT/86400).eotMin

	// Horizon depression at rise/set: solar disk radius plus refraction.
	h0p := -(sunRadiusDeg + d.AtmosRefract)

	halfArc, ok := riseSetHourAngle(d.Latitude, delta[1], h0p)
	if !ok {
		// The sun never crosses the depressed horizon on this date
		// (polar day or polar night). Rise and set stay at zero;
		// transit and its altitude are still reported.
		return
	}

	rise := refineEvent(d, sample, dayFrac(m0-halfArc/360), h0p)
	set := refineEvent(d, sample, dayFrac(m0+halfArc/360), h0p)

	d.Sunrise = normHour24(24*rise + d.Timezone)
	d.Sunset = normHour24(24*set + d.Timezone)
}

// refineEvent corrects a rise or set day-fraction guess by the interpolated
// altitude residual against the depressed horizon at the guess itself.
func refineEvent(d *Data, sample func(float64) (float64, float64, float64), m, h0p float64) float64 {
	deltaP, hourAngle, altitude := sample(m)
	return m + (altitude-h0p)/
		(360*math.Cos(degToRad(deltaP))*math.Cos(degToRad(d.Latitude))*math.Sin(degToRad(hourAngle)))
}

// interpDaily evaluates a quadratic through three consecutive daily samples
// at fraction n of the middle day. A jump of 2 degrees or more between
// samples is a 0/360 right-ascension crossing and is unwrapped.
func interpDaily(v [3]float64, n float64) float64 {
	a := v[1] - v[0]
	b := v[2] - v[1]
	if math.Abs(a) >= 2 {
		a = norm360(a)
	}
	if math.Abs(b) >= 2 {
		b = norm360(b)
	}
	return v[1] + n*(a+b+(b-a)*n)/2
}

// dayFrac normalizes a fraction of a day to [0, 1).
func dayFrac(m float64) float64 {
	m = math.Mod(m, 1)
	if m < 0 {
		m++
	}
	return m
}

// riseSetHourAngle returns the half day-arc in degrees: the hour angle at
// which the sun's center reaches altitude h0p. Reports false when the sun
// never reaches that altitude (circumpolar or never-rises).
func riseSetHourAngle(latDeg, deltaDeg, h0p float64) (float64, bool) {
	lat := degToRad(latDeg)
	delta := degToRad(deltaDeg)

	cosH0 := (math.Sin(degToRad(h0p)) - math.Sin(lat)*math.Sin(delta)) /
		(math.Cos(lat) * math.Cos(delta))

	if cosH0 < -1 || cosH0 > 1 {
		return 0, false
	}
	return radToDeg(math.Acos(cosH0)), true
}
