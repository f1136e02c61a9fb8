// Package bridge adapts the structured solar-position routine to a flat
// calling convention: a long list of scalar arguments in, a heap-allocated
// flat result record out, released explicitly by the caller.
//
// The adapter performs no I/O and no logging, holds no state between calls,
// and never interprets the routine's status codes; every invocation is
// independent, so concurrent callers are safe as long as each owns and
// releases its own record exactly once.
package bridge

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/litescript/ls-sunbridge/internal/spa"
)

// Default physical values substituted for omitted atmosphere inputs.
//
// The flat calling convention reserves the 0.0 placeholder (and NaN, for
// callers that can express it) to mean "not provided". A caller who
// genuinely wants a zero pressure or a zero refraction correction cannot say
// so through this layer; the conflation is inherited from the original flat
// boundary and kept for compatibility.
const (
	DefaultPressure     = 820.0  // millibars, high-altitude annual average
	DefaultTemperature  = 11.0   // degrees Celsius
	DefaultAtmosRefract = 0.5667 // degrees
)

// Result is the flat record returned by Compute. Its field order is a
// versioned contract (see layout.go for the packed byte offsets): nine
// float64 outputs followed by the int32 status code.
//
// When Code is nonzero every float64 field is exactly zero; the record is
// never returned partially filled.
type Result struct {
	Zenith          float64 // topocentric zenith angle, degrees
	AzimuthAstro    float64 // azimuth westward from south, degrees
	Azimuth         float64 // azimuth eastward from north, degrees
	Incidence       float64 // surface incidence angle, degrees
	Sunrise         float64 // local sunrise, fractional hours
	Sunset          float64 // local sunset, fractional hours
	SunTransit      float64 // local solar transit, fractional hours
	TransitAltitude float64 // sun altitude at transit, degrees
	EquationOfTime  float64 // equation of time, minutes
	Code            int32   // 0 = success, nonzero = routine status code
}

// CalcFunc is the external calculation routine: it reads a fully populated
// input, writes its outputs in place, and returns an integer status code
// (0 = success). The adapter forwards the code verbatim.
type CalcFunc func(*spa.Data) int

// Adapter converts flat scalar arguments into one calculation call and one
// result record. The zero value is not usable; construct with New.
type Adapter struct {
	calc  CalcFunc
	alloc func() *Result
	pool  *sync.Pool
	live  atomic.Int64
}

// New returns an adapter backed by spa.Calculate.
func New() *Adapter {
	return NewWithCalc(spa.Calculate)
}

// NewWithCalc returns an adapter that invokes the given routine. Used by
// callers that substitute the calculation (tests, alternate ephemerides).
func NewWithCalc(calc CalcFunc) *Adapter {
	pool := &sync.Pool{
		New: func() any { return new(Result) },
	}
	return &Adapter{
		calc:  calc,
		alloc: func() *Result { return pool.Get().(*Result) },
		pool:  pool,
	}
}

// Compute assembles the calculation input from flat arguments, applies
// default substitution for omitted atmosphere values, invokes the routine,
// and returns the address of a freshly allocated result record.
//
// It returns nil only when record allocation fails; a validation or domain
// failure from the routine yields a non-nil record carrying the nonzero
// status code with every float64 field zeroed.
//
// The caller owns the returned record and must pass it to Release exactly
// once. Argument order matches the original boundary signature.
func (a *Adapter) Compute(
	year, month, day, hour, minute int,
	second, timezone float64,
	latitude, longitude, elevation float64,
	pressure, temperature float64,
	deltaUT1, deltaT float64,
	slope, azmRotation, atmosRefract float64,
	function int,
) *Result {
	r := a.alloc()
	if r == nil {
		return nil
	}
	a.live.Add(1)

	d := spa.Data{
		Year:         year,
		Month:        month,
		Day:          day,
		Hour:         hour,
		Minute:       minute,
		Second:       second,
		Timezone:     timezone,
		Latitude:     latitude,
		Longitude:    longitude,
		Elevation:    elevation,
		Pressure:     orDefault(pressure, DefaultPressure),
		Temperature:  orDefault(temperature, DefaultTemperature),
		DeltaUT1:     deltaUT1,
		DeltaT:       deltaT,
		Slope:        slope,
		AzmRotation:  azmRotation,
		AtmosRefract: orDefault(atmosRefract, DefaultAtmosRefract),
		Function:     function,
	}

	code := a.calc(&d)

	if code == 0 {
		r.Zenith = d.Zenith
		r.AzimuthAstro = d.AzimuthAstro
		r.Azimuth = d.Azimuth
		r.Incidence = d.Incidence
		r.Sunrise = d.Sunrise
		r.Sunset = d.Sunset
		r.SunTransit = d.SunTransit
		r.TransitAltitude = d.STA
		r.EquationOfTime = d.EOT
	} else {
		// The routine's outputs are unspecified on failure; never read
		// them. The caller gets deterministic zeros.
		r.Zenith = 0
		r.AzimuthAstro = 0
		r.Azimuth = 0
		r.Incidence = 0
		r.Sunrise = 0
		r.Sunset = 0
		r.SunTransit = 0
		r.TransitAltitude = 0
		r.EquationOfTime = 0
	}
	r.Code = int32(code)

	return r
}

// Release returns a record obtained from Compute. Passing nil is a no-op.
// The record must not be used or released again afterwards.
func (a *Adapter) Release(r *Result) {
	if r == nil {
		return
	}
	*r = Result{}
	a.pool.Put(r)
	a.live.Add(-1)
}

// Live reports the number of records currently held by callers: computes
// minus releases. Intended for leak accounting in tests and health checks.
func (a *Adapter) Live() int64 {
	return a.live.Load()
}

// orDefault implements the placeholder substitution: 0.0 and NaN both read
// as "use the documented default"; any other value passes through unchanged.
func orDefault(v, def float64) float64 {
	if v == 0 || math.IsNaN(v) {
		return def
	}
	return v
}
