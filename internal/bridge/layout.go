package bridge

import (
	"encoding/binary"
	"errors"
	"math"
)

// Packed byte offsets of the v1 result record: nine little-endian float64
// fields followed by one little-endian int32 status code, no padding. A
// reader on the far side of the boundary can decode the record from these
// offsets without a schema.
const (
	OffZenith          = 0
	OffAzimuthAstro    = 8
	OffAzimuth         = 16
	OffIncidence       = 24
	OffSunrise         = 32
	OffSunset          = 40
	OffSunTransit      = 48
	OffTransitAltitude = 56
	OffEquationOfTime  = 64
	OffCode            = 72

	// RecordSize is the total packed size in bytes.
	RecordSize = 76
)

// ErrRecordSize reports a buffer that does not hold exactly one packed record.
var ErrRecordSize = errors.New("bridge: buffer is not one packed result record")

// MarshalBinary encodes the record into its packed v1 layout.
func (r *Result) MarshalBinary() ([]byte, error) {
	buf := make([]byte, RecordSize)
	putF64 := func(off int, v float64) {
		binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(v))
	}
	putF64(OffZenith, r.Zenith)
	putF64(OffAzimuthAstro, r.AzimuthAstro)
	putF64(OffAzimuth, r.Azimuth)
	putF64(OffIncidence, r.Incidence)
	putF64(OffSunrise, r.Sunrise)
	putF64(OffSunset, r.Sunset)
	putF64(OffSunTransit, r.SunTransit)
	putF64(OffTransitAltitude, r.TransitAltitude)
	putF64(OffEquationOfTime, r.EquationOfTime)
	binary.LittleEndian.PutUint32(buf[OffCode:], uint32(r.Code))
	return buf, nil
}

// UnmarshalBinary decodes a packed v1 record.
func (r *Result) UnmarshalBinary(data []byte) error {
	if len(data) != RecordSize {
		return ErrRecordSize
	}
	f64 := func(off int) float64 {
		return math.Float64frombits(binary.LittleEndian.Uint64(data[off:]))
	}
	r.Zenith = f64(OffZenith)
	r.AzimuthAstro = f64(OffAzimuthAstro)
	r.Azimuth = f64(OffAzimuth)
	r.Incidence = f64(OffIncidence)
	r.Sunrise = f64(OffSunrise)
	r.Sunset = f64(OffSunset)
	r.SunTransit = f64(OffSunTransit)
	r.TransitAltitude = f64(OffTransitAltitude)
	r.EquationOfTime = f64(OffEquationOfTime)
	r.Code = int32(binary.LittleEndian.Uint32(data[OffCode:]))
	return nil
}
