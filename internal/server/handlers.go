package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/litescript/ls-sunbridge/internal/bridge"
	"github.com/litescript/ls-sunbridge/internal/spa"
)

// PositionResponse is the JSON shape of one computed solar position.
type PositionResponse struct {
	Zenith          float64 `json:"zenith"`
	AzimuthAstro    float64 `json:"azimuth_astro"`
	Azimuth         float64 `json:"azimuth"`
	Incidence       float64 `json:"incidence"`
	Sunrise         float64 `json:"sunrise"`
	Sunset          float64 `json:"sunset"`
	SunTransit      float64 `json:"sun_transit"`
	TransitAltitude float64 `json:"transit_altitude"`
	EquationOfTime  float64 `json:"equation_of_time"`
	Code            int32   `json:"code"`
}

// toResponse copies a result record into its JSON shape.
func toResponse(r *bridge.Result) PositionResponse {
	return PositionResponse{
		Zenith:          r.Zenith,
		AzimuthAstro:    r.AzimuthAstro,
		Azimuth:         r.Azimuth,
		Incidence:       r.Incidence,
		Sunrise:         r.Sunrise,
		Sunset:          r.Sunset,
		SunTransit:      r.SunTransit,
		TransitAltitude: r.TransitAltitude,
		EquationOfTime:  r.EquationOfTime,
		Code:            r.Code,
	}
}

// handlePosition computes the solar position for the query parameters,
// falling back to the configured observer and the current time for anything
// omitted. Atmosphere parameters left out take the boundary defaults via the
// 0.0 placeholder path.
func (s *Server) handlePosition(c *gin.Context) {
	obs := s.cfg.Observer
	q := queryReader{c: c}

	// The timezone is resolved first: the defaulted calendar fields must
	// describe the current instant in the effective zone, not the
	// configured one.
	timezone := q.floatParam("timezone", obs.Timezone)
	now := time.Now().In(time.FixedZone("local", int(timezone*3600)))

	year := q.intParam("year", now.Year())
	month := q.intParam("month", int(now.Month()))
	day := q.intParam("day", now.Day())
	hour := q.intParam("hour", now.Hour())
	minute := q.intParam("minute", now.Minute())
	second := q.floatParam("second", float64(now.Second()))
	lat := q.floatParam("latitude", obs.Latitude)
	lon := q.floatParam("longitude", obs.Longitude)
	elev := q.floatParam("elevation", obs.Elevation)
	pressure := q.floatParam("pressure", s.cfg.Atmosphere.Pressure)
	temperature := q.floatParam("temperature", s.cfg.Atmosphere.Temperature)
	deltaUT1 := q.floatParam("delta_ut1", 0)
	deltaT := q.floatParam("delta_t", 0)
	slope := q.floatParam("slope", s.cfg.Surface.Slope)
	azmRotation := q.floatParam("azm_rotation", s.cfg.Surface.AzmRotation)
	atmosRefract := q.floatParam("atmos_refract", s.cfg.Atmosphere.Refraction)
	function := q.intParam("function", spa.FuncAll)

	if q.err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": q.err.Error()})
		return
	}

	r := s.adapter.Compute(
		year, month, day, hour, minute, second, timezone,
		lat, lon, elev, pressure, temperature,
		deltaUT1, deltaT, slope, azmRotation, atmosRefract, function)
	if r == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "result allocation failed"})
		return
	}
	defer s.adapter.Release(r)

	if r.Code != 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "calculation failed",
			"code":  r.Code,
		})
		return
	}

	c.JSON(http.StatusOK, toResponse(r))
}

// queryReader parses optional query parameters, remembering the first error.
type queryReader struct {
	c   *gin.Context
	err error
}

func (q *queryReader) intParam(name string, def int) int {
	raw, ok := q.c.GetQuery(name)
	if !ok || q.err != nil {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		q.err = &paramError{name: name, value: raw}
		return def
	}
	return v
}

func (q *queryReader) floatParam(name string, def float64) float64 {
	raw, ok := q.c.GetQuery(name)
	if !ok || q.err != nil {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		q.err = &paramError{name: name, value: raw}
		return def
	}
	return v
}

// paramError reports an unparseable query parameter.
type paramError struct {
	name  string
	value string
}

func (e *paramError) Error() string {
	return "invalid value " + strconv.Quote(e.value) + " for parameter " + strconv.Quote(e.name)
}
