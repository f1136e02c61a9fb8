package bridge

import (
	"math"
	"testing"

	"github.com/litescript/ls-sunbridge/internal/spa"
)

// computeGolden pushes the published reference case through the adapter.
func computeGolden(a *Adapter, function int) *Result {
	return a.Compute(
		2003, 10, 17, 12, 30,
		30, -7,
		39.742476, -105.1786, 1830.14,
		820, 11,
		0, 67,
		30, -10, 0.5667,
		function,
	)
}

func TestComputeSuccess(t *testing.T) {
	a := New()

	r := computeGolden(a, spa.FuncAll)
	if r == nil {
		t.Fatal("Compute() returned nil on a valid call")
	}
	defer a.Release(r)

	if r.Code != 0 {
		t.Fatalf("Code = %d, want 0", r.Code)
	}
	if math.Abs(r.Zenith-50.11) > 0.1 {
		t.Errorf("Zenith = %.4f°, want ≈ 50.11°", r.Zenith)
	}
	if r.Sunrise == 0 || r.Sunset == 0 || r.SunTransit == 0 {
		t.Errorf("rise/transit/set not populated: %.4f / %.4f / %.4f",
			r.Sunrise, r.SunTransit, r.Sunset)
	}
}

func TestComputeFailureZeroFill(t *testing.T) {
	a := New()

	// month=13 trips the routine's validation.
	r := a.Compute(2003, 13, 17, 12, 30, 30, -7,
		39.742476, -105.1786, 1830.14, 820, 11, 0, 67, 30, -10, 0.5667,
		spa.FuncAll)
	if r == nil {
		t.Fatal("Compute() returned nil for a calculation failure; nil is reserved for allocation failure")
	}
	defer a.Release(r)

	if r.Code == 0 {
		t.Fatal("Code = 0, want nonzero for month=13")
	}
	if want := (Result{Code: r.Code}); *r != want {
		t.Errorf("failure record not zero-filled: %+v", *r)
	}
}

func TestCodePassThrough(t *testing.T) {
	// The adapter forwards the routine's status code verbatim.
	a := NewWithCalc(func(*spa.Data) int { return 42 })

	r := computeGolden(a, spa.FuncAll)
	if r == nil {
		t.Fatal("Compute() returned nil")
	}
	defer a.Release(r)

	if r.Code != 42 {
		t.Errorf("Code = %d, want 42", r.Code)
	}
}

func TestFieldMappingFidelity(t *testing.T) {
	// Outputs must cross the boundary bit for bit.
	a := NewWithCalc(func(d *spa.Data) int {
		d.Zenith = math.Pi
		d.AzimuthAstro = math.E
		d.Azimuth = math.Sqrt2
		d.Incidence = math.Ln2
		d.Sunrise = 6.212067
		d.Sunset = 17.338667
		d.SunTransit = 11.768045
		d.STA = 40.0125
		d.EOT = 14.641503
		return 0
	})

	r := computeGolden(a, spa.FuncAll)
	if r == nil {
		t.Fatal("Compute() returned nil")
	}
	defer a.Release(r)

	want := Result{
		Zenith:          math.Pi,
		AzimuthAstro:    math.E,
		Azimuth:         math.Sqrt2,
		Incidence:       math.Ln2,
		Sunrise:         6.212067,
		Sunset:          17.338667,
		SunTransit:      11.768045,
		TransitAltitude: 40.0125,
		EquationOfTime:  14.641503,
	}
	if *r != want {
		t.Errorf("record = %+v, want %+v", *r, want)
	}
}

func TestInputAssembly(t *testing.T) {
	// Every flat argument must land in its input field unchanged.
	var got spa.Data
	a := NewWithCalc(func(d *spa.Data) int {
		got = *d
		return 0
	})

	r := computeGolden(a, spa.FuncZARTS)
	if r == nil {
		t.Fatal("Compute() returned nil")
	}
	a.Release(r)

	want := spa.Data{
		Year: 2003, Month: 10, Day: 17, Hour: 12, Minute: 30,
		Second: 30, Timezone: -7,
		Latitude: 39.742476, Longitude: -105.1786, Elevation: 1830.14,
		Pressure: 820, Temperature: 11,
		DeltaUT1: 0, DeltaT: 67,
		Slope: 30, AzmRotation: -10, AtmosRefract: 0.5667,
		Function: spa.FuncZARTS,
	}
	if got != want {
		t.Errorf("assembled input = %+v, want %+v", got, want)
	}
}

func TestDefaultSubstitution(t *testing.T) {
	tests := []struct {
		name                            string
		pressure, temperature, refract  float64
		wantPressure, wantTemp, wantRef float64
	}{
		{"placeholders", 0, 0, 0, DefaultPressure, DefaultTemperature, DefaultAtmosRefract},
		{"explicit defaults", 820, 11, 0.5667, 820, 11, 0.5667},
		{"nan markers", math.NaN(), math.NaN(), math.NaN(), DefaultPressure, DefaultTemperature, DefaultAtmosRefract},
		{"pass through", 1013.25, 25, 0.48, 1013.25, 25, 0.48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got spa.Data
			a := NewWithCalc(func(d *spa.Data) int {
				got = *d
				return 0
			})

			r := a.Compute(2003, 10, 17, 12, 30, 30, -7,
				39.742476, -105.1786, 1830.14,
				tt.pressure, tt.temperature,
				0, 67, 30, -10, tt.refract,
				spa.FuncAll)
			if r == nil {
				t.Fatal("Compute() returned nil")
			}
			a.Release(r)

			if got.Pressure != tt.wantPressure {
				t.Errorf("Pressure = %v, want %v", got.Pressure, tt.wantPressure)
			}
			if got.Temperature != tt.wantTemp {
				t.Errorf("Temperature = %v, want %v", got.Temperature, tt.wantTemp)
			}
			if got.AtmosRefract != tt.wantRef {
				t.Errorf("AtmosRefract = %v, want %v", got.AtmosRefract, tt.wantRef)
			}
		})
	}
}

func TestDefaultSubstitutionIdempotence(t *testing.T) {
	// The placeholder and the explicit default must produce identical
	// results.
	a := New()

	placeholder := a.Compute(2003, 10, 17, 12, 30, 30, -7,
		39.742476, -105.1786, 1830.14, 0, 0, 0, 67, 30, -10, 0,
		spa.FuncAll)
	explicit := computeGolden(a, spa.FuncAll)
	if placeholder == nil || explicit == nil {
		t.Fatal("Compute() returned nil")
	}
	defer a.Release(placeholder)
	defer a.Release(explicit)

	if *placeholder != *explicit {
		t.Errorf("placeholder result %+v != explicit default result %+v", *placeholder, *explicit)
	}
}

func TestAllocationFailure(t *testing.T) {
	a := New()
	a.alloc = func() *Result { return nil }

	if r := computeGolden(a, spa.FuncAll); r != nil {
		t.Errorf("Compute() = %+v, want nil when allocation fails", r)
	}
	if n := a.Live(); n != 0 {
		t.Errorf("Live() = %d after allocation failure, want 0", n)
	}
}

func TestReleaseNil(t *testing.T) {
	a := New()
	a.Release(nil) // must not panic
	if n := a.Live(); n != 0 {
		t.Errorf("Live() = %d, want 0", n)
	}
}

func TestAllocationAccounting(t *testing.T) {
	a := New()

	const n = 16
	records := make([]*Result, 0, n)
	for i := 0; i < n; i++ {
		r := computeGolden(a, spa.FuncZA)
		if r == nil {
			t.Fatal("Compute() returned nil")
		}
		records = append(records, r)
	}

	if got := a.Live(); got != n {
		t.Fatalf("Live() = %d, want %d", got, n)
	}

	for _, r := range records {
		a.Release(r)
	}
	if got := a.Live(); got != 0 {
		t.Errorf("Live() = %d after releasing all records, want 0", got)
	}
}

func TestConcurrentCompute(t *testing.T) {
	// Calls are independent; concurrent callers each own their record.
	a := New()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				r := computeGolden(a, spa.FuncZA)
				if r == nil || r.Code != 0 {
					t.Error("concurrent Compute() failed")
					return
				}
				a.Release(r)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	if got := a.Live(); got != 0 {
		t.Errorf("Live() = %d after balanced compute/release, want 0", got)
	}
}
