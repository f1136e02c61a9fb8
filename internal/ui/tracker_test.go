package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-sunbridge/internal/bridge"
	"github.com/litescript/ls-sunbridge/internal/config"
)

func testModel() Model {
	cfg := config.Default()
	cfg.Observer = config.Observer{
		Latitude:  39.742476,
		Longitude: -105.1786,
		Elevation: 1830.14,
		Timezone:  -7,
	}
	return New(cfg, bridge.New())
}

func TestViewBeforeFirstResult(t *testing.T) {
	view := testModel().View()

	if !strings.Contains(view, "Computing") {
		t.Errorf("initial view missing computing indicator:\n%s", view)
	}
	if !strings.Contains(view, "39.7425") {
		t.Errorf("initial view missing observer latitude:\n%s", view)
	}
}

func TestViewWithResult(t *testing.T) {
	m := testModel()

	updated, _ := m.Update(resultMsg{
		at: time.Date(2003, 10, 17, 12, 30, 30, 0, time.FixedZone("MST", -7*3600)),
		result: bridge.Result{
			Zenith:          50.111622,
			Azimuth:         194.340241,
			Sunrise:         6.212067,
			Sunset:          17.338667,
			SunTransit:      11.768045,
			TransitAltitude: 40.0125,
			EquationOfTime:  14.641503,
		},
	})
	view := updated.View()

	for _, want := range []string{"SUN UP", "50.11", "194.34", "06:12:43", "11:46:05", "17:20:19"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestViewWithFailure(t *testing.T) {
	m := testModel()

	updated, _ := m.Update(resultMsg{
		at:     time.Now(),
		result: bridge.Result{Code: 2},
	})
	view := updated.View()

	if !strings.Contains(view, "code 2") {
		t.Errorf("failure view missing status code:\n%s", view)
	}
	if strings.Contains(view, "Sunrise") {
		t.Errorf("failure view should not render position fields:\n%s", view)
	}
}

func TestQuitKey(t *testing.T) {
	m := testModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q produced no command")
	}
	if msg := cmd(); msg != (tea.QuitMsg{}) {
		t.Errorf("q produced %T, want tea.QuitMsg", msg)
	}
}

func TestPauseToggle(t *testing.T) {
	m := testModel()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	paused := updated.(Model)
	if !paused.paused {
		t.Fatal("space did not pause")
	}

	updated, _ = paused.Update(tea.KeyMsg{Type: tea.KeySpace})
	if updated.(Model).paused {
		t.Error("space did not resume")
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{6.212067, "06:12:43"},
		{11.768045, "11:46:05"},
		{17.338667, "17:20:19"},
		{0, "--:--:--"},
		{23.99999, "00:00:00"},
	}

	for _, tt := range tests {
		if got := FormatHours(tt.in); got != tt.want {
			t.Errorf("FormatHours(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompassPoint(t *testing.T) {
	tests := []struct {
		az   float64
		want string
	}{
		{0, "N"},
		{90, "E"},
		{180, "S"},
		{194.34, "SSW"},
		{270, "W"},
		{359, "N"},
	}

	for _, tt := range tests {
		if got := compassPoint(tt.az); got != tt.want {
			t.Errorf("compassPoint(%v) = %q, want %q", tt.az, got, tt.want)
		}
	}
}
