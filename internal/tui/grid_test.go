package tui

import (
	"testing"
	"time"

	"github.com/figaroapp/figaro/internal/drag"
)

func TestLayoutRows(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected int
	}{
		{name: "full day", start: "09:00", end: "19:00", expected: 20},
		{name: "half day", start: "09:00", end: "13:00", expected: 8},
		{name: "uneven closing", start: "08:30", end: "18:00", expected: 19},
		{name: "inverted hours", start: "19:00", end: "09:00", expected: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLayout(tt.start, tt.end, defaultColWidth)
			if got := l.rows(); got != tt.expected {
				t.Errorf("rows() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestCellAt(t *testing.T) {
	l := newLayout("09:00", "19:00", 18)

	tests := []struct {
		name  string
		x     int
		gridY int
		want  Cell
		ok    bool
	}{
		{name: "first cell", x: timeColWidth, gridY: 0, want: Cell{Day: 0, Row: 0}, ok: true},
		{name: "mid column", x: timeColWidth + 18 + 9, gridY: 5, want: Cell{Day: 1, Row: 5}, ok: true},
		{name: "last day", x: timeColWidth + 6*18, gridY: 19, want: Cell{Day: 6, Row: 19}, ok: true},
		{name: "time column", x: 3, gridY: 5, ok: false},
		{name: "past last day", x: timeColWidth + 7*18, gridY: 5, ok: false},
		{name: "above grid", x: timeColWidth, gridY: -1, ok: false},
		{name: "below grid", x: timeColWidth, gridY: 20, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.cellAt(tt.x, tt.gridY)
			if ok != tt.ok {
				t.Fatalf("cellAt(%d, %d) ok = %v, want %v", tt.x, tt.gridY, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("cellAt(%d, %d) = %+v, want %+v", tt.x, tt.gridY, got, tt.want)
			}
		})
	}
}

func TestSlotForAndCellOfRoundTrip(t *testing.T) {
	l := newLayout("09:00", "19:00", 18)
	weekStart := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local) // Monday

	for _, c := range []Cell{
		{Day: 0, Row: 0},
		{Day: 3, Row: 10},
		{Day: 6, Row: 19},
	} {
		slot := l.slotFor(weekStart, c)
		back, ok := l.cellOf(weekStart, slot.Time())
		if !ok {
			t.Fatalf("cellOf(%v) not in grid", slot.Time())
		}
		if back != c {
			t.Errorf("round trip %+v -> %v -> %+v", c, slot.Time(), back)
		}
	}
}

func TestSlotForTimes(t *testing.T) {
	l := newLayout("09:00", "19:00", 18)
	weekStart := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)

	slot := l.slotFor(weekStart, Cell{Day: 3, Row: 10})
	want := time.Date(2026, 9, 3, 14, 0, 0, 0, time.Local)
	if !slot.Time().Equal(want) {
		t.Errorf("slotFor(day 3, row 10).Time() = %v, want %v", slot.Time(), want)
	}
}

func TestCellOfOutsideHours(t *testing.T) {
	l := newLayout("09:00", "19:00", 18)
	weekStart := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		t    time.Time
	}{
		{name: "before opening", t: time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)},
		{name: "after closing", t: time.Date(2026, 9, 1, 19, 0, 0, 0, time.Local)},
		{name: "previous week", t: time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)},
		{name: "next week", t: time.Date(2026, 9, 8, 10, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := l.cellOf(weekStart, tt.t); ok {
				t.Errorf("cellOf(%v) in grid, want outside", tt.t)
			}
		})
	}
}

func TestPointerNearCellCenterIsMagnetic(t *testing.T) {
	l := newLayout("09:00", "19:00", 18)
	c := Cell{Day: 1, Row: 5}
	gridTop, scroll := 2, 0

	screenX := timeColWidth + c.Day*l.colWidth
	screenY := gridTop + c.Row

	// Pointer in the middle of the cell sits within the magnetic radius
	// of its center; a pointer at the cell's left edge does not.
	center := l.cellCenterPx(c, gridTop, scroll)
	nearDist := drag.Distance(pointerPx(screenX+l.colWidth/2, screenY), center)
	farDist := drag.Distance(pointerPx(screenX, screenY), center)

	if nearDist > drag.MagneticRadius {
		t.Errorf("center pointer distance = %.1f, want <= %.1f", nearDist, drag.MagneticRadius)
	}
	if farDist <= drag.MagneticRadius {
		t.Errorf("edge pointer distance = %.1f, want > %.1f", farDist, drag.MagneticRadius)
	}
}
