package tui

import (
	"time"

	"github.com/figaroapp/figaro/internal/drag"
	"github.com/figaroapp/figaro/internal/schedule"
)

// Grid geometry. The calendar is a time column followed by seven day
// columns, each row spanning slotMinutes of the day.
const (
	slotMinutes  = 30
	timeColWidth = 6
	headerLines  = 2 // title line + day header line
	daysPerWeek  = 7
)

// Pixel dimensions of one terminal cell. Pointer distances for magnetic
// snapping are measured in these units so the radius stays meaningful
// across terminal sizes.
const (
	cellPxWidth  = 10.0
	cellPxHeight = 20.0
)

// Cell identifies a position in the week grid.
type Cell struct {
	Day int // 0=Monday, 6=Sunday
	Row int // Row index, each row is slotMinutes long
}

// layout holds the resolved grid dimensions for the current terminal size
// and configured working hours.
type layout struct {
	dayStartMin int // minutes from midnight
	dayEndMin   int
	colWidth    int
}

func newLayout(dayStart, dayEnd string, colWidth int) layout {
	return layout{
		dayStartMin: schedule.TimeToMinutes(dayStart),
		dayEndMin:   schedule.TimeToMinutes(dayEnd),
		colWidth:    colWidth,
	}
}

// rows returns the number of slot rows between opening and closing time.
func (l layout) rows() int {
	if l.dayEndMin <= l.dayStartMin {
		return 0
	}
	return (l.dayEndMin - l.dayStartMin) / slotMinutes
}

// cellAt maps terminal coordinates to a grid cell. The y coordinate is
// relative to the top of the grid area (header excluded, scroll applied
// by the caller).
func (l layout) cellAt(x, gridY int) (Cell, bool) {
	if x < timeColWidth || l.colWidth <= 0 {
		return Cell{}, false
	}
	day := (x - timeColWidth) / l.colWidth
	if day < 0 || day >= daysPerWeek {
		return Cell{}, false
	}
	if gridY < 0 || gridY >= l.rows() {
		return Cell{}, false
	}
	return Cell{Day: day, Row: gridY}, true
}

// slotFor converts a grid cell to the schedule slot it represents.
func (l layout) slotFor(weekStart time.Time, c Cell) schedule.Slot {
	day := weekStart.AddDate(0, 0, c.Day)
	minutes := l.dayStartMin + c.Row*slotMinutes
	return schedule.Slot{Day: day, Hour: minutes / 60, Minute: minutes % 60}
}

// cellOf returns the grid cell covering the given time, if it falls within
// the displayed week and working hours.
func (l layout) cellOf(weekStart time.Time, t time.Time) (Cell, bool) {
	day := int(t.Sub(weekStart).Hours() / 24)
	if day < 0 || day >= daysPerWeek {
		return Cell{}, false
	}
	minutes := t.Hour()*60 + t.Minute()
	if minutes < l.dayStartMin || minutes >= l.dayEndMin {
		return Cell{}, false
	}
	return Cell{Day: day, Row: (minutes - l.dayStartMin) / slotMinutes}, true
}

// pointerPx converts terminal coordinates to pixel space.
func pointerPx(x, y int) drag.Point {
	return drag.Point{
		X: (float64(x) + 0.5) * cellPxWidth,
		Y: (float64(y) + 0.5) * cellPxHeight,
	}
}

// cellCenterPx returns the pixel-space center of a grid cell, using the
// same screen coordinates the pointer reports.
func (l layout) cellCenterPx(c Cell, gridTop, scrollOffset int) drag.Point {
	screenX := timeColWidth + c.Day*l.colWidth
	screenY := gridTop + c.Row - scrollOffset
	return drag.Point{
		X: (float64(screenX) + float64(l.colWidth)/2.0) * cellPxWidth,
		Y: (float64(screenY) + 0.5) * cellPxHeight,
	}
}
