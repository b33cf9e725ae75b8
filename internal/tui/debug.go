package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/figaroapp/figaro/internal/drag"
	"github.com/figaroapp/figaro/internal/reconcile"
)

// DebugLogger logs TUI state, input events, and reconciliation to a file.
type DebugLogger struct {
	mu      sync.Mutex
	file    *os.File
	enabled bool
	seq     int
}

// Global debug logger instance
var debugLog *DebugLogger

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "figaro-debug.log"

// InitDebugLogger initializes the debug logger if debug mode is enabled.
func InitDebugLogger(enabled bool) error {
	if !enabled {
		debugLog = &DebugLogger{enabled: false}
		return nil
	}

	// Fixed name in the current directory, easy to find.
	f, err := os.Create(DebugLogPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	debugLog = &DebugLogger{
		file:    f,
		enabled: true,
	}

	debugLog.log("DEBUG_START", map[string]any{
		"log_file": DebugLogPath,
		"time":     time.Now().Format(time.RFC3339),
	})

	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugLog != nil && debugLog.file != nil {
		debugLog.log("DEBUG_END", map[string]any{
			"time": time.Now().Format(time.RFC3339),
		})
		_ = debugLog.file.Close()
	}
}

// log writes a structured log entry.
func (d *DebugLogger) log(event string, data map[string]any) {
	if d == nil || !d.enabled || d.file == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	entry := map[string]any{
		"seq":   d.seq,
		"ts":    time.Now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(d.file, "%s\n", b)
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("KEY_PRESS", map[string]any{
		"key":  msg.String(),
		"type": fmt.Sprintf("%T", msg.Type),
	})
}

// LogDrag logs a drag session transition.
func LogDrag(s *drag.Session, action string) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	data := map[string]any{
		"action":     action,
		"state":      stateString(s.State()),
		"generation": s.Generation(),
	}
	if a := s.Appointment(); a != nil {
		data["appointment_id"] = a.ID
		data["client"] = truncateStr(a.ClientName, 30)
	}
	if h := s.Hovered(); h != nil {
		data["hovered"] = h.Key()
		data["hover_valid"] = s.HoverValid()
	}
	debugLog.log("DRAG", data)
}

// LogHover logs a hover evaluation.
func LogHover(s *drag.Session) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	data := map[string]any{
		"state":         stateString(s.State()),
		"generation":    s.Generation(),
		"hover_valid":   s.HoverValid(),
		"near_magnetic": s.NearMagnetic(),
		"magnetic_dist": s.MagneticDistance(),
	}
	if h := s.Hovered(); h != nil {
		data["hovered"] = h.Key()
	}
	debugLog.log("HOVER", data)
}

// LogProjection logs the reconcile manager's current projection.
func LogProjection(m *reconcile.Manager, action string) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	appts := m.All()
	positions := make([]map[string]any, 0, len(appts))
	for _, a := range appts {
		positions = append(positions, map[string]any{
			"id":     a.ID,
			"client": truncateStr(a.ClientName, 20),
			"start":  a.StartTime.Format(time.RFC3339),
			"status": string(a.Status),
		})
	}
	debugLog.log("PROJECTION", map[string]any{
		"action":       action,
		"count":        len(appts),
		"pending":      m.PendingCount(),
		"appointments": positions,
	})
}

// LogStaleResult logs a backend result discarded as stale.
func LogStaleResult(id string, gen uint64) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("STALE_RESULT", map[string]any{
		"appointment_id": id,
		"generation":     gen,
	})
}

// LogReconcile logs how a backend response was reconciled.
func LogReconcile(id string, committed bool, note string) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("RECONCILE", map[string]any{
		"appointment_id": id,
		"committed":      committed,
		"note":           note,
	})
}

// LogSkipped logs appointments excluded from the index for missing start
// times.
func LogSkipped(ids []string) {
	if debugLog == nil || !debugLog.enabled || len(ids) == 0 {
		return
	}
	debugLog.log("INDEX_SKIPPED", map[string]any{
		"appointment_ids": ids,
		"count":           len(ids),
	})
}

// LogError logs an error.
func LogError(context string, err error) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("ERROR", map[string]any{
		"context": context,
		"error":   err.Error(),
	})
}

// stateString returns a string representation of a drag state.
func stateString(s drag.State) string {
	switch s {
	case drag.StateIdle:
		return "Idle"
	case drag.StateDragging:
		return "Dragging"
	case drag.StateHoveringValid:
		return "HoveringValid"
	case drag.StateHoveringInvalid:
		return "HoveringInvalid"
	case drag.StateDropped:
		return "Dropped"
	case drag.StateCommitting:
		return "Committing"
	case drag.StateDeferred:
		return "Deferred"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// truncateStr truncates a string to max length.
func truncateStr(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
