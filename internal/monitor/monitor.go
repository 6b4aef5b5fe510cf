package monitor

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"

	"github.com/monset/monset/internal/setup"
)

// Monitor is one connected display in a single poll's snapshot. It is
// rebuilt from scratch every poll; only ID is stable across polls, because
// it is derived from the display's EDID rather than server handles.
type Monitor struct {
	// ID is the EDID-derived identity, never 0.
	ID uint32
	// Name is the output's reported name, for diagnostics only.
	Name string
	// Current is the CRTC state already on the server, nil when the output
	// is unconfigured and needs initial placement.
	Current *CrtcState
	// Output and Crtc are the handles configuration is applied against.
	Output randr.Output
	Crtc   randr.Crtc
	// BestMode and its unrotated dimensions, fixed at discovery time.
	BestMode randr.Mode
	Width    uint16
	Height   uint16
	// Physical size in millimeters.
	MmWidth  uint32
	MmHeight uint32
}

// Apply pushes cfg to the server if it differs from the monitor's current
// configuration and reports whether a write was issued. An unconfigured
// monitor is always configured. The mode is never reconsidered here; it was
// chosen during discovery.
func (m *Monitor) Apply(d Display, cfg setup.MonitorConfig) (bool, error) {
	if m.Current != nil &&
		cfg.X == m.Current.X && cfg.Y == m.Current.Y &&
		uint16(cfg.Rotate) == m.Current.Rotation {
		return false, nil
	}

	err := d.ConfigureCrtc(m.Crtc, cfg.X, cfg.Y, m.BestMode, uint16(cfg.Rotate), []randr.Output{m.Output})
	if err != nil {
		return false, fmt.Errorf("configure crtc %d for output %s: %w", m.Crtc, m.Name, err)
	}
	return true, nil
}
