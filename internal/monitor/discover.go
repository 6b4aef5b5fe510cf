package monitor

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
)

// edidProperty is the output property holding the raw hardware identity
// block.
const edidProperty = "EDID"

// ErrUnresolvedIdentity is returned when a monitor's EDID hashes to the
// reserved id 0.
var ErrUnresolvedIdentity = errors.New("monitor identity resolved to zero")

// Discover builds a fresh snapshot of every connected monitor, in output
// enumeration order. Stale CRTC assignments on disconnected outputs are
// cleared first so their CRTCs return to the free pool within the same
// pass. Any per-output failure aborts the whole discovery; a partial
// snapshot is never returned.
func Discover(d Display) ([]Monitor, error) {
	res, err := d.Resources()
	if err != nil {
		return nil, fmt.Errorf("get screen resources: %w", err)
	}

	infos, err := fetchOutputs(d, res.Outputs)
	if err != nil {
		return nil, err
	}

	pool := newCrtcPool(res.Crtcs, infos)

	var monitors []Monitor
	for _, info := range infos {
		if !info.connected() {
			continue
		}

		m, err := buildMonitor(d, info, res.Modes, pool)
		if err != nil {
			return nil, err
		}
		monitors = append(monitors, *m)
	}

	return monitors, nil
}

// fetchOutputs reads every output's info, clearing CRTCs still assigned to
// outputs that are no longer connected. If anything was cleared the outputs
// are fetched again: the first batch still reports the stale assignments.
func fetchOutputs(d Display, outputs []randr.Output) ([]*OutputInfo, error) {
	infos, err := getOutputInfos(d, outputs)
	if err != nil {
		return nil, err
	}

	cleared := false
	for _, info := range infos {
		if !info.connected() && info.Crtc != 0 {
			if err := d.DisableCrtc(info.Crtc); err != nil {
				return nil, fmt.Errorf("clear stale crtc %d on output %s: %w", info.Crtc, info.Name, err)
			}
			cleared = true
		}
	}

	if cleared {
		return getOutputInfos(d, outputs)
	}
	return infos, nil
}

func getOutputInfos(d Display, outputs []randr.Output) ([]*OutputInfo, error) {
	infos := make([]*OutputInfo, 0, len(outputs))
	for _, o := range outputs {
		info, err := d.OutputInfo(o)
		if err != nil {
			return nil, fmt.Errorf("get output info for %d: %w", o, err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// buildMonitor assembles one snapshot entry. An output that already owns a
// CRTC keeps it and contributes its current geometry; an unconfigured
// output consumes a CRTC from the free pool.
func buildMonitor(d Display, info *OutputInfo, modes []randr.ModeInfo, pool *crtcPool) (*Monitor, error) {
	id, err := resolveIdentity(d, info)
	if err != nil {
		return nil, err
	}

	best, width, height, err := bestMode(info, modes, d.Screen())
	if err != nil {
		return nil, fmt.Errorf("output %s: %w", info.Name, err)
	}

	m := &Monitor{
		ID:       id,
		Name:     info.Name,
		Output:   info.Output,
		BestMode: best,
		Width:    width,
		Height:   height,
		MmWidth:  info.MmWidth,
		MmHeight: info.MmHeight,
	}

	if info.Crtc == 0 {
		crtc, ok := pool.take()
		if !ok {
			return nil, fmt.Errorf("output %s needs a CRTC: %w", info.Name, ErrCrtcExhausted)
		}
		m.Crtc = crtc
		return m, nil
	}

	state, err := d.CrtcState(info.Crtc)
	if err != nil {
		return nil, fmt.Errorf("get crtc state for output %s: %w", info.Name, err)
	}
	m.Crtc = info.Crtc
	m.Current = state
	return m, nil
}

// resolveIdentity reads the output's EDID property and hashes it into the
// stable monitor id.
func resolveIdentity(d Display, info *OutputInfo) (uint32, error) {
	prop, err := d.PropertyData(info.Output, edidProperty)
	if err != nil {
		return 0, fmt.Errorf("output %s: %w", info.Name, err)
	}
	if prop.Format != 8 || prop.Type != xproto.AtomInteger {
		return 0, fmt.Errorf("output %s: EDID property has type %d format %d, want 8-bit integer",
			info.Name, prop.Type, prop.Format)
	}

	id := Identity(prop.Data)
	if id == 0 {
		return 0, fmt.Errorf("output %s: %w", info.Name, ErrUnresolvedIdentity)
	}
	return id, nil
}
