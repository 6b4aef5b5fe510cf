package monitor

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
)

// fakeDisplay implements Display in memory, mimicking server semantics:
// ConfigureCrtc assigns the CRTC to its output and records the geometry,
// DisableCrtc releases it. Every write is recorded.
type fakeDisplay struct {
	outputs map[randr.Output]*OutputInfo
	order   []randr.Output
	crtcs   []randr.Crtc
	modes   []randr.ModeInfo
	states  map[randr.Crtc]*CrtcState
	edid    map[randr.Output][]byte
	screen  ScreenGeometry

	edidFormat byte
	edidType   xproto.Atom

	configured  []configureCall
	disabled    []randr.Crtc
	screenSizes []screenSizeCall
}

type configureCall struct {
	Crtc     randr.Crtc
	X, Y     int16
	Mode     randr.Mode
	Rotation uint16
	Outputs  []randr.Output
}

type screenSizeCall struct {
	Width, Height      uint16
	MmWidth, MmHeight  uint32
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{
		outputs:    make(map[randr.Output]*OutputInfo),
		states:     make(map[randr.Crtc]*CrtcState),
		edid:       make(map[randr.Output][]byte),
		screen:     ScreenGeometry{HeightPx: 1080, HeightMm: 300},
		edidFormat: 8,
		edidType:   xproto.AtomInteger,
	}
}

func (f *fakeDisplay) addOutput(info OutputInfo, edid []byte) {
	f.outputs[info.Output] = &info
	f.order = append(f.order, info.Output)
	f.edid[info.Output] = edid
}

// writes counts every request that mutated server state.
func (f *fakeDisplay) writes() int {
	return len(f.configured) + len(f.disabled) + len(f.screenSizes)
}

func (f *fakeDisplay) Resources() (*Resources, error) {
	return &Resources{
		Outputs: f.order,
		Crtcs:   f.crtcs,
		Modes:   f.modes,
	}, nil
}

func (f *fakeDisplay) OutputInfo(output randr.Output) (*OutputInfo, error) {
	info, ok := f.outputs[output]
	if !ok {
		return nil, fmt.Errorf("unknown output %d", output)
	}
	copied := *info
	return &copied, nil
}

func (f *fakeDisplay) CrtcState(crtc randr.Crtc) (*CrtcState, error) {
	state, ok := f.states[crtc]
	if !ok {
		return nil, fmt.Errorf("crtc %d not configured", crtc)
	}
	copied := *state
	return &copied, nil
}

func (f *fakeDisplay) PropertyData(output randr.Output, name string) (*PropertyData, error) {
	data, ok := f.edid[output]
	if !ok || name != "EDID" {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchProperty, name)
	}
	return &PropertyData{Format: f.edidFormat, Type: f.edidType, Data: data}, nil
}

func (f *fakeDisplay) ConfigureCrtc(crtc randr.Crtc, x, y int16, mode randr.Mode, rotation uint16, outputs []randr.Output) error {
	f.configured = append(f.configured, configureCall{
		Crtc: crtc, X: x, Y: y, Mode: mode, Rotation: rotation, Outputs: outputs,
	})
	f.states[crtc] = &CrtcState{X: x, Y: y, Rotation: rotation}
	for _, o := range outputs {
		if info, ok := f.outputs[o]; ok {
			info.Crtc = crtc
		}
	}
	return nil
}

func (f *fakeDisplay) DisableCrtc(crtc randr.Crtc) error {
	f.disabled = append(f.disabled, crtc)
	delete(f.states, crtc)
	for _, info := range f.outputs {
		if info.Crtc == crtc {
			info.Crtc = 0
		}
	}
	return nil
}

func (f *fakeDisplay) SetScreenSize(width, height uint16, mmWidth, mmHeight uint32) error {
	f.screenSizes = append(f.screenSizes, screenSizeCall{
		Width: width, Height: height, MmWidth: mmWidth, MmHeight: mmHeight,
	})
	return nil
}

func (f *fakeDisplay) Screen() ScreenGeometry {
	return f.screen
}
