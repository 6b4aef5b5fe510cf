package monitor

import (
	"errors"

	"github.com/BurntSushi/xgb/randr"
)

// ErrCrtcExhausted is returned when a connected, unconfigured output exists
// but the screen has no free CRTC left to drive it.
var ErrCrtcExhausted = errors.New("no free CRTC available")

// crtcPool is the set of CRTCs not currently driving any output. CRTCs are
// handed out from the front so allocation order is deterministic.
type crtcPool struct {
	free []randr.Crtc
}

// newCrtcPool builds the free pool: every CRTC the screen knows about minus
// those assigned to an output. Call this after stale assignments have been
// cleared, or disconnected outputs will still pin their CRTCs.
func newCrtcPool(crtcs []randr.Crtc, outputs []*OutputInfo) *crtcPool {
	assigned := make(map[randr.Crtc]bool, len(outputs))
	for _, o := range outputs {
		if o.Crtc != 0 {
			assigned[o.Crtc] = true
		}
	}

	p := &crtcPool{}
	for _, c := range crtcs {
		if !assigned[c] {
			p.free = append(p.free, c)
		}
	}
	return p
}

// take removes and returns the first free CRTC.
func (p *crtcPool) take() (randr.Crtc, bool) {
	if len(p.free) == 0 {
		return 0, false
	}
	c := p.free[0]
	p.free = p.free[1:]
	return c, true
}

func (p *crtcPool) size() int {
	return len(p.free)
}
