package monitor

import (
	"testing"

	"github.com/BurntSushi/xgb/randr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrtcPool_ExcludesAssigned(t *testing.T) {
	outputs := []*OutputInfo{
		{Output: 1, Crtc: 10},
		{Output: 2, Crtc: 0},
		{Output: 3, Crtc: 12},
	}

	pool := newCrtcPool([]randr.Crtc{10, 11, 12, 13}, outputs)
	assert.Equal(t, 2, pool.size())

	c, ok := pool.take()
	require.True(t, ok)
	assert.Equal(t, randr.Crtc(11), c)

	c, ok = pool.take()
	require.True(t, ok)
	assert.Equal(t, randr.Crtc(13), c)
}

func TestCrtcPool_FrontOfListOrder(t *testing.T) {
	pool := newCrtcPool([]randr.Crtc{5, 3, 9}, nil)

	var got []randr.Crtc
	for {
		c, ok := pool.take()
		if !ok {
			break
		}
		got = append(got, c)
	}
	assert.Equal(t, []randr.Crtc{5, 3, 9}, got)
}

func TestCrtcPool_Exhaustion(t *testing.T) {
	pool := newCrtcPool([]randr.Crtc{7}, nil)

	_, ok := pool.take()
	require.True(t, ok)

	_, ok = pool.take()
	assert.False(t, ok)
	assert.Equal(t, 0, pool.size())
}
