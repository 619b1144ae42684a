package lux_nav

import (
	"strings"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLiveFrameWithTimestamp(t *testing.T) {
	payload := "12.5,0.1,0.2," +
		"10,20,30,40,50,60,70,80," +
		"0.1,0.2,0.3,0.4,0.5,0.6,0.7,0.8"

	frame, hasT, err := parseLiveFrame([]byte(payload))
	require.NoError(t, err)
	assert.True(t, hasT)
	assert.Equal(t, 12.5, frame.T)
	assert.Equal(t, 0.1, frame.Pos.X)
	assert.Equal(t, 0.2, frame.Pos.Y)
	assert.Equal(t, 10.0, frame.Proximity[SensorFront])
	assert.Equal(t, 30.0, frame.Proximity[SensorRight])
	assert.Equal(t, 0.8, frame.Lux[SensorFrontLeft])
	assert.True(t, frame.PosValid())
}

func TestParseLiveFrameWithoutTimestamp(t *testing.T) {
	payload := "0,0," +
		"0,0,0,0,0,0,0,0," +
		"1,1,1,1,1,1,1,1"

	frame, hasT, err := parseLiveFrame([]byte(payload))
	require.NoError(t, err)
	assert.False(t, hasT)
	assert.False(t, frame.PosValid(), "zero position is the unsettled-GPS sentinel")
	assert.Equal(t, 1.0, frame.MeanLux())
}

func TestParseLiveFrameRejectsGarbage(t *testing.T) {
	payloads := []string{
		"",
		"1,2,3",
		"a,b," + strings.Repeat("0,", 15) + "0",
		strings.Repeat("1,", 25) + "1",
	}
	for _, p := range payloads {
		_, _, err := parseLiveFrame([]byte(p))
		assert.Error(t, err, "payload %q", p)
	}
}

func TestLiveStoreSequencing(t *testing.T) {
	store := &liveStore{}

	_, _, seq := store.Snapshot()
	assert.Equal(t, uint64(0), seq)

	frame := luxFrame(0.4, r2.Point{X: 1, Y: 2})
	store.Update(frame, true)
	got, hasT, seq := store.Snapshot()
	assert.Equal(t, uint64(1), seq)
	assert.True(t, hasT)
	assert.Equal(t, frame, got)

	store.Update(frame, false)
	_, hasT, seq = store.Snapshot()
	assert.Equal(t, uint64(2), seq)
	assert.False(t, hasT)
}
