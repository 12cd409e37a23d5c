package acquire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"templogger-go/errcode"
	"templogger-go/services/hal/sim"
	"templogger-go/types"
	"templogger-go/x/console"
)

type recordingSink struct{ got []types.Reading }

func (s *recordingSink) Notify(r types.Reading) { s.got = append(s.got, r) }

type rig struct {
	m     *Machine
	timer *sim.ManualTimer
	bus   *sim.ManualI2C
	sink  *recordingSink
	out   *bytes.Buffer
}

func newRig(t *testing.T, mutate func(*Config, *rig)) *rig {
	t.Helper()
	r := &rig{
		timer: &sim.ManualTimer{},
		bus:   &sim.ManualI2C{},
		sink:  &recordingSink{},
		out:   &bytes.Buffer{},
	}
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg, r)
	}
	r.m = New(cfg, Deps{Timer: r.timer, I2C: r.bus, Sink: r.sink, Console: console.New(r.out)})
	return r
}

// cycle fires the timer and completes one transfer with data.
func (r *rig) cycle(t *testing.T, data ...byte) {
	t.Helper()
	r.timer.Fire()
	r.m.Tasks()
	require.Equal(t, StateWaitTransferComplete, r.m.State())
	require.True(t, r.bus.Complete(data...))
	r.m.Tasks()
	require.Equal(t, StateReadTemperature, r.m.State())
}

func TestInitRegistersTimerAndHandler(t *testing.T) {
	r := newRig(t, nil)
	require.Equal(t, StateInit, r.m.State())

	r.m.Tasks()
	assert.Equal(t, StateReadTemperature, r.m.State())
	assert.Equal(t, SamplingPeriod, r.timer.Interval)
	assert.NoError(t, r.m.Err())
}

func TestInitFailuresAreTerminal(t *testing.T) {
	cases := []struct {
		name string
		set  func(*rig)
		code errcode.Code
	}{
		{"bus open", func(r *rig) { r.bus.FailOpen = true }, errcode.BusOpen},
		{"timer register", func(r *rig) { r.timer.FailCreate = true }, errcode.TimerRegister},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newRig(t, func(_ *Config, r *rig) { c.set(r) })
			r.m.Tasks()
			require.Equal(t, StateError, r.m.State())
			assert.Equal(t, c.code, errcode.Of(r.m.Err()))

			r.m.Tasks()
			assert.Equal(t, StateIdle, r.m.State())
			assert.Contains(t, r.out.String(), "Temperature Sensor Task Error")

			r.timer.Fire()
			r.m.Tasks()
			assert.Equal(t, StateIdle, r.m.State())
			assert.Zero(t, r.bus.Accepted())
		})
	}
}

func TestReadWaitsForTimer(t *testing.T) {
	r := newRig(t, nil)
	r.m.Tasks()
	for i := 0; i < 5; i++ {
		r.m.Tasks()
	}
	assert.Equal(t, StateReadTemperature, r.m.State())
	assert.Zero(t, r.bus.Accepted())
}

func TestFullCycleDecodesAndNotifies(t *testing.T) {
	r := newRig(t, nil)
	r.m.Tasks()

	r.timer.Fire()
	r.m.Tasks()
	require.Equal(t, StateWaitTransferComplete, r.m.State())
	require.True(t, r.m.InFlight())
	addr, w := r.bus.LastWrite()
	assert.Equal(t, uint16(0x4B), addr)
	assert.Equal(t, []byte{0x00}, w)

	// No completion yet: stays parked.
	r.m.Tasks()
	require.Equal(t, StateWaitTransferComplete, r.m.State())
	require.Empty(t, r.sink.got)

	require.True(t, r.bus.Complete(0x19, 0x00))
	r.m.Tasks()
	assert.Equal(t, StateReadTemperature, r.m.State())
	assert.False(t, r.m.InFlight())
	assert.Equal(t, []types.Reading{{Value: 25, Scale: types.ScaleCelsius}}, r.sink.got)
	assert.Equal(t, "Reading temperature from sensor...25 C\r\n", r.out.String())
}

func TestDecodeScales(t *testing.T) {
	cases := []struct {
		name   string
		scale  types.Scale
		b0, b1 byte
		want   int16
	}{
		{"celsius", types.ScaleCelsius, 0x19, 0x00, 25},
		{"fahrenheit", types.ScaleFahrenheit, 0x19, 0x00, 77},
		{"half degree truncates", types.ScaleCelsius, 0x00, 0x80, 0},
		{"negative", types.ScaleCelsius, 0xE7, 0x00, -25},
		{"negative fahrenheit", types.ScaleFahrenheit, 0xFF, 0x00, 30},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newRig(t, func(cfg *Config, _ *rig) { cfg.Scale = c.scale })
			r.m.Tasks()
			r.cycle(t, c.b0, c.b1)
			require.Len(t, r.sink.got, 1)
			assert.Equal(t, c.want, r.sink.got[0].Value)
			assert.Equal(t, c.scale, r.sink.got[0].Scale)
		})
	}
}

func TestAtMostOneTransferInFlight(t *testing.T) {
	r := newRig(t, nil)
	r.m.Tasks()

	for i := 0; i < 20; i++ {
		// Extra timer fires while a transfer is outstanding must not issue more.
		r.timer.Fire()
		r.m.Tasks()
		r.timer.Fire()
		r.m.Tasks()
		r.m.Tasks()
		assert.LessOrEqual(t, r.bus.Outstanding(), 1)
		r.bus.Complete(0x19, 0x00)
		r.m.Tasks()
	}
	assert.Equal(t, 1, r.bus.Peak())
}

func TestTimerFlagConsumedOnce(t *testing.T) {
	r := newRig(t, nil)
	r.m.Tasks()

	r.timer.Fire()
	r.timer.Fire()
	r.m.Tasks()
	require.True(t, r.bus.Complete(0x19, 0x00))
	r.m.Tasks()
	require.Equal(t, StateReadTemperature, r.m.State())

	r.m.Tasks()
	r.m.Tasks()
	assert.Equal(t, 1, r.bus.Accepted())
	assert.Len(t, r.sink.got, 1)
}

func TestTransferRejected(t *testing.T) {
	r := newRig(t, nil)
	r.m.Tasks()
	r.bus.Reject = true

	r.timer.Fire()
	r.m.Tasks()
	require.Equal(t, StateError, r.m.State())
	assert.Equal(t, errcode.TransferRejected, errcode.Of(r.m.Err()))
	r.m.Tasks()
	assert.Equal(t, StateIdle, r.m.State())
}

// A bus error abandons the wait immediately. The transfer handle is not
// released, which is a known-lossy path.
func TestBusErrorForcesErrorFromWait(t *testing.T) {
	r := newRig(t, nil)
	r.m.Tasks()
	r.timer.Fire()
	r.m.Tasks()
	require.Equal(t, StateWaitTransferComplete, r.m.State())

	require.True(t, r.bus.Fail())
	assert.Equal(t, StateError, r.m.State(), "callback must force the state without a poll")

	r.m.Tasks()
	assert.Equal(t, StateIdle, r.m.State())
	assert.Equal(t, errcode.TransferError, errcode.Of(r.m.Err()))
	assert.True(t, r.m.InFlight(), "known-lossy: abandoned transfer handle is not released")
	assert.Empty(t, r.sink.got)
}

func TestIdleIsIdempotent(t *testing.T) {
	r := newRig(t, func(_ *Config, r *rig) { r.bus.FailOpen = true })
	r.m.Tasks()
	r.m.Tasks()
	require.Equal(t, StateIdle, r.m.State())
	before := r.out.String()

	for i := 0; i < 10; i++ {
		r.timer.Fire()
		r.m.OnTransfer(0, 0)
		r.m.Tasks()
	}
	r.m.forceError()
	r.m.Tasks()
	assert.Equal(t, StateIdle, r.m.State())
	assert.Equal(t, before, r.out.String())
	assert.Zero(t, r.bus.Accepted())
	assert.Empty(t, r.sink.got)
}
