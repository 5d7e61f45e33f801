// Package fabric composes a TL-UL host, the SRAM adapter, and an SRAM
// device into a closed system driven by a single global clock.
package fabric

import (
	"github.com/sarchlab/tlsim/adapter"
	"github.com/sarchlab/tlsim/host"
	"github.com/sarchlab/tlsim/sram"
)

// Option is a functional option for configuring the System.
type Option func(*options)

type options struct {
	hostOpts []host.Option
	sramOpts []sram.Option
}

// WithDReadyPattern backpressures the response channel: cycles where fn
// returns false refuse responses.
func WithDReadyPattern(fn func(cycle uint64) bool) Option {
	return func(o *options) {
		o.hostOpts = append(o.hostOpts, host.WithDReadyPattern(fn))
	}
}

// WithGrantPattern stalls the memory: cycles where fn returns false
// withhold the SRAM grant.
func WithGrantPattern(fn func(cycle uint64) bool) Option {
	return func(o *options) {
		o.sramOpts = append(o.sramOpts, sram.WithGrantPattern(fn))
	}
}

// WithReadErrorPattern injects the uncorrectable-error flag on reads of
// word addresses where fn returns true.
func WithReadErrorPattern(fn func(addr uint32) bool) Option {
	return func(o *options) {
		o.sramOpts = append(o.sramOpts, sram.WithReadErrorPattern(fn))
	}
}

// System wires host -> adapter -> SRAM. The SRAM depth is sized to the
// adapter's memory address width, so every translated address is backed.
type System struct {
	Host    *host.Host
	Adapter *adapter.Adapter
	SRAM    *sram.SRAM

	cycles uint64
}

// New builds a System. queueCapacity bounds the host's queued program.
func New(cfg *adapter.Config, queueCapacity int, opts ...Option) (*System, error) {
	a, err := adapter.New(cfg)
	if err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	depth := uint32(1) << cfg.MemAddrWidth
	return &System{
		Host:    host.New("Host", queueCapacity, o.hostOpts...),
		Adapter: a,
		SRAM:    sram.New(cfg.MemDataBytes(), depth, o.sramOpts...),
	}, nil
}

// Tick advances the whole system by one clock cycle. The adapter sees the
// SRAM's combinational grant and its registered read port from the
// previous cycle, then the SRAM latches this cycle's command and the host
// samples this cycle's bus output.
func (s *System) Tick() {
	rdData, rdValid, rdErr := s.SRAM.Output()
	memIn := adapter.MemInput{
		Grant:     s.SRAM.Grant(),
		ReadValid: rdValid,
		ReadError: rdErr,
		ReadData:  rdData,
	}
	busIn := adapter.BusInput{
		A:      s.Host.DriveA(),
		DReady: s.Host.DriveDReady(),
	}

	busOut, memOut := s.Adapter.Tick(busIn, memIn)

	s.SRAM.Tick(memOut.Request, memOut.WriteEnable, memOut.Address,
		memOut.WriteData, memOut.WriteMask)
	s.Host.Observe(busOut.AReady, busOut.D)
	s.cycles++
}

// Run advances the system by n cycles.
func (s *System) Run(n uint64) {
	for i := uint64(0); i < n; i++ {
		s.Tick()
	}
}

// RunUntilDrained ticks until the host's program is issued and answered,
// or maxCycles elapse. It reports whether the system drained.
func (s *System) RunUntilDrained(maxCycles uint64) bool {
	for i := uint64(0); i < maxCycles; i++ {
		if s.Host.Drained() && s.Adapter.InFlight() == 0 {
			return true
		}
		s.Tick()
	}
	return s.Host.Drained() && s.Adapter.InFlight() == 0
}

// Cycles returns the number of ticks simulated.
func (s *System) Cycles() uint64 {
	return s.cycles
}
