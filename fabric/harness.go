package fabric

import (
	"fmt"
	"math/bits"
	"math/rand"

	log "github.com/sirupsen/logrus"

	"github.com/sarchlab/tlsim/adapter"
	"github.com/sarchlab/tlsim/tlul"
)

// Harness runs seeded random traffic through a System and checks every
// response against an independent reference model of the memory.
type Harness struct {
	sys *System
	cfg *adapter.Config
	rng *rand.Rand

	// ref mirrors the SRAM byte image as the admitted writes should have
	// left it.
	ref []byte
	// expected lists the responses the admitted requests must produce,
	// in admission order.
	expected []tlul.DChannel

	nextSource uint8
}

// NewHarness builds a Harness around a fresh System. The seed fixes the
// generated traffic, so failures reproduce.
func NewHarness(cfg *adapter.Config, queueCapacity int, seed int64, opts ...Option) (*Harness, error) {
	sys, err := New(cfg, queueCapacity, opts...)
	if err != nil {
		return nil, err
	}
	memBytes := cfg.MemDataBytes()
	depth := 1 << cfg.MemAddrWidth
	return &Harness{
		sys: sys,
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
		ref: make([]byte, depth*memBytes),
	}, nil
}

// System returns the underlying System.
func (h *Harness) System() *System {
	return h.sys
}

// refIndex returns the byte index into the reference image for lane i of
// the bus word addressed by addr.
func (h *Harness) refIndex(addr uint32, lane int) int {
	memBytes := h.cfg.MemDataBytes()
	byteShift := uint(bits.TrailingZeros(uint(memBytes)))
	memAddr := (addr >> byteShift) & (uint32(1)<<h.cfg.MemAddrWidth - 1)
	wordOff := int(addr>>2) & (h.cfg.WordsPerMemWord() - 1)
	return int(memAddr)*memBytes + wordOff*tlul.DataBytes + lane
}

// GenerateOps queues n random operations and records their expected
// responses. The mix is roughly half reads; writes split between full and
// partial, with the occasional undefined opcode to exercise the error
// path.
func (h *Harness) GenerateOps(n int) error {
	wordCount := (uint32(1) << h.cfg.MemAddrWidth) * uint32(h.cfg.WordsPerMemWord())
	for i := 0; i < n; i++ {
		addr := (h.rng.Uint32() % wordCount) * tlul.DataBytes
		source := h.nextSource
		h.nextSource++

		var req tlul.AChannel
		switch roll := h.rng.Intn(100); {
		case roll < 45:
			req = tlul.NewGet(addr, source)
		case roll < 70:
			req = tlul.NewPutFull(addr, h.rng.Uint32(), source)
		case roll < 97:
			mask := uint8(h.rng.Intn(tlul.FullMask)) + 1
			req = tlul.NewPutPartial(addr, h.rng.Uint32(), mask, source)
		default:
			req = tlul.AChannel{
				Valid:   true,
				Opcode:  tlul.AOpcode(5),
				Address: addr,
				Size:    tlul.FullSize,
				Mask:    tlul.FullMask,
				Source:  source,
			}
		}

		if !h.sys.Host.Enqueue(req) {
			return fmt.Errorf("host queue full after %d ops", i)
		}
		h.expected = append(h.expected, h.expect(req))
	}
	return nil
}

// expect applies req to the reference model and returns the response it
// must produce.
func (h *Harness) expect(req tlul.AChannel) tlul.DChannel {
	d := tlul.DChannel{
		Valid:  true,
		Size:   req.Size,
		Source: req.Source,
	}

	switch {
	case !req.Opcode.Known():
		d.Opcode = tlul.OpAccessAck
		d.Error = true
	case req.Opcode.IsWrite():
		d.Opcode = tlul.OpAccessAck
		partial := req.Mask != tlul.FullMask || req.Size != tlul.FullSize
		if partial && !h.cfg.ByteAccess {
			d.Error = true
			return d
		}
		for i := 0; i < tlul.DataBytes; i++ {
			if req.Mask&(1<<i) != 0 {
				h.ref[h.refIndex(req.Address, i)] = byte(req.Data >> (8 * i))
			}
		}
	default:
		d.Opcode = tlul.OpAccessAckData
		for i := 0; i < tlul.DataBytes; i++ {
			if req.Mask&(1<<i) != 0 {
				d.Data |= uint32(h.ref[h.refIndex(req.Address, i)]) << (8 * i)
			}
		}
	}
	return d
}

// Run ticks the system until the traffic drains, then checks every
// collected response against the expectations.
func (h *Harness) Run(maxCycles uint64) error {
	if !h.sys.RunUntilDrained(maxCycles) {
		return fmt.Errorf("traffic did not drain within %d cycles (%d responses of %d)",
			maxCycles, len(h.sys.Host.Responses()), len(h.expected))
	}

	got := h.sys.Host.Responses()
	if len(got) != len(h.expected) {
		return fmt.Errorf("response count mismatch: got %d, want %d",
			len(got), len(h.expected))
	}
	for i, want := range h.expected {
		if got[i] != want {
			return fmt.Errorf("response %d mismatch: got %+v, want %+v", i, got[i], want)
		}
	}

	log.Debugf("harness: %d responses verified in %d cycles",
		len(got), h.sys.Cycles())
	return nil
}
