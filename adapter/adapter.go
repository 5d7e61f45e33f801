// Package adapter provides the TL-UL to single-cycle-SRAM bus adapter.
//
// The adapter bridges a pipelined split-transaction TL-UL channel pair to a
// synchronous request/grant memory interface. It admits one bus request per
// cycle, issues the translated command to the memory device, and delivers
// responses in admission order even though the bus protocol itself permits
// reordering. Requests that violate the write policy are answered with a
// synthesized error response and never reach memory.
//
// The model follows the hardware combinational/registered split: Tick is a
// pure function of this cycle's port inputs and the registered queue state,
// and all queue updates latch before it returns.
package adapter

import (
	"github.com/sarchlab/tlsim/fifo"
	"github.com/sarchlab/tlsim/tlul"
)

// opKind is the closed request-kind variant stored in the request queue.
type opKind uint8

const (
	opWrite opKind = iota
	opRead
	// opUnknown marks an A-channel opcode TL-UL does not define. Such
	// requests are admitted as errors and never reach memory.
	opUnknown
)

// txEntry tracks one admitted transaction until the bus accepts its
// response.
type txEntry struct {
	Op     opKind
	Error  bool
	Size   uint8
	Source uint8
}

// pendEntry tracks one read issued to memory until its data returns.
type pendEntry struct {
	Mask       uint8
	WordOffset int
}

// rspEntry holds the extracted bus word for one completed memory read.
// Error is carried defensively; error transactions never reach the
// response queue, so it stays false.
type rspEntry struct {
	Data  uint32
	Error bool
}

// BusInput is the bus-facing input sampled each cycle.
type BusInput struct {
	// A is the offered request. A.Valid gates the whole bundle.
	A tlul.AChannel
	// DReady indicates the host accepts a response this cycle.
	DReady bool
}

// BusOutput is the bus-facing output produced each cycle.
type BusOutput struct {
	// AReady indicates the adapter accepts the offered request.
	AReady bool
	// D is the response, if D.Valid.
	D tlul.DChannel
}

// MemInput is the memory-facing input sampled each cycle.
type MemInput struct {
	// Grant indicates the memory accepted this cycle's command.
	Grant bool
	// ReadValid indicates ReadData carries a completed read.
	ReadValid bool
	// ReadError flags an uncorrectable fault on ReadData. The adapter
	// counts it but does not connect it to the response error bit.
	ReadError bool
	// ReadData is the memory-word-wide read result.
	ReadData []byte
}

// MemOutput is the memory-facing command produced each cycle. It is a pure
// function of the current cycle's bus input; nothing is latched.
type MemOutput struct {
	Request     bool
	WriteEnable bool
	// Address is the memory-array address (word index).
	Address uint32
	// WriteData and WriteMask are memory-word wide, one mask entry per
	// byte.
	WriteData []byte
	WriteMask []bool
}

// Statistics holds adapter performance counters.
type Statistics struct {
	// Cycles is the number of ticks simulated.
	Cycles uint64
	// Requests is the number of admitted bus requests.
	Requests uint64
	// Reads is the number of read commands accepted by memory.
	Reads uint64
	// Writes is the number of write commands accepted by memory.
	Writes uint64
	// Responses is the number of responses accepted by the bus.
	Responses uint64
	// ErrorResponses is the number of synthesized error responses.
	ErrorResponses uint64
	// AdmissionStalls counts cycles a valid request was not admitted.
	AdmissionStalls uint64
	// ReadErrors counts read returns flagged with the uncorrectable-error
	// input. The flag is not connected to any bus output.
	ReadErrors uint64
}

// Throughput returns responses delivered per cycle.
func (s Statistics) Throughput() float64 {
	if s.Cycles == 0 {
		return 0
	}
	return float64(s.Responses) / float64(s.Cycles)
}

// Adapter is the TL-UL to SRAM bridge.
type Adapter struct {
	cfg Config
	lay layout

	// reqQ holds one entry per admitted transaction, popped in admission
	// order when the bus accepts the response. One slack slot above the
	// outstanding bound lets a request be admitted in the same cycle a
	// response retires without a combinational path between the two
	// ready signals.
	reqQ *fifo.Queue[txEntry]
	// pendQ holds one entry per read in flight toward memory.
	pendQ *fifo.Queue[pendEntry]
	// rspQ holds completed read data. Pushed and popped in the same
	// cycle order as pendQ, so the three queues stay consistent without
	// transaction tags.
	rspQ *fifo.Queue[rspEntry]

	stats Statistics
}

// New creates an Adapter from the given configuration.
func New(cfg *Config) (*Adapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := *cfg
	return &Adapter{
		cfg:   c,
		lay:   newLayout(&c),
		reqQ:  fifo.New[txEntry]("Adapter.ReqQ", c.Outstanding+1),
		pendQ: fifo.New[pendEntry]("Adapter.PendQ", c.Outstanding),
		rspQ:  fifo.New[rspEntry]("Adapter.RspQ", c.Outstanding),
	}, nil
}

// Config returns the adapter configuration.
func (a *Adapter) Config() Config {
	return a.cfg
}

// Stats returns the accumulated statistics.
func (a *Adapter) Stats() Statistics {
	return a.stats
}

// InFlight returns the number of admitted transactions whose responses
// have not yet been delivered.
func (a *Adapter) InFlight() int {
	return a.reqQ.Len()
}

// classify maps an A-channel opcode onto the stored request kind.
func classify(op tlul.AOpcode) opKind {
	switch {
	case op.IsWrite():
		return opWrite
	case op.IsRead():
		return opRead
	default:
		return opUnknown
	}
}

// Tick advances the adapter by one clock cycle. All outputs are computed
// from this cycle's inputs and the registered queue state; queue updates
// latch before Tick returns.
func (a *Adapter) Tick(bus BusInput, mem MemInput) (BusOutput, MemOutput) {
	a.stats.Cycles++

	var busOut BusOutput
	var memOut MemOutput

	// Admission and error classification.
	op := classify(bus.A.Opcode)
	partialWriteErr := op == opWrite && !a.cfg.ByteAccess &&
		(bus.A.Mask != tlul.FullMask || bus.A.Size != tlul.FullSize)
	internalErr := partialWriteErr || op == opUnknown
	// The ErrOnWrite/ErrOnRead hooks would OR in here; Validate keeps
	// them off because their semantics are unspecified upstream.

	// Queue-space gating. Reads additionally require that the reads in
	// flight plus the buffered results leave a response-queue slot free:
	// the memory gives no backpressure on read data, so a read must never
	// be issued unless its result is guaranteed a place to land.
	spaceOK := a.reqQ.Len() < a.cfg.Outstanding && a.pendQ.CanPush()
	if op == opRead {
		spaceOK = spaceOK && a.pendQ.Len()+a.rspQ.Len() < a.cfg.Outstanding
	}

	// Memory command, combinational from this cycle's request.
	off := a.lay.wordOffset(bus.A.Address)
	memOut.Request = bus.A.Valid && spaceOK && !internalErr
	memOut.WriteEnable = memOut.Request && op == opWrite
	memOut.Address = a.lay.memAddress(bus.A.Address)
	memOut.WriteData, memOut.WriteMask = a.lay.expandWrite(off, bus.A.Mask, bus.A.Data)

	// An internal error makes the grant irrelevant: the request is
	// admitted without a memory command and answered from the request
	// queue alone.
	busOut.AReady = spaceOK && (mem.Grant || internalErr)

	// Memory read return. The pending descriptor retires and the selected
	// slice enters the response queue, which passes through: the value is
	// visible to this same cycle's response reconstruction.
	if mem.ReadValid && !a.reqQ.Empty() && !a.pendQ.Empty() {
		p, _ := a.pendQ.Pop()
		a.rspQ.Push(rspEntry{Data: a.lay.sliceRead(mem.ReadData, p.WordOffset, p.Mask)})
		if mem.ReadError {
			a.stats.ReadErrors++
		}
	}

	// Response reconstruction from the request-queue head. Error and
	// write responses never consult the response queue.
	popRsp := false
	if head, ok := a.reqQ.Peek(); ok {
		switch {
		case head.Error:
			busOut.D.Valid = true
			busOut.D.Opcode = tlul.OpAccessAck
			busOut.D.Error = true
		case head.Op == opWrite:
			busOut.D.Valid = true
			busOut.D.Opcode = tlul.OpAccessAck
		default:
			if rsp, ok := a.rspQ.Peek(); ok {
				busOut.D.Valid = true
				busOut.D.Opcode = tlul.OpAccessAckData
				busOut.D.Data = rsp.Data
				busOut.D.Error = rsp.Error || head.Error
				popRsp = true
			}
		}
		busOut.D.Size = head.Size
		busOut.D.Source = head.Source
	}

	// Response delivery.
	if busOut.D.Valid && bus.DReady {
		a.reqQ.Pop()
		if popRsp {
			a.rspQ.Pop()
		}
		a.stats.Responses++
		if busOut.D.Error {
			a.stats.ErrorResponses++
		}
	}

	// Admission. Tracking entries push after the delivery pop, which is
	// what the request queue's slack slot is for.
	if bus.A.Valid && busOut.AReady {
		a.reqQ.Push(txEntry{
			Op:     op,
			Error:  internalErr,
			Size:   bus.A.Size,
			Source: bus.A.Source,
		})
		a.stats.Requests++
		if memOut.Request && mem.Grant {
			if op == opRead {
				a.pendQ.Push(pendEntry{Mask: bus.A.Mask, WordOffset: off})
				a.stats.Reads++
			} else {
				a.stats.Writes++
			}
		}
	} else if bus.A.Valid {
		a.stats.AdmissionStalls++
	}

	return busOut, memOut
}
