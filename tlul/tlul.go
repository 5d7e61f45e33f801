// Package tlul provides TileLink Uncached Lightweight (TL-UL) channel
// definitions and helpers.
//
// TL-UL is a split-transaction memory-mapped bus: requests travel on the
// A channel, responses on the D channel, each with its own valid/ready
// handshake. This package defines the opcodes, field widths, and per-cycle
// channel signal bundles used throughout the simulator.
//
// Usage:
//
//	req := tlul.NewGet(0x100, 7)
//	ack := tlul.DChannel{Valid: true, Opcode: tlul.OpAccessAckData, ...}
package tlul

// Bus geometry. TL-UL carries a 32-bit data path with one mask bit per
// byte lane.
const (
	// DataWidth is the bus data width in bits.
	DataWidth = 32
	// DataBytes is the number of byte lanes on the bus.
	DataBytes = DataWidth / 8
	// FullSize is the size code of a full-word access (log2 of DataBytes).
	FullSize = 2
	// FullMask has every byte lane selected.
	FullMask = 1<<DataBytes - 1
)

// AOpcode is an A-channel (request) opcode.
type AOpcode uint8

// A-channel opcodes defined by TL-UL.
const (
	OpPutFullData    AOpcode = 0
	OpPutPartialData AOpcode = 1
	OpGet            AOpcode = 4
)

// IsWrite reports whether the opcode is a write variant.
func (op AOpcode) IsWrite() bool {
	return op == OpPutFullData || op == OpPutPartialData
}

// IsRead reports whether the opcode is a read.
func (op AOpcode) IsRead() bool {
	return op == OpGet
}

// Known reports whether the opcode is one TL-UL defines.
func (op AOpcode) Known() bool {
	return op.IsWrite() || op.IsRead()
}

// String returns the opcode mnemonic.
func (op AOpcode) String() string {
	switch op {
	case OpPutFullData:
		return "PutFullData"
	case OpPutPartialData:
		return "PutPartialData"
	case OpGet:
		return "Get"
	default:
		return "Unknown"
	}
}

// DOpcode is a D-channel (response) opcode.
type DOpcode uint8

// D-channel opcodes defined by TL-UL.
const (
	OpAccessAck     DOpcode = 0
	OpAccessAckData DOpcode = 1
)

// String returns the opcode mnemonic.
func (op DOpcode) String() string {
	switch op {
	case OpAccessAck:
		return "AccessAck"
	case OpAccessAckData:
		return "AccessAckData"
	default:
		return "Unknown"
	}
}

// AChannel is the A-channel (request) signal bundle for one cycle.
type AChannel struct {
	// Valid indicates the host is presenting a request this cycle.
	Valid   bool
	Opcode  AOpcode
	Address uint32
	// Size is the log2 of the access size in bytes.
	Size uint8
	// Mask selects the valid byte lanes, one bit per byte.
	Mask uint8
	Data uint32
	// Source is an opaque transaction tag echoed on the response.
	Source uint8
}

// DChannel is the D-channel (response) signal bundle for one cycle.
type DChannel struct {
	// Valid indicates the device is presenting a response this cycle.
	Valid  bool
	Opcode DOpcode
	Size   uint8
	Source uint8
	Data   uint32
	// Error reports that the request failed; the transaction had no
	// memory side effect.
	Error bool
}

// NewGet builds a full-word read request.
func NewGet(addr uint32, source uint8) AChannel {
	return AChannel{
		Valid:   true,
		Opcode:  OpGet,
		Address: addr,
		Size:    FullSize,
		Mask:    FullMask,
		Source:  source,
	}
}

// NewPutFull builds a full-word write request.
func NewPutFull(addr uint32, data uint32, source uint8) AChannel {
	return AChannel{
		Valid:   true,
		Opcode:  OpPutFullData,
		Address: addr,
		Size:    FullSize,
		Mask:    FullMask,
		Data:    data,
		Source:  source,
	}
}

// NewPutPartial builds a byte-masked write request. Size is still the
// full-word code; the mask narrows the write.
func NewPutPartial(addr uint32, data uint32, mask uint8, source uint8) AChannel {
	return AChannel{
		Valid:   true,
		Opcode:  OpPutPartialData,
		Address: addr,
		Size:    FullSize,
		Mask:    mask & FullMask,
		Data:    data,
		Source:  source,
	}
}

// MaskBytes returns the number of byte lanes selected by mask.
func MaskBytes(mask uint8) int {
	n := 0
	for i := 0; i < DataBytes; i++ {
		if mask&(1<<i) != 0 {
			n++
		}
	}
	return n
}
