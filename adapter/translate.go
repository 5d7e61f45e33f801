package adapter

import (
	"math/bits"

	"github.com/sarchlab/tlsim/tlul"
)

// layout captures the address arithmetic derived from the configuration:
// how a bus byte address splits into a memory-array address plus a
// bus-word offset within the (possibly wider) memory word.
type layout struct {
	// memBytes is the memory word width in bytes.
	memBytes int
	// words is the number of bus words per memory word.
	words int
	// byteShift is log2(memBytes): bits below it address bytes within
	// one memory word.
	byteShift uint
	// addrMask clips the memory-array address to MemAddrWidth bits.
	addrMask uint32
	// offMask extracts the bus-word offset within a memory word.
	offMask uint32
}

func newLayout(cfg *Config) layout {
	memBytes := cfg.MemDataBytes()
	words := cfg.WordsPerMemWord()
	return layout{
		memBytes:  memBytes,
		words:     words,
		byteShift: uint(bits.TrailingZeros(uint(memBytes))),
		addrMask:  uint32(1)<<cfg.MemAddrWidth - 1,
		offMask:   uint32(words - 1),
	}
}

// memAddress returns the memory-array address for a bus byte address.
// Bits above MemAddrWidth (a crossbar base offset, if any) are ignored.
func (l layout) memAddress(busAddr uint32) uint32 {
	return (busAddr >> l.byteShift) & l.addrMask
}

// wordOffset returns which bus-word slice of the memory word the bus
// address selects. Always zero when the widths are equal.
func (l layout) wordOffset(busAddr uint32) int {
	return int((busAddr >> 2) & l.offMask)
}

// expandWrite scatters a bus-width mask/data pair into a memory-wide
// write-data and write-mask pair. Slices other than the one selected by
// off get an all-zero mask so unrelated bytes of a wide memory word are
// never disturbed. Bytes masked out within the selected slice carry zero
// data as well, although the mask alone gates the write effect.
func (l layout) expandWrite(off int, mask uint8, data uint32) ([]byte, []bool) {
	wdata := make([]byte, l.memBytes)
	wmask := make([]bool, l.memBytes)
	base := off * tlul.DataBytes
	for i := 0; i < tlul.DataBytes; i++ {
		if mask&(1<<i) == 0 {
			continue
		}
		wdata[base+i] = byte(data >> (8 * i))
		wmask[base+i] = true
	}
	return wdata, wmask
}

// sliceRead extracts the bus word at off from a memory-wide read word,
// keeping only the bytes the request's mask selected.
func (l layout) sliceRead(word []byte, off int, mask uint8) uint32 {
	base := off * tlul.DataBytes
	var data uint32
	for i := 0; i < tlul.DataBytes; i++ {
		if mask&(1<<i) == 0 {
			continue
		}
		if base+i < len(word) {
			data |= uint32(word[base+i]) << (8 * i)
		}
	}
	return data
}
