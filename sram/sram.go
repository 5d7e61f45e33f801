// Package sram models a synchronous single-cycle-latency memory device.
//
// The device accepts one command per cycle over a request/grant handshake.
// Writes take effect immediately under a per-byte mask. Reads return the
// full memory word on the following cycle with no backpressure: once a read
// is granted, read-data-valid will assert exactly one cycle later whether or
// not the consumer is ready.
//
// The word array is backed by Akita's lazily allocated storage, so large
// sparsely touched memories stay cheap.
package sram

import (
	"fmt"

	"github.com/sarchlab/akita/v4/mem/mem"
)

// Option is a functional option for configuring the SRAM.
type Option func(*SRAM)

// WithGrantPattern installs a per-cycle grant function. Cycles where the
// function returns false stall the request interface. The default grants
// every cycle.
func WithGrantPattern(fn func(cycle uint64) bool) Option {
	return func(s *SRAM) {
		s.grantFn = fn
	}
}

// WithReadErrorPattern installs a per-word-address fault function. Reads of
// addresses where the function returns true assert the uncorrectable-error
// flag alongside the returned data.
func WithReadErrorPattern(fn func(addr uint32) bool) Option {
	return func(s *SRAM) {
		s.errFn = fn
	}
}

// Statistics holds SRAM access counters.
type Statistics struct {
	// Reads is the number of granted read commands.
	Reads uint64
	// Writes is the number of granted write commands.
	Writes uint64
	// GrantStalls counts cycles a request was offered but not granted.
	GrantStalls uint64
}

// SRAM is a word-addressed memory array with single-cycle read latency.
type SRAM struct {
	storage   *mem.Storage
	wordBytes int
	depth     uint32

	grantFn func(cycle uint64) bool
	errFn   func(addr uint32) bool

	cycle uint64

	// Registered read output, valid the cycle after a granted read.
	rdData  []byte
	rdValid bool
	rdError bool

	stats Statistics
}

// New creates an SRAM of depth words, each wordBytes wide.
func New(wordBytes int, depth uint32, opts ...Option) *SRAM {
	s := &SRAM{
		storage:   mem.NewStorage(uint64(wordBytes) * uint64(depth)),
		wordBytes: wordBytes,
		depth:     depth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WordBytes returns the word width in bytes.
func (s *SRAM) WordBytes() int {
	return s.wordBytes
}

// Depth returns the number of words.
func (s *SRAM) Depth() uint32 {
	return s.depth
}

// Stats returns the accumulated statistics.
func (s *SRAM) Stats() Statistics {
	return s.stats
}

// Grant reports whether the device accepts a command this cycle. It is
// combinational: the adapter samples it in the same cycle it drives the
// command.
func (s *SRAM) Grant() bool {
	if s.grantFn == nil {
		return true
	}
	return s.grantFn(s.cycle)
}

// Output returns the registered read port: the word read by the previous
// cycle's granted read, its valid flag, and the uncorrectable-error flag.
func (s *SRAM) Output() (data []byte, valid bool, readErr bool) {
	return s.rdData, s.rdValid, s.rdError
}

// Tick advances the device by one cycle, applying the offered command if
// granted and latching the read output for the next cycle.
func (s *SRAM) Tick(request, writeEnable bool, addr uint32, wdata []byte, wmask []bool) {
	var nextData []byte
	nextValid := false
	nextError := false

	if request && s.Grant() {
		addr %= s.depth
		if writeEnable {
			s.write(addr, wdata, wmask)
			s.stats.Writes++
		} else {
			nextData = s.read(addr)
			nextValid = true
			nextError = s.errFn != nil && s.errFn(addr)
			s.stats.Reads++
		}
	} else if request {
		s.stats.GrantStalls++
	}

	s.rdData = nextData
	s.rdValid = nextValid
	s.rdError = nextError
	s.cycle++
}

// Peek returns the current content of a word without access semantics.
func (s *SRAM) Peek(addr uint32) []byte {
	return s.read(addr % s.depth)
}

// Poke overwrites a word without access semantics. Useful for preloading
// test images.
func (s *SRAM) Poke(addr uint32, data []byte) {
	word := make([]byte, s.wordBytes)
	copy(word, data)
	byteAddr := uint64(addr%s.depth) * uint64(s.wordBytes)
	if err := s.storage.Write(byteAddr, word); err != nil {
		panic(fmt.Sprintf("sram: poke at %#x: %v", addr, err))
	}
}

func (s *SRAM) read(addr uint32) []byte {
	byteAddr := uint64(addr) * uint64(s.wordBytes)
	data, err := s.storage.Read(byteAddr, uint64(s.wordBytes))
	if err != nil {
		panic(fmt.Sprintf("sram: read at %#x: %v", addr, err))
	}
	return data
}

func (s *SRAM) write(addr uint32, wdata []byte, wmask []bool) {
	byteAddr := uint64(addr) * uint64(s.wordBytes)
	word, err := s.storage.Read(byteAddr, uint64(s.wordBytes))
	if err != nil {
		panic(fmt.Sprintf("sram: write at %#x: %v", addr, err))
	}
	for i := 0; i < s.wordBytes && i < len(wdata); i++ {
		if i < len(wmask) && wmask[i] {
			word[i] = wdata[i]
		}
	}
	if err := s.storage.Write(byteAddr, word); err != nil {
		panic(fmt.Sprintf("sram: write at %#x: %v", addr, err))
	}
}
