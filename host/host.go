// Package host provides a TL-UL host driver for exercising the adapter.
//
// The host holds a queued program of A-channel requests, offers them one per
// cycle until accepted, applies a configurable D-ready pattern, and records
// every accepted response in arrival order.
package host

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/tlsim/tlul"
)

// Option is a functional option for configuring the Host.
type Option func(*Host)

// WithDReadyPattern installs a per-cycle D-ready function. Cycles where the
// function returns false refuse responses, backpressuring the adapter. The
// default accepts every cycle.
func WithDReadyPattern(fn func(cycle uint64) bool) Option {
	return func(h *Host) {
		h.readyFn = fn
	}
}

// Host drives the bus-facing side of the adapter.
type Host struct {
	cmds    sim.Buffer
	readyFn func(cycle uint64) bool

	cycle     uint64
	issued    uint64
	responses []tlul.DChannel
}

// New creates a Host that can hold up to capacity queued requests. The name
// identifies the host's internal buffer.
func New(name string, capacity int, opts ...Option) *Host {
	h := &Host{
		cmds: sim.NewBuffer(name+".CmdBuf", capacity),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Enqueue appends a request to the program. It returns false if the
// command buffer is full.
func (h *Host) Enqueue(req tlul.AChannel) bool {
	if !h.cmds.CanPush() {
		return false
	}
	req.Valid = true
	h.cmds.Push(req)
	return true
}

// DriveA returns the A-channel signals for this cycle: the oldest queued
// request, or an invalid bundle when the program is drained.
func (h *Host) DriveA() tlul.AChannel {
	head := h.cmds.Peek()
	if head == nil {
		return tlul.AChannel{}
	}
	return head.(tlul.AChannel)
}

// DriveDReady returns the D-ready signal for this cycle.
func (h *Host) DriveDReady() bool {
	if h.readyFn == nil {
		return true
	}
	return h.readyFn(h.cycle)
}

// Observe samples the adapter's bus output for this cycle and advances the
// host clock. The offered request retires when aReady is high, and a valid
// response is recorded when this cycle's D-ready accepted it.
func (h *Host) Observe(aReady bool, d tlul.DChannel) {
	if aReady && h.cmds.Peek() != nil {
		h.cmds.Pop()
		h.issued++
	}
	if d.Valid && h.DriveDReady() {
		h.responses = append(h.responses, d)
	}
	h.cycle++
}

// Pending returns the number of queued requests not yet accepted.
func (h *Host) Pending() int {
	return h.cmds.Size()
}

// Issued returns the number of requests the adapter has accepted.
func (h *Host) Issued() uint64 {
	return h.issued
}

// Responses returns the responses recorded so far, in arrival order.
func (h *Host) Responses() []tlul.DChannel {
	return h.responses
}

// Drained reports whether every queued request has been issued and
// answered.
func (h *Host) Drained() bool {
	return h.cmds.Size() == 0 && uint64(len(h.responses)) == h.issued
}
