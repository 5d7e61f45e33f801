package sram_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tlsim/sram"
)

func TestSRAM(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "SRAM Suite")
}

var _ = Describe("SRAM", func() {
	var s *sram.SRAM

	BeforeEach(func() {
		s = sram.New(4, 64)
	})

	It("should grant by default", func() {
		Expect(s.Grant()).To(BeTrue())
	})

	It("should return read data exactly one cycle after the request", func() {
		s.Poke(5, []byte{0x11, 0x22, 0x33, 0x44})

		s.Tick(true, false, 5, nil, nil)

		data, valid, readErr := s.Output()
		Expect(valid).To(BeTrue())
		Expect(readErr).To(BeFalse())
		Expect(data).To(Equal([]byte{0x11, 0x22, 0x33, 0x44}))

		// The output holds for one cycle only.
		s.Tick(false, false, 0, nil, nil)
		_, valid, _ = s.Output()
		Expect(valid).To(BeFalse())
	})

	It("should apply the per-byte write mask", func() {
		s.Poke(3, []byte{0xAA, 0xBB, 0xCC, 0xDD})

		s.Tick(true, true, 3,
			[]byte{0x01, 0x02, 0x03, 0x04},
			[]bool{true, false, true, false})

		Expect(s.Peek(3)).To(Equal([]byte{0x01, 0xBB, 0x03, 0xDD}))
	})

	It("should not assert read-valid after a write", func() {
		s.Tick(true, true, 0, []byte{1, 2, 3, 4}, []bool{true, true, true, true})
		_, valid, _ := s.Output()
		Expect(valid).To(BeFalse())
	})

	It("should honor a grant pattern", func() {
		s = sram.New(4, 64, sram.WithGrantPattern(func(cycle uint64) bool {
			return cycle%2 == 1
		}))

		Expect(s.Grant()).To(BeFalse())
		s.Tick(true, false, 0, nil, nil)
		_, valid, _ := s.Output()
		Expect(valid).To(BeFalse())
		Expect(s.Stats().GrantStalls).To(Equal(uint64(1)))

		Expect(s.Grant()).To(BeTrue())
		s.Tick(true, false, 0, nil, nil)
		_, valid, _ = s.Output()
		Expect(valid).To(BeTrue())
	})

	It("should flag reads of faulted addresses", func() {
		s = sram.New(4, 64, sram.WithReadErrorPattern(func(addr uint32) bool {
			return addr == 7
		}))

		s.Tick(true, false, 7, nil, nil)
		_, valid, readErr := s.Output()
		Expect(valid).To(BeTrue())
		Expect(readErr).To(BeTrue())

		s.Tick(true, false, 8, nil, nil)
		_, _, readErr = s.Output()
		Expect(readErr).To(BeFalse())
	})

	It("should wrap addresses beyond the array depth", func() {
		s.Poke(2, []byte{0xEE, 0, 0, 0})
		Expect(s.Peek(66)).To(Equal([]byte{0xEE, 0, 0, 0})) // 66 % 64 == 2
	})

	It("should count accesses", func() {
		s.Tick(true, true, 0, []byte{1, 0, 0, 0}, []bool{true, false, false, false})
		s.Tick(true, false, 0, nil, nil)
		Expect(s.Stats().Writes).To(Equal(uint64(1)))
		Expect(s.Stats().Reads).To(Equal(uint64(1)))
	})

	It("should report its geometry", func() {
		Expect(s.WordBytes()).To(Equal(4))
		Expect(s.Depth()).To(Equal(uint32(64)))
	})
})
