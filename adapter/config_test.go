package adapter_test

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tlsim/adapter"
)

var _ = Describe("Config", func() {
	It("should provide valid defaults", func() {
		cfg := adapter.DefaultConfig()
		Expect(cfg.Validate()).To(Succeed())
		Expect(cfg.MemDataWidth).To(Equal(32))
		Expect(cfg.Outstanding).To(Equal(2))
		Expect(cfg.ByteAccess).To(BeTrue())
		Expect(cfg.WordsPerMemWord()).To(Equal(1))
		Expect(cfg.MemDataBytes()).To(Equal(4))
	})

	It("should reject a memory width that is not a bus-width multiple", func() {
		cfg := adapter.DefaultConfig()
		cfg.MemDataWidth = 48
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("multiple")))
	})

	It("should reject a non-power-of-two width ratio", func() {
		cfg := adapter.DefaultConfig()
		cfg.MemDataWidth = 96
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("power of two")))
	})

	It("should reject zero outstanding capacity", func() {
		cfg := adapter.DefaultConfig()
		cfg.Outstanding = 0
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("outstanding")))
	})

	It("should reject an out-of-range address width", func() {
		cfg := adapter.DefaultConfig()
		cfg.MemAddrWidth = 0
		Expect(cfg.Validate()).NotTo(Succeed())
		cfg.MemAddrWidth = 31
		Expect(cfg.Validate()).NotTo(Succeed())
	})

	It("should reject the reserved direction-disable hooks", func() {
		cfg := adapter.DefaultConfig()
		cfg.ErrOnWrite = true
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("reserved")))

		cfg = adapter.DefaultConfig()
		cfg.ErrOnRead = true
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("reserved")))
	})

	It("should round-trip through a JSON file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "adapter.json")

		cfg := adapter.DefaultConfig()
		cfg.MemDataWidth = 128
		cfg.Outstanding = 4
		cfg.ByteAccess = false
		Expect(cfg.SaveConfig(path)).To(Succeed())

		loaded, err := adapter.LoadConfig(path)
		Expect(err).To(BeNil())
		Expect(loaded).To(Equal(cfg))
	})

	It("should fail to load a missing file", func() {
		_, err := adapter.LoadConfig("/nonexistent/adapter.json")
		Expect(err).To(MatchError(ContainSubstring("failed to read")))
	})

	It("should clone without aliasing", func() {
		cfg := adapter.DefaultConfig()
		clone := cfg.Clone()
		clone.Outstanding = 16
		Expect(cfg.Outstanding).To(Equal(2))
	})
})
