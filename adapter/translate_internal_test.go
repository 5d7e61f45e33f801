package adapter

import "testing"

func layoutFor(memDataWidth, memAddrWidth int) layout {
	cfg := DefaultConfig()
	cfg.MemDataWidth = memDataWidth
	cfg.MemAddrWidth = memAddrWidth
	return newLayout(cfg)
}

func TestMemAddress(t *testing.T) {
	tests := []struct {
		name         string
		memDataWidth int
		memAddrWidth int
		busAddr      uint32
		want         uint32
	}{
		{"equal width word 0", 32, 12, 0x0, 0x0},
		{"equal width word 3", 32, 12, 0xC, 0x3},
		{"equal width clips high bits", 32, 8, 0x8000_0400, 0x0},
		{"4x width drops offset bits", 128, 12, 0x34, 0x3},
		{"4x width same mem word", 128, 12, 0x3C, 0x3},
		{"2x width", 64, 12, 0x18, 0x3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := layoutFor(tt.memDataWidth, tt.memAddrWidth)
			if got := l.memAddress(tt.busAddr); got != tt.want {
				t.Errorf("memAddress(%#x) = %#x, want %#x", tt.busAddr, got, tt.want)
			}
		})
	}
}

func TestWordOffset(t *testing.T) {
	tests := []struct {
		name         string
		memDataWidth int
		busAddr      uint32
		want         int
	}{
		{"equal width always zero", 32, 0x1C, 0},
		{"4x width slice 0", 128, 0x30, 0},
		{"4x width slice 1", 128, 0x34, 1},
		{"4x width slice 3", 128, 0x3C, 3},
		{"2x width slice 1", 64, 0xC, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := layoutFor(tt.memDataWidth, 12)
			if got := l.wordOffset(tt.busAddr); got != tt.want {
				t.Errorf("wordOffset(%#x) = %d, want %d", tt.busAddr, got, tt.want)
			}
		})
	}
}

func TestExpandWrite(t *testing.T) {
	l := layoutFor(128, 12)

	wdata, wmask := l.expandWrite(2, 0x5, 0xAABBCCDD)

	if len(wdata) != 16 || len(wmask) != 16 {
		t.Fatalf("expanded width = %d/%d bytes, want 16", len(wdata), len(wmask))
	}

	// Lanes 0 and 2 of slice 2 land at bytes 8 and 10.
	wantData := map[int]byte{8: 0xDD, 10: 0xBB}
	for i := 0; i < 16; i++ {
		want, selected := wantData[i]
		if wmask[i] != selected {
			t.Errorf("wmask[%d] = %v, want %v", i, wmask[i], selected)
		}
		if !selected {
			want = 0
		}
		if wdata[i] != want {
			t.Errorf("wdata[%d] = %#x, want %#x", i, wdata[i], want)
		}
	}
}

func TestExpandWriteIdentityAtEqualWidth(t *testing.T) {
	l := layoutFor(32, 12)

	wdata, wmask := l.expandWrite(0, 0xF, 0x11223344)

	want := []byte{0x44, 0x33, 0x22, 0x11}
	for i, b := range want {
		if wdata[i] != b {
			t.Errorf("wdata[%d] = %#x, want %#x", i, wdata[i], b)
		}
		if !wmask[i] {
			t.Errorf("wmask[%d] = false, want true", i)
		}
	}
}

func TestSliceRead(t *testing.T) {
	l := layoutFor(128, 12)
	word := make([]byte, 16)
	for i := range word {
		word[i] = byte(i + 1)
	}

	tests := []struct {
		name string
		off  int
		mask uint8
		want uint32
	}{
		{"slice 0 full mask", 0, 0xF, 0x04030201},
		{"slice 3 full mask", 3, 0xF, 0x100F0E0D},
		{"slice 1 partial mask", 1, 0x9, 0x08000005},
		{"empty mask", 2, 0x0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.sliceRead(word, tt.off, tt.mask); got != tt.want {
				t.Errorf("sliceRead(off=%d, mask=%#x) = %#x, want %#x",
					tt.off, tt.mask, got, tt.want)
			}
		})
	}
}

func TestSliceReadShortWord(t *testing.T) {
	l := layoutFor(128, 12)

	// A truncated read word must not panic; missing bytes read as zero.
	if got := l.sliceRead([]byte{0xAA, 0xBB}, 0, 0xF); got != 0xBBAA {
		t.Errorf("sliceRead(short word) = %#x, want %#x", got, 0xBBAA)
	}
}
