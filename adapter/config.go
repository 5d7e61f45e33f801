package adapter

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/tlsim/tlul"
)

// Config holds the adapter parameters. All values are fixed at
// instantiation; the adapter never mutates its configuration.
type Config struct {
	// MemAddrWidth is the width in bits of the memory-array address the
	// adapter drives. Default: 12 (a 4K-word array).
	MemAddrWidth int `json:"mem_addr_width"`

	// MemDataWidth is the memory word width in bits. It must be a
	// power-of-two multiple of the bus data width. Default: 32.
	MemDataWidth int `json:"mem_data_width"`

	// Outstanding is the maximum number of admitted requests whose
	// responses have not yet been delivered. Default: 2.
	Outstanding int `json:"outstanding"`

	// ByteAccess permits byte-partial writes. When false, a write whose
	// mask does not cover every lane (or whose size is not the full-word
	// code) is answered with an error response and never reaches memory.
	// Default: true.
	ByteAccess bool `json:"byte_access"`

	// ErrOnWrite and ErrOnRead are reserved hooks for globally rejecting
	// one transfer direction. Their semantics are unspecified upstream;
	// Validate rejects configurations that set them.
	ErrOnWrite bool `json:"err_on_write"`
	ErrOnRead  bool `json:"err_on_read"`
}

// DefaultConfig returns a Config with reference values: a 4K-word array of
// bus-width words, two outstanding transactions, byte writes permitted.
func DefaultConfig() *Config {
	return &Config{
		MemAddrWidth: 12,
		MemDataWidth: tlul.DataWidth,
		Outstanding:  2,
		ByteAccess:   true,
	}
}

// LoadConfig loads a Config from a JSON file. Fields absent from the file
// keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read adapter config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse adapter config: %w", err)
	}

	return config, nil
}

// SaveConfig writes the Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize adapter config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write adapter config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration is realizable.
func (c *Config) Validate() error {
	if c.MemAddrWidth < 1 || c.MemAddrWidth > 30 {
		return fmt.Errorf("mem_addr_width must be in [1, 30], got %d", c.MemAddrWidth)
	}
	if c.MemDataWidth < tlul.DataWidth || c.MemDataWidth%tlul.DataWidth != 0 {
		return fmt.Errorf("mem_data_width must be a multiple of %d, got %d",
			tlul.DataWidth, c.MemDataWidth)
	}
	ratio := c.MemDataWidth / tlul.DataWidth
	if ratio&(ratio-1) != 0 {
		return fmt.Errorf("mem_data_width / %d must be a power of two, got %d",
			tlul.DataWidth, ratio)
	}
	if c.Outstanding < 1 {
		return fmt.Errorf("outstanding must be >= 1, got %d", c.Outstanding)
	}
	if c.ErrOnWrite {
		return fmt.Errorf("err_on_write is reserved and must be false")
	}
	if c.ErrOnRead {
		return fmt.Errorf("err_on_read is reserved and must be false")
	}
	return nil
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// MemDataBytes returns the memory word width in bytes.
func (c *Config) MemDataBytes() int {
	return c.MemDataWidth / 8
}

// WordsPerMemWord returns how many bus words fit in one memory word.
func (c *Config) WordsPerMemWord() int {
	return c.MemDataWidth / tlul.DataWidth
}
