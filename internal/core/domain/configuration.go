package domain

import (
	"fmt"
	"maps"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// BuildConfiguration identifies one analysis configuration: a mnemonic such
// as "target" or "exec" plus the build option values it pins. It is immutable
// after construction. An absent configuration is represented by a nil pointer.
type BuildConfiguration struct {
	mnemonic string
	options  map[string]string
	checksum uint64
}

// NewConfiguration creates a configuration from a mnemonic and its options.
// The options map is copied; the checksum is fixed at construction.
func NewConfiguration(mnemonic string, options map[string]string) *BuildConfiguration {
	c := &BuildConfiguration{
		mnemonic: mnemonic,
		options:  maps.Clone(options),
	}
	c.checksum = c.computeChecksum()
	return c
}

// Mnemonic returns the short configuration name, e.g. "target".
func (c *BuildConfiguration) Mnemonic() string {
	return c.mnemonic
}

// Option returns the value for an option key.
func (c *BuildConfiguration) Option(key string) (string, bool) {
	v, ok := c.options[key]
	return v, ok
}

// Checksum returns the deterministic content hash of the configuration.
// Equal configurations always share a checksum.
func (c *BuildConfiguration) Checksum() uint64 {
	return c.checksum
}

// Equal reports whether both configurations pin the same mnemonic and options.
// It is nil-safe: two absent configurations are equal, an absent and a present
// one never are.
func (c *BuildConfiguration) Equal(other *BuildConfiguration) bool {
	if c == nil || other == nil {
		return c == nil && other == nil
	}
	return c.mnemonic == other.mnemonic && maps.Equal(c.options, other.options)
}

// String renders the mnemonic with a short checksum suffix for diagnostics.
func (c *BuildConfiguration) String() string {
	if c == nil {
		return "none"
	}
	return fmt.Sprintf("%s-%08x", c.mnemonic, c.checksum&0xffffffff)
}

func (c *BuildConfiguration) computeChecksum() uint64 {
	digest := xxhash.New()

	_, _ = digest.WriteString(c.mnemonic)
	_, _ = digest.Write([]byte{0})

	for _, key := range slices.Sorted(maps.Keys(c.options)) {
		_, _ = digest.WriteString(key)
		_, _ = digest.Write([]byte{0})
		_, _ = digest.WriteString(c.options[key])
		_, _ = digest.Write([]byte{0})
	}

	return digest.Sum64()
}
