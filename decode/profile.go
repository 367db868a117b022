package decode

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/midbel/toml"
)

// Structural constants of the revision A log format, the only revision
// observed so far. The metadata offset in particular is specific to the
// scanner firmware that produced the log; a different firmware revision
// is a profile file away rather than a code change.
const (
	DefaultMetadataOffset = 0x134
	DefaultNameLimit      = 64
	DefaultUnitLimit      = 16
)

// Profile gathers the format-revision-specific constants needed to locate
// and interpret the channel metadata table.
type Profile struct {
	// MetadataOffset is the fixed structural offset where the channel
	// table begins.
	MetadataOffset int `toml:"metadata"`
	// NameLimit and UnitLimit cap the per-channel name and unit strings.
	NameLimit int `toml:"name-limit"`
	UnitLimit int `toml:"unit-limit"`
	// BigEndian selects the multi-byte integer order of the log.
	BigEndian bool `toml:"big-endian"`
}

// DefaultProfile returns the revision A constants.
func DefaultProfile() Profile {
	return Profile{
		MetadataOffset: DefaultMetadataOffset,
		NameLimit:      DefaultNameLimit,
		UnitLimit:      DefaultUnitLimit,
	}
}

// LoadProfile reads profile overrides from a TOML file. Fields absent
// from the file keep their revision A defaults.
func LoadProfile(path string) (Profile, error) {
	p := DefaultProfile()
	f, err := os.Open(path)
	if err != nil {
		return p, err
	}
	defer f.Close()
	if err := toml.Decode(f, &p); err != nil {
		return p, fmt.Errorf("decode profile %s: %w", path, err)
	}
	return p, p.Validate()
}

// Validate rejects profiles that cannot describe any log.
func (p Profile) Validate() error {
	if p.MetadataOffset < 0 {
		return fmt.Errorf("profile: negative metadata offset %d", p.MetadataOffset)
	}
	if p.NameLimit <= 0 {
		return fmt.Errorf("profile: name limit must be positive, got %d", p.NameLimit)
	}
	if p.UnitLimit <= 0 {
		return fmt.Errorf("profile: unit limit must be positive, got %d", p.UnitLimit)
	}
	return nil
}

func (p Profile) order() binary.ByteOrder {
	if p.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}
