package ddi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Version is the api version token handed to every bulk getter, encoded as major<<16 | minor.
type Version uint32

const (
	Version1_5 = Version(1<<16 | 5)
	// CurrentVersion is the version requested when none is configured.
	CurrentVersion = Version1_5
)

// MakeVersion encodes a major and minor pair.
func MakeVersion(major, minor uint16) Version {
	return Version(uint32(major)<<16 | uint32(minor))
}

func (v Version) Major() uint16 { return uint16(v >> 16) }
func (v Version) Minor() uint16 { return uint16(v & 0xffff) }

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major(), v.Minor())
}

// ParseVersion accepts "major.minor" or "major".
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	major, minor, found := strings.Cut(s, ".")
	ma, err := strconv.ParseUint(major, 10, 16)
	if err != nil {
		return 0, errors.WithMessagef(err, "invalid version %q", s)
	}
	var mi uint64
	if found {
		if mi, err = strconv.ParseUint(minor, 10, 16); err != nil {
			return 0, errors.WithMessagef(err, "invalid version %q", s)
		}
	}
	return MakeVersion(uint16(ma), uint16(mi)), nil
}
