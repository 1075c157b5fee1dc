package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Version identifies the target code release an output deck must be
// legal for. Only the major and minor components influence formatting.
type Version struct {
	Major int
	Minor int
}

var (
	// V62 is the first release with the wide line profile.
	V62 = Version{Major: 6, Minor: 2}
	// V61 uses the legacy narrow line profile.
	V61 = Version{Major: 6, Minor: 1}
)

var ErrBadVersion = errors.New("bad version")

func ParseVersion(v string) (Version, error) {
	parts := strings.SplitN(v, ".", 2)
	if len(parts) != 2 {
		return Version{}, fmt.Errorf("%w: %q", ErrBadVersion, v)
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrBadVersion, v)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrBadVersion, v)
	}
	return Version{Major: major, Minor: minor}, nil
}

func (v Version) String() string {
	d, err := v.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (v Version) MarshalText() ([]byte, error) {
	return []byte(strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor)), nil
}

func (v *Version) UnmarshalText(d []byte) error {
	pv, err := ParseVersion(string(d))
	if err != nil {
		return err
	}
	*v = pv
	return nil
}

// LineWidth returns the maximum legal line width for this version.
// Releases from 6.2 on accept 128 columns; everything older is held
// to the historical 80.
func (v Version) LineWidth() int {
	if v.Major > 6 || (v.Major == 6 && v.Minor >= 2) {
		return 128
	}
	return 80
}

// Indent returns the continuation-line indent width. It is the same
// for every supported version.
func (v Version) Indent() int {
	return 5
}
