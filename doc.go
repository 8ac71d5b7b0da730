/*
Package proofsim simulates how an RGB image renders when separated into four
print ink channels (CMYK) on a chosen substrate. It applies a non-linear
dot-gain model per channel, flags pixels likely to fall outside the
substrate's reproducible color range and aggregates per-pixel ink coverage
into a three-tier risk verdict.

The engine receives a decoded RGBA pixel buffer plus a settings record and
returns a transformed pixel buffer, a warning overlay buffer and a
statistics record. It holds no state between invocations apart from the
static substrate preset table. The transform is a deliberately simplified
approximation, not a profile-based color management pipeline.
*/
package proofsim

import "fmt"

type ProofsimVersion struct {
	Major, Minor, Patch uint
}

func (v ProofsimVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (v ProofsimVersion) Equal(o ProofsimVersion) bool {
	return v.Major == o.Major && v.Minor == o.Minor && v.Patch == o.Patch
}

func (v ProofsimVersion) After(o ProofsimVersion) bool {
	switch {
	case v.Major == o.Major:
		switch {
		case v.Minor == o.Minor:
			return v.Patch > o.Patch
		case v.Minor > o.Minor:
			return true
		case v.Minor < o.Minor:
			return false
		}
	case v.Major > o.Major:
		return true
	case v.Major < o.Major:
		return false
	}
	return false
}

func (v ProofsimVersion) Before(o ProofsimVersion) bool {
	return !v.Equal(o) && !v.After(o)
}

var Version = ProofsimVersion{1, 0, 0}
