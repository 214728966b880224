package abi

import "fmt"

// Semver is the wire representation of an implementation version.
type Semver struct {
	Major uint32
	Minor uint32
	Patch uint32
}

func (v Semver) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
