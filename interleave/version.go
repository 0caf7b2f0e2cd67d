package interleave

import "golang.org/x/mod/semver"

// Version information for the interleaving controller.
const (
	// Version is the current version of the controller.
	Version = "0.1.0"

	// VersionMajor is the major version number.
	VersionMajor = 0

	// VersionMinor is the minor version number.
	VersionMinor = 1

	// VersionPatch is the patch version number.
	VersionPatch = 0
)

// Info provides runtime information about the controller.
type Info struct {
	// Version is the controller version string.
	Version string

	// Strategy names how interleavings are chosen.
	Strategy string

	// Workers is the number of controlled workers currently alive.
	Workers int
}

// GetInfo returns information about the controller.
//
// Example:
//
//	info := interleave.GetInfo()
//	fmt.Printf("interleave %s (%s)\n", info.Version, info.Strategy)
func GetInfo() Info {
	return Info{
		Version:  Version,
		Strategy: "oracle-driven rendezvous",
		Workers:  liveWorkers(),
	}
}

// Compatible reports whether a schedule recorded by version v replays
// identically on this build.
//
// The decoding of oracle input into scheduling decisions only changes with
// the major version, or with the minor version before 1.0.
func Compatible(v string) bool {
	v = canonical(v)
	cur := canonical(Version)
	if !semver.IsValid(v) {
		return false
	}
	if semver.Major(v) != semver.Major(cur) {
		return false
	}
	if semver.Major(cur) == "v0" {
		return semver.MajorMinor(v) == semver.MajorMinor(cur)
	}
	return true
}

// canonical accepts versions with or without the leading "v".
func canonical(v string) string {
	if v != "" && v[0] != 'v' {
		v = "v" + v
	}
	return semver.Canonical(v)
}
