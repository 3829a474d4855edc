// Package version holds the target language version and the feature gate
// deciding which grammar productions that version can express.
//
// The gate policy lives in one table here so version comparisons are
// auditable in one place instead of inlined across lowering routines.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a target language version as a (major, minor) pair. It is
// immutable for the duration of a lowering pass.
type Version struct {
	Major int
	Minor int
}

// New returns a version with the given major and minor components.
func New(major, minor int) Version {
	return Version{Major: major, Minor: minor}
}

// Parse parses a "major.minor" version string such as "3.12".
func Parse(s string) (Version, error) {
	major, minor, ok := strings.Cut(s, ".")
	if !ok {
		return Version{}, fmt.Errorf("invalid target version %q: expected major.minor", s)
	}
	maj, err := strconv.Atoi(major)
	if err != nil {
		return Version{}, fmt.Errorf("invalid target version %q: %w", s, err)
	}
	mnr, err := strconv.Atoi(minor)
	if err != nil {
		return Version{}, fmt.Errorf("invalid target version %q: %w", s, err)
	}
	return Version{Major: maj, Minor: mnr}, nil
}

// String returns the version in "major.minor" form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// AtLeast reports whether v is the same as or newer than o.
func (v Version) AtLeast(o Version) bool {
	if v.Major != o.Major {
		return v.Major > o.Major
	}
	return v.Minor >= o.Minor
}

// Feature is a version-gated grammar capability.
type Feature int

// Version-gated features.
const (
	// FeatureTypeParams is PEP 695 type-parameter syntax (type variables,
	// parameter specifications, variadic type variables).
	FeatureTypeParams Feature = iota
	// FeatureTypeParamDefaults is PEP 696 default values on type parameters.
	FeatureTypeParamDefaults
)

// introduced is the gate policy: the minimum version for each feature.
var introduced = map[Feature]Version{
	FeatureTypeParams:        {Major: 3, Minor: 12},
	FeatureTypeParamDefaults: {Major: 3, Minor: 13},
}

// Supports reports whether the version can express the feature.
func (v Version) Supports(f Feature) bool {
	minimum, ok := introduced[f]
	if !ok {
		return false
	}
	return v.AtLeast(minimum)
}
