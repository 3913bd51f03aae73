package version

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Gate holds the detected version of the component library under test.
// It is constructed once per suite and immutable afterwards; cases
// compare against it to decide whether they apply. An unknown gate
// satisfies no predicate, so version-pinned cases skip rather than run
// against an engine of unknown vintage.
type Gate struct {
	detected string // canonical "vX.Y.Z", or "" when unknown
}

// Detect builds a gate from a raw version string ("1.2.3" or "v1.2.3").
func Detect(raw string) (Gate, error) {
	v := canonical(raw)
	if v == "" {
		return Gate{}, fmt.Errorf("version: %q is not a valid semantic version", raw)
	}
	return Gate{detected: v}, nil
}

// Unknown returns the gate for an undetectable component version.
func Unknown() Gate {
	return Gate{}
}

// Known reports whether a version was detected.
func (g Gate) Known() bool {
	return g.detected != ""
}

// Detected returns the canonical detected version, if known.
func (g Gate) Detected() (string, bool) {
	return g.detected, g.detected != ""
}

// AtLeast reports whether the detected version is >= min.
func (g Gate) AtLeast(min string) bool {
	if !g.Known() {
		return false
	}
	m := canonical(min)
	return m != "" && semver.Compare(g.detected, m) >= 0
}

// AtMost reports whether the detected version is <= max.
func (g Gate) AtMost(max string) bool {
	if !g.Known() {
		return false
	}
	m := canonical(max)
	return m != "" && semver.Compare(g.detected, m) <= 0
}

// Between reports whether the detected version lies in [min, max].
// Empty bounds are open.
func (g Gate) Between(min, max string) bool {
	if !g.Known() {
		return false
	}
	if min != "" && !g.AtLeast(min) {
		return false
	}
	if max != "" && !g.AtMost(max) {
		return false
	}
	return true
}

func canonical(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}
