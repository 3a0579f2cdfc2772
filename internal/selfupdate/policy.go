package selfupdate

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrMajorUpgrade  = errors.New("release changes the major version")
	ErrBadVersion    = errors.New("not a release version")
)

// Plan is the outcome of applying the version policy to a candidate
// release.
type Plan struct {
	From string
	To   string

	// Downgrade is set when a pinned target is older than the running
	// build.
	Downgrade bool
}

// plan decides whether moving from current to target is allowed. A new
// major version may change the interview database format, so it is only
// installed when allowMajor is set. Pinned targets may go backwards
// within the same major version; the latest release may not.
func plan(current, target string, pinned, allowMajor bool) (Plan, error) {
	cur := canonical(current)
	if cur == "" {
		return Plan{}, ErrDevBuild
	}
	tgt := canonical(target)
	if tgt == "" {
		return Plan{}, fmt.Errorf("%w: %q", ErrBadVersion, target)
	}

	cmp := semver.Compare(tgt, cur)
	switch {
	case cmp == 0:
		return Plan{}, ErrAlreadyLatest
	case cmp < 0 && !pinned:
		return Plan{}, ErrAlreadyLatest
	}
	if semver.Major(tgt) != semver.Major(cur) && !allowMajor {
		return Plan{}, fmt.Errorf("%w: %s -> %s", ErrMajorUpgrade, current, target)
	}
	return Plan{From: current, To: tagged(target), Downgrade: cmp < 0}, nil
}

// tagged returns v as a release tag, which always carries the "v".
func tagged(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
