package deployment

import (
	cerrors "github.com/redisctl/redisctl/common/errors"
)

// Context holds the routing inputs for one invocation. It is computed once,
// before any backend call, and read-only afterwards. Commands inherently
// bound to one backend never build a Context at all.
type Context struct {
	// Explicit is the --deployment directive, if the user gave one.
	Explicit *Kind
	// Profile is the deployment the active profile declares, if any.
	Profile *Kind
}

// Resolve picks the backend for a command that could target either one.
// Pure function of its inputs: an explicit directive wins unconditionally,
// else the profile's declared deployment, else the invocation is ambiguous.
// Identical inputs always route identically, which scripts rely on.
//
// Profile lookup failures are not Resolve's concern; they surface earlier,
// as ProfileUnresolvedError, from the config layer.
func Resolve(ctx Context, command string) (Kind, error) {
	if ctx.Explicit != nil {
		return *ctx.Explicit, nil
	}
	if ctx.Profile != nil {
		return *ctx.Profile, nil
	}
	return 0, &cerrors.AmbiguousDeploymentError{Command: command}
}
