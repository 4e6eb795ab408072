package pipeline

import (
	"github.com/viant/ctxsim/resolve"
	"github.com/viant/ctxsim/stimulus"
)

// Options is the configuration surface of the scoring core. Context and
// Target policies are independent.
type Options struct {
	// CaseFold must match the fold rule the store was built with.
	CaseFold         bool
	FollowingContext bool
	Collapse         stimulus.CollapseMode
	Context          resolve.Policy
	Target           resolve.Policy
}

func (o Options) splitOptions() stimulus.Options {
	return stimulus.Options{FollowingContext: o.FollowingContext, Collapse: o.Collapse}
}
