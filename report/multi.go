package report

import (
	"context"
	"errors"

	"github.com/viant/ctxsim/pipeline"
)

// Multi hands every table to each of its sinks in order. A failing sink
// does not prevent the others from receiving the table.
type Multi []pipeline.Sink

// Write implements pipeline.Sink.
func (m Multi) Write(ctx context.Context, table pipeline.Table) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Write(ctx, table); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
