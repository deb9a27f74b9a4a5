package pipeline

import (
	"context"
	"errors"

	"github.com/ugswater/dbseeder/internal/domain"
	"github.com/ugswater/dbseeder/internal/wqp"
)

// Update runs one incremental WQP job: everything with a sample date newer
// than the most recent committed result is fetched from the portal and
// pushed through the same resolve and load path as a file seed, so merges
// and dedup behave identically.
func (o *Orchestrator) Update(ctx context.Context, client *wqp.Client) (Summary, error) {
	b, err := Bind("wqp")
	if err != nil {
		return Summary{}, err
	}

	since, err := o.store.MaxSampleDate(ctx)
	if err != nil {
		return Summary{}, err
	}
	if since == nil {
		return Summary{}, errors.New("destination has no results; seed before updating")
	}

	ext, err := client.Window(ctx, *since, domain.Now())
	if err != nil {
		return Summary{}, err
	}

	sum := o.Run(ctx, b, ext)
	return sum, sum.Err
}
