package boxoffice

import (
	"context"
	"fmt"

	"github.com/boxoffice-api/boxoffice/pkg/invoker"
)

// Client runs validated queries through an Invoker.
type Client struct {
	invoker invoker.Invoker
}

// NewClient returns a Client backed by inv.
func NewClient(inv invoker.Invoker) *Client {
	return &Client{invoker: inv}
}

// Get validates q and runs it. Validation errors are returned as errors;
// process results, including failures, are returned as the Outcome.
func (c *Client) Get(ctx context.Context, q *Query) (*invoker.Outcome, error) {
	args, err := q.Args()
	if err != nil {
		return nil, err
	}

	out, err := c.invoker.Invoke(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("failed to run %s query: %w", q.Kind, err)
	}
	return out, nil
}
