package resource

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/storepulse/internal/client/client"
)

type result struct {
	body string
	err  error
}

type pending struct {
	ctx     context.Context
	req     client.Request
	release chan result
}

// gatedClient hands every call to the test through started and blocks until
// the test releases it.
type gatedClient struct {
	started      chan *pending
	ignoreCancel bool
}

func newGatedClient() *gatedClient {
	return &gatedClient{started: make(chan *pending, 16)}
}

func (g *gatedClient) Do(ctx context.Context, req client.Request, out any) error {
	p := &pending{ctx: ctx, req: req, release: make(chan result)}
	g.started <- p

	var res result
	if g.ignoreCancel {
		res = <-p.release
	} else {
		select {
		case res = <-p.release:
		case <-ctx.Done():
			return &client.TransportError{Message: ctx.Err().Error(), Err: ctx.Err()}
		}
	}
	if res.err != nil {
		return res.err
	}
	return json.Unmarshal([]byte(res.body), out)
}
