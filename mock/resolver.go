package mock

import (
	"context"

	"github.com/artfetch/artfetch"
)

var _ artfetch.ImageResolver = (*ImageResolver)(nil)

// ImageResolver is a mock implementation of artfetch.ImageResolver.
type ImageResolver struct {
	ResolveFn func(ctx context.Context, doc *artfetch.Document) (artfetch.ResolveStats, error)
}

func (r *ImageResolver) Resolve(ctx context.Context, doc *artfetch.Document) (artfetch.ResolveStats, error) {
	return r.ResolveFn(ctx, doc)
}

var _ artfetch.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of artfetch.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.WaitFn == nil {
		return nil
	}
	return d.WaitFn(ctx, domain)
}
