package provider

import (
	"context"

	"github.com/recera/rodata/internal/fetch"
	"github.com/recera/rodata/internal/jsonstream"
	"github.com/recera/rodata/internal/obs"
)

// singleURLCaller fetches exactly one URL and runs body once over the
// resulting token stream. Used by every driver that does not paginate:
// single-entity, function, and the supplemented property driver.
type singleURLCaller struct {
	fetcher *fetch.Fetcher
}

func (c *singleURLCaller) call(ctx context.Context, url string, user, pass *string, body func(*jsonstream.Stream) error) error {
	rc, err := c.fetcher.Fetch(ctx, url, user, pass)
	if err != nil {
		return err
	}
	obs.RecordPaginationFetch(ctx)
	defer rc.Close()
	return body(jsonstream.NewStream(rc))
}

// multiURLCaller fetches a URL, runs body over the resulting stream, and —
// as long as body reports a non-empty next-page URL — repeats against
// that URL. This is the entity-set driver's pagination loop, factored out
// so the page-to-page mechanics are independent of what body does with
// each page's stream.
type multiURLCaller struct {
	fetcher *fetch.Fetcher
}

func (c *multiURLCaller) call(ctx context.Context, startURL string, user, pass *string, body func(*jsonstream.Stream) (nextURL string, err error)) error {
	url := startURL
	for url != "" {
		rc, err := c.fetcher.Fetch(ctx, url, user, pass)
		if err != nil {
			return err
		}
		obs.RecordPaginationFetch(ctx)
		next, bodyErr := body(jsonstream.NewStream(rc))
		closeErr := rc.Close()
		if bodyErr != nil {
			return bodyErr
		}
		if closeErr != nil {
			return closeErr
		}
		url = next
	}
	return nil
}
