package pipeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/referent"
	"github.com/fwojciec/referent/goquery"
	"github.com/fwojciec/referent/mock"
	"github.com/fwojciec/referent/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("fetches and extracts article", func(t *testing.T) {
		t.Parallel()

		var fetched string
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				fetched = url
				return `<html><body><article><h1>X</h1><p>Hello world. This is a test.</p></article></body></html>`, nil
			},
		}

		p := pipeline.NewParser(fetcher, goquery.NewExtractor())
		article, err := p.Parse(context.Background(), "  https://example.com/post  ")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/post", fetched)
		assert.Equal(t, "X", article.Title)
		assert.Equal(t, "Hello world. This is a test.", article.Body)
		assert.Nil(t, article.PublishedAt)
	})

	t.Run("rejects invalid URL without fetching", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				t.Fatal("fetch must not be called")
				return "", nil
			},
		}

		p := pipeline.NewParser(fetcher, goquery.NewExtractor())

		for _, raw := range []string{"", "   ", "example.com", "ftp://example.com", "https://"} {
			_, err := p.Parse(context.Background(), raw)
			require.Error(t, err, raw)
			assert.Equal(t, referent.EINVALID, referent.ErrorCode(err), raw)
		}
	})

	t.Run("reports timeout when fetch exceeds budget", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, _ string) (string, error) {
				<-ctx.Done()
				return "", ctx.Err()
			},
		}

		p := pipeline.NewParser(fetcher, goquery.NewExtractor())
		p.Timeout = 10 * time.Millisecond

		_, err := p.Parse(context.Background(), "https://example.com")

		require.Error(t, err)
		assert.Equal(t, referent.ETIMEOUT, referent.ErrorCode(err))
	})

	t.Run("propagates upstream fetch error", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "", referent.UpstreamErrorf(404, "", "failed to fetch URL: 404 Not Found")
			},
		}

		p := pipeline.NewParser(fetcher, goquery.NewExtractor())
		_, err := p.Parse(context.Background(), "https://example.com/missing")

		require.Error(t, err)
		assert.Equal(t, referent.ENOTFOUND, referent.ErrorCode(err))
		assert.Equal(t, 404, referent.ErrorStatus(err))
	})

	t.Run("does not retry network failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				calls++
				if calls == 1 {
					return "", referent.Errorf(referent.ENETWORK, "connection reset")
				}
				return `<html><head><title>T</title></head></html>`, nil
			},
		}

		p := pipeline.NewParser(fetcher, goquery.NewExtractor())
		_, err := p.Parse(context.Background(), "https://example.com")

		require.Error(t, err)
		assert.Equal(t, referent.ENETWORK, referent.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})
}
