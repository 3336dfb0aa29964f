// Package download fetches the photos listed in the PID lookup table into a
// blob store, one object per photo at "<FID>/<PID>.jpg".
package download

import (
	"context"
	"net/http"

	"github.com/agentstation/fiwdb/internal/blob/core"
	"github.com/agentstation/fiwdb/pkg/constants"
	"github.com/agentstation/fiwdb/pkg/errors"
	"github.com/agentstation/fiwdb/pkg/fiwdb"
	"github.com/agentstation/fiwdb/pkg/logging"
)

// Fetcher issues GET requests. *transport.Client satisfies it.
type Fetcher interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

// Options tune a run.
type Options struct {
	// MaxItems caps how many records are processed. 0 means all of them.
	MaxItems int

	// SkipExisting leaves keys already present in the store alone instead
	// of counting them as failures.
	SkipExisting bool
}

// Stats summarizes a run.
type Stats struct {
	Total     int `json:"total" yaml:"total"`
	Attempted int `json:"attempted" yaml:"attempted"`
	Saved     int `json:"saved" yaml:"saved"`
	Skipped   int `json:"skipped" yaml:"skipped"`
	Failed    int `json:"failed" yaml:"failed"`
}

// Downloader copies photos from their URLs into a store.
type Downloader struct {
	fetch Fetcher
	store core.Store
	opts  Options
}

// New creates a Downloader.
func New(fetch Fetcher, store core.Store, opts Options) *Downloader {
	return &Downloader{fetch: fetch, store: store, opts: opts}
}

// Key is the store key for a record.
func Key(rec fiwdb.PIDRecord) string {
	return string(rec.FID) + "/" + rec.PID + constants.ImageExt
}

// Run downloads records in order. A failed item is logged and skipped and
// never retried; only cancellation stops the run early, in which case the
// stats so far are returned with an error matching errors.ErrCanceled.
func (d *Downloader) Run(ctx context.Context, records []fiwdb.PIDRecord) (Stats, error) {
	logger := logging.FromContext(ctx)

	todo := records
	if d.opts.MaxItems > 0 && len(todo) > d.opts.MaxItems {
		todo = todo[:d.opts.MaxItems]
	}
	stats := Stats{Total: len(records)}
	logger.Info().
		Int("photos", len(records)).
		Int("selected", len(todo)).
		Str("driver", string(d.store.Driver())).
		Msg("Downloading images")

	for _, rec := range todo {
		if ctx.Err() != nil {
			return stats, errors.WrapResource("download", "images", "", errors.ErrCanceled)
		}
		key := Key(rec)

		if d.opts.SkipExisting {
			if _, err := d.store.Head(ctx, key); err == nil {
				stats.Skipped++
				logger.Debug().Str("key", key).Msg("Image already stored")
				continue
			}
		}

		stats.Attempted++
		if err := d.one(ctx, rec, key); err != nil {
			if errors.IsCanceled(err) || ctx.Err() != nil {
				return stats, errors.WrapResource("download", "images", "", errors.ErrCanceled)
			}
			stats.Failed++
			logger.Error().
				Err(err).
				Str("pid", rec.PID).
				Str("fid", string(rec.FID)).
				Str("url", rec.URL).
				Msg("Image download failed")
			continue
		}
		stats.Saved++
		logger.Debug().Str("pid", rec.PID).Str("key", key).Msg("Saved image")
	}

	logger.Info().
		Int("saved", stats.Saved).
		Int("skipped", stats.Skipped).
		Int("failed", stats.Failed).
		Msg("Download finished")
	return stats, nil
}

func (d *Downloader) one(ctx context.Context, rec fiwdb.PIDRecord, key string) error {
	if rec.URL == "" {
		return errors.NewValidationError("url", rec.URL, "photo has no URL")
	}
	resp, err := d.fetch.Get(ctx, rec.URL)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	_, err = d.store.Put(ctx, key, resp.Body, core.PutOptions{
		ContentType: contentType,
		Metadata:    map[string]string{"fid": string(rec.FID), "pid": rec.PID, "source": rec.URL},
	})
	return err
}
