// Background retrieval of high-resolution variants
package gui

import (
	"context"

	"fyne.io/fyne/v2"
	"github.com/sirupsen/logrus"

	"image-lightbox/internal/io"
)

// hdFetcher retrieves high-resolution variants off the UI thread and delivers
// results back on it.
type hdFetcher interface {
	probe(ctx context.Context, path string, done func(io.Result))
	load(ctx context.Context, path string, done func(io.Result))
}

// asyncFetcher is the production fetcher: decodes run in the background and
// results marshal onto the UI thread with fyne.Do.
type asyncFetcher struct {
	loader *io.ImageLoader
	prober *io.Prober
}

func newAsyncFetcher(logger *logrus.Logger) *asyncFetcher {
	loader := io.NewImageLoader(logger)
	return &asyncFetcher{
		loader: loader,
		prober: io.NewProber(loader.LoadImage, io.DefaultProbeInterval, logger),
	}
}

// probe polls an explicit HD target until its decode settles.
func (f *asyncFetcher) probe(ctx context.Context, path string, done func(io.Result)) {
	f.prober.Probe(ctx, path, func(r io.Result) {
		fyne.Do(func() {
			if ctx.Err() == nil {
				done(r)
			}
		})
	})
}

// load waits for a source-set variant's completion signal.
func (f *asyncFetcher) load(ctx context.Context, path string, done func(io.Result)) {
	ch := f.loader.LoadAsync(path)
	go func() {
		select {
		case <-ctx.Done():
		case r := <-ch:
			fyne.Do(func() {
				if ctx.Err() == nil {
					done(r)
				}
			})
		}
	}()
}
