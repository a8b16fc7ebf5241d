// Readiness polling for high-resolution sources
package io

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultProbeInterval is how often a probe checks for decode completion.
const DefaultProbeInterval = 10 * time.Millisecond

// LoadFunc decodes a file. ImageLoader.LoadImage satisfies it.
type LoadFunc func(path string) (*LoadedImage, error)

// Prober runs a decode in the background and polls until its natural
// dimensions are known.
type Prober struct {
	load     LoadFunc
	interval time.Duration
	logger   *logrus.Logger
}

func NewProber(load LoadFunc, interval time.Duration, logger *logrus.Logger) *Prober {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	return &Prober{
		load:     load,
		interval: interval,
		logger:   logger,
	}
}

// Probe decodes path in its own goroutine and polls the outcome on a ticker,
// calling done exactly once when the decode settles. The poll loop carries no
// deadline; canceling ctx abandons it without calling done.
func (p *Prober) Probe(ctx context.Context, path string, done func(Result)) {
	outcome := make(chan Result, 1)

	go func() {
		loaded, err := p.load(path)
		outcome <- Result{Loaded: loaded, Err: err}
	}()

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				p.logger.WithField("filepath", path).Debug("Probe abandoned")
				return
			case <-ticker.C:
				select {
				case r := <-outcome:
					if ctx.Err() != nil {
						return
					}
					done(r)
					return
				default:
				}
			}
		}
	}()
}
