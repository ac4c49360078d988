package board

import (
	"context"
	"log/slog"
	"time"
)

const DefaultPollInterval = 5 * time.Second

// Poller feeds a Board from a Source on a fixed interval.
type Poller struct {
	Source   Source
	Board    *Board
	Interval time.Duration
	Logger   *slog.Logger

	// OnRefresh runs after every successful refresh.
	OnRefresh func()
	// OnError runs when the source fails. The previous snapshot stays in place.
	OnError func(error)
}

// Run refreshes immediately, then on every tick until ctx is done.
func (p *Poller) Run(ctx context.Context) error {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	_ = p.RefreshOnce(ctx)

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			_ = p.RefreshOnce(ctx)
		}
	}
}

func (p *Poller) RefreshOnce(ctx context.Context) error {
	items, err := p.Source.ListItems(ctx)
	if err != nil {
		p.logger().Warn("refresh failed", "err", err)
		if p.OnError != nil {
			p.OnError(err)
		}
		return err
	}
	p.Board.Refresh(items)
	if p.OnRefresh != nil {
		p.OnRefresh()
	}
	return nil
}

func (p *Poller) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
