package willingbox

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Sweeper periodically finalizes scores for boxes whose reveal delay
// has elapsed. The read path recomputes eligibility on its own, so the
// sweep only exists to complete weeks nobody is looking at.
type Sweeper struct {
	service  Service
	interval time.Duration
	log      *logrus.Logger
}

func NewSweeper(service Service, interval time.Duration, log *logrus.Logger) *Sweeper {
	return &Sweeper{service: service, interval: interval, log: log}
}

func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sweepCtx, cancel := context.WithTimeout(ctx, time.Minute)
			n, err := s.service.FinalizeDueScores(sweepCtx)
			cancel()
			if err != nil {
				s.log.WithError(err).Error("reveal sweep failed")
				continue
			}
			if n > 0 {
				s.log.WithField("finalized", n).Info("reveal sweep completed weekly scores")
			}
		case <-ctx.Done():
			return
		}
	}
}
