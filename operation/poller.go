package operation

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"
	log "github.com/sirupsen/logrus"

	"github.com/redisctl/redisctl/common/stats"
)

// maxConsecutiveFailures bounds how many status queries in a row may fail
// before the poll is abandoned as Unreliable. A lone transient failure is
// retried on the next interval; only a degraded status channel escalates.
const maxConsecutiveFailures = 3

// ProgressFunc observes the poll after every iteration, terminal or not.
// Non-terminal reports carry Status Polling plus the elapsed time and last
// known remote status for interactive display.
type ProgressFunc func(h Handle, o Outcome)

// Poller drives one operation to a terminal state by querying its status at
// a fixed interval. A Poller is built per invocation and owns no shared
// state; it issues no further queries once it has reported a terminal
// outcome.
type Poller struct {
	backend  Backend
	policy   WaitPolicy
	progress ProgressFunc
	stat     stats.Receiver
}

func NewPoller(b Backend, policy WaitPolicy, progress ProgressFunc, stat stats.Receiver) *Poller {
	return &Poller{backend: b, policy: policy, progress: progress, stat: stat.Scope("poller")}
}

// Poll queries the operation's status until it terminates, the wait budget
// runs out, or ctx is cancelled. The interval is measured from the end of
// one query to the start of the next, so slow queries do not compound the
// delay, and the budget is re-checked after every query so a slow query
// triggers TimedOut promptly instead of buying a free extra iteration.
func (p *Poller) Poll(ctx context.Context, h Handle) Outcome {
	start := time.Now()
	deadline := start.Add(p.policy.Timeout)
	interval := backoff.NewConstantBackOff(p.policy.Interval)

	failures := 0
	var lastRemote, lastDetail string
	var lastErr error

	outcome := func(s Status) Outcome {
		return Outcome{
			Status:           s,
			Elapsed:          time.Since(start),
			LastRemoteStatus: lastRemote,
			ErrorDetail:      lastDetail,
		}
	}

	for {
		if ctx.Err() != nil {
			return p.finish(h, outcome(Cancelled))
		}
		if !time.Now().Before(deadline) {
			return p.finish(h, outcome(TimedOut))
		}

		queryStart := time.Now()
		doc, err := p.backend.OperationStatus(ctx, h.ID)
		p.stat.Latency("statusQueryLatency_ms", queryStart)
		p.stat.Counter("statusQueries").Inc(1)

		if err != nil {
			// A cancelled context surfaces as a query error; report it as
			// cancellation, never as a remote or channel failure.
			if ctx.Err() != nil {
				return p.finish(h, outcome(Cancelled))
			}
			failures++
			lastErr = err
			p.stat.Counter("transientFailures").Inc(1)
			log.WithFields(log.Fields{"operation": h.ID, "failures": failures}).
				Debugf("status query failed: %v", err)
			if failures >= maxConsecutiveFailures {
				lastDetail = lastErr.Error()
				return p.finish(h, outcome(Unreliable))
			}
		} else {
			failures = 0
			c := p.backend.Classify(doc)
			lastRemote = c.RemoteStatus
			lastDetail = c.Detail
			if c.Terminal {
				if c.Failed {
					return p.finish(h, outcome(Failed))
				}
				return p.finish(h, outcome(Succeeded))
			}
		}

		p.observe(h, outcome(Polling))

		// Budget re-check after the query: if the query itself ate the rest
		// of the budget, report the timeout now rather than sleeping into it.
		if !time.Now().Before(deadline) {
			return p.finish(h, outcome(TimedOut))
		}

		timer := time.NewTimer(interval.NextBackOff())
		select {
		case <-ctx.Done():
			timer.Stop()
			return p.finish(h, outcome(Cancelled))
		case <-timer.C:
		}
	}
}

func (p *Poller) observe(h Handle, o Outcome) {
	if p.progress != nil {
		p.progress(h, o)
	}
}

func (p *Poller) finish(h Handle, o Outcome) Outcome {
	p.observe(h, o)
	log.WithFields(log.Fields{
		"operation": h.ID,
		"backend":   h.Backend.String(),
		"status":    o.Status.String(),
		"elapsed":   o.Elapsed,
	}).Debug("poll finished")
	return o
}
