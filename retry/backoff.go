package retry

import (
	"math"
	"math/rand"
	"time"
)

// jitterFraction is the symmetric jitter applied to computed delays:
// delay - 25% + uniform(0, 50%).
const jitterFraction = 0.25

// randFloat is the randomness source for jitter. Swapped in tests for
// deterministic assertions.
var randFloat = rand.Float64

// Delay computes the wait before the given retry attempt (1-based).
//
// The base delay grows per the policy strategy, is capped at MaxDelay,
// and then jittered by +-25% unless jitter is disabled. Jitter is applied
// after capping, so the effective delay can exceed the cap by up to
// 12.5%; callers depending on the cap as a hard ceiling must disable
// jitter.
func Delay(attempt int, p *Policy) time.Duration {
	pol := p.normalized()
	if attempt < 1 {
		attempt = 1
	}

	initial := float64(pol.InitialDelay)

	var delay float64
	switch pol.Strategy {
	case StrategyExponential:
		delay = initial * math.Pow(2, float64(attempt-1))
	case StrategyLinear:
		delay = initial * float64(attempt)
	default:
		// StrategyFixed and any unrecognized strategy.
		delay = initial
	}

	if delay > float64(pol.MaxDelay) {
		delay = float64(pol.MaxDelay)
	}

	if !pol.DisableJitter {
		delay = delay - delay*jitterFraction + randFloat()*(delay*2*jitterFraction)

		// Round jittered delays to the nearest millisecond.
		delay = math.Round(delay/float64(time.Millisecond)) * float64(time.Millisecond)
	}

	if delay < 0 {
		delay = 0
	}

	return time.Duration(delay)
}
