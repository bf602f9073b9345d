package main

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"revoltkit/models"
)

// usageTracker caps how many ask requests each user gets per day.
type usageTracker struct {
	mu         sync.Mutex
	counts     map[models.UserID]int
	dailyLimit int
}

func newUsageTracker(ctx context.Context) *usageTracker {
	ut := &usageTracker{
		counts:     make(map[models.UserID]int),
		dailyLimit: viper.GetInt("openrouter.daily_request_limit"),
	}

	go ut.resetDaily(ctx)

	return ut
}

// allow records one request for the user and reports whether they are
// still under the daily limit.
func (t *usageTracker) allow(id models.UserID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.counts[id] >= t.dailyLimit {
		return false
	}

	t.counts[id]++

	return true
}

func (t *usageTracker) resetDaily(ctx context.Context) {
	reset := getNextResetTime()

	for {
		log.Debug().Time("reset", reset).Msg("running reset timer")
		select {
		case <-time.After(time.Until(reset)):
			log.Debug().Msg("resetting daily request counts")
			t.mu.Lock()
			t.counts = make(map[models.UserID]int)
			t.mu.Unlock()
			time.Sleep(time.Second)
			reset = getNextResetTime()
		case <-ctx.Done():
			log.Debug().Msg("stopping daily reset")
			return
		}
	}
}

func getNextResetTime() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
}
