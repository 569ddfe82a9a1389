package scheduler

import (
	"context"
	"time"

	"github.com/cashcashapp/cashcash-backend/internal/cycle"
	"github.com/cashcashapp/cashcash-backend/internal/utils"

	"github.com/go-co-op/gocron/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Start schedules the weekly cycle rollover job: every Monday 00:00 UTC the
// per-user city listings and ledger caches are flushed so nobody keeps
// seeing last week's participation flags, and the new cycle is logged.
// Cycles themselves are derived from the clock, so no data mutation happens
// here.
func Start(rdb *redis.Client) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Monday), gocron.NewAtTimes(gocron.NewAtTime(0, 0, 0))),
		gocron.NewTask(func() {
			ctx := context.Background()
			if err := utils.DeleteCacheByPrefix(ctx, rdb, "cities:user:"); err != nil {
				logrus.WithField("error", err.Error()).Warn("Cycle rollover: city cache flush failed")
			}
			if err := utils.DeleteCacheByPrefix(ctx, rdb, "txhistory:user:"); err != nil {
				logrus.WithField("error", err.Error()).Warn("Cycle rollover: ledger cache flush failed")
			}
			if err := utils.DeleteCache(ctx, rdb, "stats:global"); err != nil {
				logrus.WithField("error", err.Error()).Warn("Cycle rollover: stats cache flush failed")
			}
			cur := cycle.At(time.Now())
			logrus.WithFields(logrus.Fields{"year": cur.Year, "week": cur.Week}).Info("New lottery cycle started")
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}
