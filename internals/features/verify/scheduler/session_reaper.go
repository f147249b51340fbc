package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"clearproof_backend/internals/configs"
	"clearproof_backend/internals/features/verify/session"
)

// StartSessionReaper drops abandoned sessions on a cron schedule.
// Sessions are memory-only; without this, workers who close the tab
// mid-flow would leak entries until restart.
func StartSessionReaper(store *session.Store) *cron.Cron {
	c := cron.New()

	schedule := configs.SessionReaperCron
	if schedule == "" {
		schedule = "@every 10m"
	}

	if _, err := c.AddFunc(schedule, func() {
		if n := store.ReapExpired(time.Now()); n > 0 {
			log.Printf("[CLEANUP] dropped %d expired verification sessions (%d live)", n, store.Len())
		}
	}); err != nil {
		log.Printf("[ERROR] session reaper schedule %q: %v", schedule, err)
		return c
	}

	c.Start()
	log.Printf("[INFO] session reaper started (%s)", schedule)
	return c
}
