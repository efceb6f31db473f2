package db

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultWaitInterval is the fixed delay between connection probes.
const DefaultWaitInterval = time.Second

// WaitFor polls ping at a fixed interval until it succeeds. With
// maxAttempts <= 0 it waits indefinitely; otherwise it gives up after that
// many attempts and returns the last ping error. The ping and sleep
// functions are injectable so tests can run against a fake clock.
func WaitFor(ping func() error, sleep func(time.Duration), interval time.Duration, maxAttempts int) error {
	for attempt := 1; ; attempt++ {
		err := ping()
		if err == nil {
			logrus.Info("Database available")
			return nil
		}
		if maxAttempts > 0 && attempt >= maxAttempts {
			return fmt.Errorf("database unavailable after %d attempts: %w", maxAttempts, err)
		}
		logrus.WithFields(logrus.Fields{
			"attempt": attempt,
			"error":   err.Error(),
		}).Info("Database unavailable, waiting")
		sleep(interval)
	}
}
