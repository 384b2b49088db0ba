package auth

import (
	"context"
	"fmt"

	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"
)

// ScheduleCleanup runs ScanAndClean on the given cron spec (e.g. "@every 8h").
// The caller stops the returned cron on shutdown.
func ScheduleCleanup(ctx context.Context, service *Service, spec string) (*cron.Cron, error) {
	c := cron.New()
	if err := c.AddFunc(spec, func() {
		service.ScanAndClean(ctx)
	}); err != nil {
		return nil, fmt.Errorf("schedule sessions cleanup [%s]: %w", spec, err)
	}
	c.Start()

	log.Debugf("auth sessions cleanup scheduled: %s", spec)
	return c, nil
}
