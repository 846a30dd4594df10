package reminders

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// Every morning at 9:00 AM.
const defaultSchedule = "0 0 9 * * *"

type Scheduler struct {
	scanner *Scanner
	cron    *cron.Cron
}

func NewScheduler(scanner *Scanner) *Scheduler {
	return &Scheduler{scanner: scanner}
}

// Start initializes the cron task.
func (s *Scheduler) Start() error {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(defaultSchedule, func() {
		if err := s.scanner.Scan(context.Background()); err != nil {
			log.Printf("[error] operation=reminder_scan error=%v", err)
		}
	})
	if err != nil {
		return err
	}

	log.Println("Reminder scheduler started (running daily at 9:00AM)")
	c.Start()
	s.cron = c
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
