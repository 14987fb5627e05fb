package scheduler

import (
	"fmt"

	"StockChat/internal/chat"
	"StockChat/internal/recorder"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler runs periodic housekeeping for chat sessions.
type Scheduler struct {
	Cron     *cron.Cron
	Sessions *chat.SessionStore
	Recorder recorder.Recorder
}

// NewScheduler creates a new Scheduler. Cron specs include a seconds field.
func NewScheduler(sessions *chat.SessionStore, rec recorder.Recorder) *Scheduler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Sessions: sessions,
		Recorder: rec,
	}
}

// RegisterSweep registers the idle-session sweep.
func (s *Scheduler) RegisterSweep(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.SweepNow); err != nil {
		return fmt.Errorf("register session sweep: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// SweepNow drops expired sessions and logs journal totals.
func (s *Scheduler) SweepNow() {
	before := s.Sessions.Count()
	s.Sessions.DeleteExpired()
	after := s.Sessions.Count()

	ev := log.Info().Int("active", after).Int("expired", before-after)
	if stats, err := s.Recorder.Stats(); err != nil {
		log.Warn().Err(err).Msg("read turn stats")
	} else {
		ev = ev.Int("turns", stats.Total).Int("turn_errors", stats.Errors)
	}
	ev.Msg("session sweep")
}
