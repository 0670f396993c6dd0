package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tazhate/planner/config"
	"github.com/tazhate/planner/internal/domain"
	"github.com/tazhate/planner/internal/service"
)

// Notifier delivers reminder text to the user
type Notifier interface {
	Notify(text string) error
}

// LogNotifier writes reminders to the process log
type LogNotifier struct{}

func (LogNotifier) Notify(text string) error {
	log.Println(text)
	return nil
}

// Scheduler runs the daily agenda at the configured time and checks every
// minute for events starting within the reminder lead window
type Scheduler struct {
	cron     *cron.Cron
	cfg      *config.Config
	events   *service.EventService
	notifier Notifier

	reminded map[string]bool // occurrence IDs already reminded today
	today    time.Time
}

// New creates a scheduler over the given event service
func New(cfg *config.Config, events *service.EventService) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		cfg:      cfg,
		events:   events,
		notifier: LogNotifier{},
		reminded: make(map[string]bool),
	}
}

// SetNotifier replaces the default log notifier
func (s *Scheduler) SetNotifier(n Notifier) {
	s.notifier = n
}

// Start registers the cron jobs and blocks until ctx is done
func (s *Scheduler) Start(ctx context.Context) error {
	hh, mm, err := parseClock(s.cfg.AgendaTime)
	if err != nil {
		return fmt.Errorf("agenda time: %w", err)
	}

	agendaSpec := fmt.Sprintf("%d %d * * *", mm, hh)
	if _, err := s.cron.AddFunc(agendaSpec, s.dailyAgenda); err != nil {
		return fmt.Errorf("add daily agenda: %w", err)
	}

	if _, err := s.cron.AddFunc("* * * * *", s.checkUpcoming); err != nil {
		return fmt.Errorf("add upcoming check: %w", err)
	}

	s.cron.Start()
	log.Printf("Scheduler started (agenda: %s, lead: %dm)", s.cfg.AgendaTime, s.cfg.ReminderLead)

	<-ctx.Done()
	return nil
}

// Stop waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Scheduler stopped")
}

func (s *Scheduler) dailyAgenda() {
	today := domain.DateOf(time.Now())
	var todays []domain.Event
	for _, e := range s.events.Events() {
		if domain.SameDay(e.Date, today) {
			todays = append(todays, e)
		}
	}

	if len(todays) == 0 {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Agenda for %s:\n", today.Format("Monday, 02 Jan"))
	for i := range todays {
		fmt.Fprintf(&sb, "  %s  %s\n", todays[i].FormatTime(), todays[i].Name)
	}

	if err := s.notifier.Notify(sb.String()); err != nil {
		log.Printf("send agenda: %v", err)
	}
}

func (s *Scheduler) checkUpcoming() {
	now := time.Now()
	today := domain.DateOf(now)
	if !domain.SameDay(s.today, today) {
		s.today = today
		s.reminded = make(map[string]bool)
	}

	lead := time.Duration(s.cfg.ReminderLead) * time.Minute
	for _, e := range s.events.Events() {
		if !domain.SameDay(e.Date, today) || s.reminded[e.ID] {
			continue
		}

		start := time.Date(today.Year(), today.Month(), today.Day(),
			e.StartTime.Hour(), e.StartTime.Minute(), 0, 0, today.Location())
		until := start.Sub(now)
		if until <= 0 || until > lead {
			continue
		}

		s.reminded[e.ID] = true
		text := fmt.Sprintf("Upcoming: %s at %s (in %d min)",
			e.Name, start.Format("15:04"), int(until.Minutes()))
		if err := s.notifier.Notify(text); err != nil {
			log.Printf("send reminder: %v", err)
		}
	}
}

func parseClock(v string) (int, int, error) {
	var hh, mm int
	if _, err := fmt.Sscanf(v, "%d:%d", &hh, &mm); err != nil {
		return 0, 0, fmt.Errorf("invalid time %q", v)
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, 0, fmt.Errorf("invalid time %q", v)
	}
	return hh, mm, nil
}
