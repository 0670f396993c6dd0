package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tazhate/planner/internal/domain"
	"github.com/tazhate/planner/internal/ics"
	"github.com/tazhate/planner/internal/scheduler"
	"github.com/tazhate/planner/internal/service"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
	clockLayout = "15:04"
)

func addCmd() *cobra.Command {
	var (
		date, start, end string
		desc, category   string
		recur            string
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add an event (optionally recurring)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, store, _, err := openService()
			if err != nil {
				return err
			}
			defer store.Close()

			day, err := parseDay(date)
			if err != nil {
				return err
			}

			e := domain.Event{
				Date:        day,
				Name:        args[0],
				Description: desc,
				Category:    domain.Category(category),
				Recurrence:  domain.Recurrence(recur),
			}
			if e.StartTime, err = parseClockOn(day, start); err != nil {
				return err
			}
			if e.EndTime, err = parseClockOn(day, end); err != nil {
				return err
			}

			created, err := svc.Create(e)
			if err != nil {
				return err
			}

			if len(created) == 1 {
				fmt.Printf("Added %q on %s\n", created[0].Name, created[0].FormatDate())
			} else {
				fmt.Printf("Added %q: %d occurrences starting %s\n",
					created[0].Name, len(created), created[0].FormatDate())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", time.Now().Format(dayLayout), "event day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&start, "start", "", "start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "end time (HH:MM)")
	cmd.Flags().StringVar(&desc, "desc", "", "description")
	cmd.Flags().StringVar(&category, "category", "", "category (Work, Personal, Other)")
	cmd.Flags().StringVar(&recur, "recur", "", "recurrence (Weekly, Monthly)")
	return cmd
}

func listCmd() *cobra.Command {
	var month, category, recur string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, store, _, err := openService()
			if err != nil {
				return err
			}
			defer store.Close()

			m, err := parseMonth(month)
			if err != nil {
				return err
			}

			events := svc.FilteredMonthList(m, domain.Category(category), domain.Recurrence(recur))
			if len(events) == 0 {
				fmt.Println("No upcoming events this month.")
				return nil
			}

			for i := range events {
				e := &events[i]
				line := fmt.Sprintf("%s  %s  %s  %s", shortID(e.ID), e.FormatDate(), e.FormatTime(), e.Name)
				if e.Category != "" {
					line += fmt.Sprintf("  [%s]", e.Category)
				}
				if e.Recurrence != domain.RecurrenceNone {
					line += fmt.Sprintf("  (recurs %s)", e.Recurrence)
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", time.Now().Format(monthLayout), "month (YYYY-MM)")
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().StringVar(&recur, "recurrence", "", "filter by recurrence label")
	return cmd
}

func monthCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show the month grid with per-day event counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, store, cfg, err := openService()
			if err != nil {
				return err
			}
			defer store.Close()

			m, err := parseMonth(month)
			if err != nil {
				return err
			}

			weekStart := cfg.FirstWeekday()
			grid := service.MonthGrid(m, weekStart)
			counts := svc.DailyCounts(m, weekStart)

			fmt.Println(m.Format("January 2006"))
			for i := 0; i < 7; i++ {
				day := time.Weekday((int(weekStart) + i) % 7)
				fmt.Printf("%4s", day.String()[:3])
			}
			fmt.Println()

			for i, day := range grid {
				cell := day.Format("2")
				if n := counts[day]; n > 0 {
					cell = fmt.Sprintf("%s*%d", cell, n)
				}
				fmt.Printf("%4s", cell)
				if (i+1)%7 == 0 {
					fmt.Println()
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", time.Now().Format(monthLayout), "month (YYYY-MM)")
	return cmd
}

func editCmd() *cobra.Command {
	var (
		date, name     string
		start, end     string
		desc, category string
	)

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit one occurrence in place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, store, _, err := openService()
			if err != nil {
				return err
			}
			defer store.Close()

			day, err := parseDay(date)
			if err != nil {
				return err
			}

			id, err := resolveID(svc, args[0], day)
			if err != nil {
				return err
			}
			existing, err := svc.Get(id, day)
			if err != nil {
				return err
			}

			panel := service.NewPanel(svc)
			panel.OpenEdit(existing)

			fields := panel.Fields()
			if name != "" {
				fields.Name = name
			}
			if desc != "" {
				fields.Description = desc
			}
			if category != "" {
				fields.Category = domain.Category(category)
			}
			if start != "" {
				if fields.StartTime, err = parseClockOn(fields.Date, start); err != nil {
					return err
				}
			}
			if end != "" {
				if fields.EndTime, err = parseClockOn(fields.Date, end); err != nil {
					return err
				}
			}

			if err := panel.Submit(); err != nil {
				return err
			}

			fmt.Printf("Updated %q on %s\n", fields.Name, existing.FormatDate())
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", time.Now().Format(dayLayout), "occurrence day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&start, "start", "", "new start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "new end time (HH:MM)")
	cmd.Flags().StringVar(&desc, "desc", "", "new description")
	cmd.Flags().StringVar(&category, "category", "", "new category")
	return cmd
}

func deleteCmd() *cobra.Command {
	var date string
	var series bool

	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete one occurrence, or a whole series with --series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, store, _, err := openService()
			if err != nil {
				return err
			}
			defer store.Close()

			day, err := parseDay(date)
			if err != nil {
				return err
			}

			id, err := resolveID(svc, args[0], day)
			if err != nil {
				return err
			}

			if series {
				existing, err := svc.Get(id, day)
				if err != nil {
					return err
				}
				if existing.SeriesID == "" {
					return fmt.Errorf("event %s is not part of a series", shortID(id))
				}
				n, err := svc.DeleteSeries(existing.SeriesID)
				if err != nil {
					return err
				}
				fmt.Printf("Deleted series: %d occurrences\n", n)
				return nil
			}

			if err := svc.Delete(id, day); err != nil {
				return err
			}
			fmt.Println("Deleted occurrence")
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", time.Now().Format(dayLayout), "occurrence day (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&series, "series", false, "delete every occurrence of the series")
	return cmd
}

func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the calendar as iCalendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, store, _, err := openService()
			if err != nil {
				return err
			}
			defer store.Close()

			data, err := ics.Serialize(ics.Export(svc.Events()))
			if err != nil {
				return err
			}

			if out == "" {
				fmt.Print(data)
				return nil
			}
			if err := os.WriteFile(out, []byte(data), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Printf("Exported to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func remindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Run the reminder scheduler until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, store, cfg, err := openService()
			if err != nil {
				return err
			}
			defer store.Close()

			sched := scheduler.New(cfg, svc)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			go func() {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				<-sigCh
				cancel()
			}()

			if err := sched.Start(ctx); err != nil {
				return err
			}
			sched.Stop()
			return nil
		},
	}
}

// resolveID accepts a full event ID or a unique shortened prefix
func resolveID(svc *service.EventService, id string, day time.Time) (string, error) {
	var match string
	for _, e := range svc.Events() {
		if !domain.SameDay(e.Date, day) {
			continue
		}
		if e.ID == id {
			return id, nil
		}
		if len(id) >= 4 && len(e.ID) > len(id) && e.ID[:len(id)] == id {
			if match != "" {
				return "", fmt.Errorf("ambiguous id prefix %q", id)
			}
			match = e.ID
		}
	}
	if match == "" {
		return "", domain.ErrNotFound
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func parseDay(v string) (time.Time, error) {
	day, err := time.ParseInLocation(dayLayout, v, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", v)
	}
	return day, nil
}

func parseMonth(v string) (time.Time, error) {
	m, err := time.ParseInLocation(monthLayout, v, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (want YYYY-MM)", v)
	}
	return m, nil
}

// parseClockOn combines the event day with an HH:MM wall-clock value. An
// empty value maps to the zero time so required-field validation catches it.
func parseClockOn(day time.Time, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	clock, err := time.Parse(clockLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (want HH:MM)", v)
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), 0, 0, day.Location()), nil
}
