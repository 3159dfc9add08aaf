// Package analytics records OAuth flow events and summarizes them into
// reports for the dashboard and the report command.
package analytics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/oauthkit/oauthkit/internal/logger"
	"go.uber.org/zap"
)

// EventType labels what kind of flow step an event records.
type EventType string

const (
	EventAuthorization EventType = "authorization"
	EventExchange      EventType = "exchange"
	EventRefresh       EventType = "refresh"
	EventRevoke        EventType = "revoke"
	EventUserInfo      EventType = "userinfo"
)

// Event is one recorded flow step.
type Event struct {
	Type      EventType         `json:"type"`
	Provider  string            `json:"provider"`
	UserID    string            `json:"user_id,omitempty"`
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	Duration  time.Duration     `json:"duration_ns,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Period bounds a report window.
type Period string

const (
	PeriodDay   Period = "24h"
	PeriodWeek  Period = "7d"
	PeriodMonth Period = "30d"
	PeriodAll   Period = "all"
)

func (p Period) cutoff(now time.Time) (time.Time, bool) {
	switch p {
	case PeriodDay:
		return now.Add(-24 * time.Hour), true
	case PeriodWeek:
		return now.Add(-7 * 24 * time.Hour), true
	case PeriodMonth:
		return now.Add(-30 * 24 * time.Hour), true
	default:
		return time.Time{}, false
	}
}

// ProviderStats aggregates events for one provider.
type ProviderStats struct {
	Provider    string        `json:"provider"`
	Total       int           `json:"total"`
	Successes   int           `json:"successes"`
	Failures    int           `json:"failures"`
	AvgDuration time.Duration `json:"avg_duration_ns"`
}

// SuccessRate is the share of successful events, 0..1.
func (s ProviderStats) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Successes) / float64(s.Total)
}

// Report summarizes tracked events over a period.
type Report struct {
	Period      Period          `json:"period"`
	GeneratedAt time.Time       `json:"generated_at"`
	Total       int             `json:"total"`
	Successes   int             `json:"successes"`
	Failures    int             `json:"failures"`
	Providers   []ProviderStats `json:"providers"`
	TopFailures []FailureCount  `json:"top_failures,omitempty"`
}

// FailureCount is one error message and how often it occurred.
type FailureCount struct {
	Error string `json:"error"`
	Count int    `json:"count"`
}

// Tracker records events, optionally persisting them to a JSON file.
// All methods are safe for concurrent use.
type Tracker struct {
	mu     sync.Mutex
	events []Event
	path   string
	now    func() time.Time
}

// NewTracker builds a tracker. When path is non-empty previously
// persisted events are loaded from it and every change is written back.
func NewTracker(path string) (*Tracker, error) {
	t := &Tracker{path: path, now: time.Now}
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return nil, fmt.Errorf("reading analytics file: %w", err)
	}
	if err := json.Unmarshal(data, &t.events); err != nil {
		return nil, fmt.Errorf("parsing analytics file %s: %w", path, err)
	}
	return t, nil
}

// TrackEvent records one event. The timestamp is stamped here unless
// the event already carries one.
func (t *Tracker) TrackEvent(event Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = t.now()
	}
	t.events = append(t.events, event)
	logger.Debug("tracked event",
		zap.String("type", string(event.Type)),
		zap.String("provider", event.Provider),
		zap.Bool("success", event.Success))
	return t.persistLocked()
}

// Events returns a copy of all recorded events.
func (t *Tracker) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// RecentEvents returns up to n most recent events, newest first.
func (t *Tracker) RecentEvents(n int) []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n > len(t.events) {
		n = len(t.events)
	}
	out := make([]Event, 0, n)
	for i := len(t.events) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, t.events[i])
	}
	return out
}

// GenerateReport summarizes events within the period.
func (t *Tracker) GenerateReport(period Period) *Report {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	cutoff, bounded := period.cutoff(now)

	report := &Report{Period: period, GeneratedAt: now}
	byProvider := map[string]*ProviderStats{}
	totalDuration := map[string]time.Duration{}
	failures := map[string]int{}

	for _, event := range t.events {
		if bounded && event.Timestamp.Before(cutoff) {
			continue
		}
		report.Total++
		stats, ok := byProvider[event.Provider]
		if !ok {
			stats = &ProviderStats{Provider: event.Provider}
			byProvider[event.Provider] = stats
		}
		stats.Total++
		if event.Success {
			report.Successes++
			stats.Successes++
		} else {
			report.Failures++
			stats.Failures++
			if event.Error != "" {
				failures[event.Error]++
			}
		}
		totalDuration[event.Provider] += event.Duration
	}

	for name, stats := range byProvider {
		if stats.Total > 0 {
			stats.AvgDuration = totalDuration[name] / time.Duration(stats.Total)
		}
		report.Providers = append(report.Providers, *stats)
	}
	sort.Slice(report.Providers, func(i, j int) bool {
		if report.Providers[i].Total != report.Providers[j].Total {
			return report.Providers[i].Total > report.Providers[j].Total
		}
		return report.Providers[i].Provider < report.Providers[j].Provider
	})

	for msg, count := range failures {
		report.TopFailures = append(report.TopFailures, FailureCount{Error: msg, Count: count})
	}
	sort.Slice(report.TopFailures, func(i, j int) bool {
		if report.TopFailures[i].Count != report.TopFailures[j].Count {
			return report.TopFailures[i].Count > report.TopFailures[j].Count
		}
		return report.TopFailures[i].Error < report.TopFailures[j].Error
	})
	if len(report.TopFailures) > 5 {
		report.TopFailures = report.TopFailures[:5]
	}

	return report
}

// ClearOlderThan drops events before the cutoff and returns how many
// were removed.
func (t *Tracker) ClearOlderThan(cutoff time.Time) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.events[:0]
	removed := 0
	for _, event := range t.events {
		if event.Timestamp.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, event)
	}
	t.events = kept
	if removed == 0 {
		return 0, nil
	}
	return removed, t.persistLocked()
}

// ExportCSV writes every recorded event as CSV.
func (t *Tracker) ExportCSV(path string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv export: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"timestamp", "type", "provider", "user_id", "success", "error", "duration_ms"}); err != nil {
		return err
	}
	for _, event := range t.events {
		record := []string{
			event.Timestamp.Format(time.RFC3339),
			string(event.Type),
			event.Provider,
			event.UserID,
			strconv.FormatBool(event.Success),
			event.Error,
			strconv.FormatInt(event.Duration.Milliseconds(), 10),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (t *Tracker) persistLocked() error {
	if t.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(t.events, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(t.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(t.path, data, 0o600)
}
