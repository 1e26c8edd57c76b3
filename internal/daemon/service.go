// Package daemon provides the long-running scenario watcher and its HTTP API.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/theirongolddev/buyrent/internal/config"
	"github.com/theirongolddev/buyrent/internal/model"
	"github.com/theirongolddev/buyrent/internal/projection"
)

// Config controls the daemon runtime behavior.
type Config struct {
	ScenarioPath string // watched scenario file; empty serves Base only
	Base         model.Parameters
	Interval     time.Duration
	Addr         string
	EventsBuffer int
}

// Snapshot is the headline outcome of the watched scenario.
type Snapshot struct {
	At               time.Time    `json:"at"`
	MonthlyPayment   float64      `json:"monthly_payment"`
	BuyWealth        float64      `json:"buy_wealth"`
	RentWealth       float64      `json:"rent_wealth"`
	WealthDifference float64      `json:"wealth_difference"`
	BreakevenMonth   int          `json:"breakeven_month"`
	Winner           model.Winner `json:"winner"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	MonthlyPayment   float64 `json:"monthly_payment"`
	BuyWealth        float64 `json:"buy_wealth"`
	RentWealth       float64 `json:"rent_wealth"`
	WealthDifference float64 `json:"wealth_difference"`
	BreakevenMonths  int     `json:"breakeven_months"`
	WinnerChanged    bool    `json:"winner_changed"`
}

func (d Delta) isZero() bool {
	return d.MonthlyPayment == 0 &&
		d.BuyWealth == 0 &&
		d.RentWealth == 0 &&
		d.WealthDifference == 0 &&
		d.BreakevenMonths == 0 &&
		!d.WinnerChanged
}

// Event is emitted whenever the projected outcome changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time        `json:"started_at"`
	LastPollAt      time.Time        `json:"last_poll_at"`
	PollIntervalSec int              `json:"poll_interval_sec"`
	PollCount       int64            `json:"poll_count"`
	ScenarioPath    string           `json:"scenario_path,omitempty"`
	Params          model.Parameters `json:"params"`
	Summary         Snapshot         `json:"summary"`
	LastError       string           `json:"last_error,omitempty"`
	EventCount      int              `json:"event_count"`
	SubscriberCount int              `json:"subscriber_count"`
}

// ProjectResponse is served at /v1/project.
type ProjectResponse struct {
	Params  model.Parameters `json:"params"`
	Summary model.Summary    `json:"summary"`
	Yearly  []model.YearRow  `json:"yearly"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg  Config
	load func() (model.Parameters, error)

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	params      model.Parameters
	snapshot    Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < time.Second {
		cfg.Interval = 5 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8788"
	}

	s := &Service{
		cfg:       cfg,
		startedAt: time.Now(),
		params:    cfg.Base,
		subs:      make(map[int]chan Event),
	}
	s.load = s.loadParams
	return s
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/project", s.handleProject)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)
	return mux
}

func (s *Service) loadParams() (model.Parameters, error) {
	if s.cfg.ScenarioPath == "" {
		return s.cfg.Base, nil
	}
	return config.LoadScenarioFile(s.cfg.ScenarioPath, s.cfg.Base)
}

func (s *Service) pollOnce() {
	now := time.Now()

	p, err := s.load()
	var res model.Result
	if err == nil {
		res, err = projection.Project(p)
	}
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		log.Printf("buyrent daemon poll error: %v", err)
		return
	}

	snap := snapshotFromSummary(res.Summary, now)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.params = p
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "snapshot",
			Timestamp: now,
			Snapshot:  snap,
		}
		publish = true
	} else {
		delta := diffSnapshots(prev, snap)
		if !delta.isZero() {
			s.nextEventID++
			ev = Event{
				ID:        s.nextEventID,
				Type:      "outcome_delta",
				Timestamp: now,
				Snapshot:  snap,
				Delta:     delta,
			}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
	}
}

func snapshotFromSummary(sum model.Summary, at time.Time) Snapshot {
	return Snapshot{
		At:               at,
		MonthlyPayment:   sum.MonthlyPayment,
		BuyWealth:        sum.FinalBuyWealth,
		RentWealth:       sum.FinalRentPortfolio,
		WealthDifference: sum.WealthDifference,
		BreakevenMonth:   sum.BreakevenMonth,
		Winner:           sum.Winner,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		MonthlyPayment:   curr.MonthlyPayment - prev.MonthlyPayment,
		BuyWealth:        curr.BuyWealth - prev.BuyWealth,
		RentWealth:       curr.RentWealth - prev.RentWealth,
		WealthDifference: curr.WealthDifference - prev.WealthDifference,
		BreakevenMonths:  curr.BreakevenMonth - prev.BreakevenMonth,
		WinnerChanged:    curr.Winner != prev.Winner,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		ScenarioPath:    s.cfg.ScenarioPath,
		Params:          s.params,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

// handleProject projects the posted parameters. Fields missing from the
// body keep the values of the watched scenario.
func (s *Service) handleProject(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, errors.New("use POST"))
		return
	}

	s.mu.RLock()
	p := s.params
	s.mu.RUnlock()

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding parameters: %w", err))
		return
	}

	res, err := projection.Project(p)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, projection.ErrInvalidParameter) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}

	writeJSON(w, http.StatusOK, ProjectResponse{
		Params:  res.Params,
		Summary: res.Summary,
		Yearly:  projection.Yearly(res),
	})
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
