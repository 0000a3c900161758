/*
scheduler.go - Automated daily-task scheduler

PURPOSE:
  Periodically wakes up and, once per calendar day, runs the daily sweep:
  60-day payment reminders, unpaid auto-cancellations, and no-show marking
  for yesterday's arrivals.

DESIGN:
  - Runs a background goroutine with a configurable check interval
  - The sweep itself is idempotent, so firing it is safe; the scheduler
    still tracks the last sweep date to avoid pointless store loads
  - Fires once on Start so a server restarted mid-day catches up

CONFIGURATION:
  - CheckInterval: How often to wake and compare dates (default: 30 min)
  - Enabled: Whether the scheduler is active (default: true)

USAGE:
  scheduler := NewDailyScheduler(engine)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: RunDailyTasks endpoint (manual trigger)
  - hotel/batch.go: The sweep rules
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/omrtre/HotelReservation/hotel"
)

// DailyScheduler fires the daily sweep once per calendar day.
type DailyScheduler struct {
	Engine        *hotel.Engine
	CheckInterval time.Duration
	Enabled       bool

	ticker    *time.Ticker
	stop      chan bool
	wg        sync.WaitGroup
	mu        sync.Mutex
	lastSwept hotel.Date
}

// NewDailyScheduler creates a new scheduler around the engine.
func NewDailyScheduler(engine *hotel.Engine) *DailyScheduler {
	return &DailyScheduler{
		Engine:        engine,
		CheckInterval: 30 * time.Minute,
		Enabled:       true,
		stop:          make(chan bool),
	}
}

// Start begins the scheduler.
func (ds *DailyScheduler) Start() {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if !ds.Enabled {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}

	ds.ticker = time.NewTicker(ds.CheckInterval)
	ds.wg.Add(1)

	go ds.run()

	log.Printf("[Scheduler] Started with check interval: %v", ds.CheckInterval)
}

// Stop stops the scheduler.
func (ds *DailyScheduler) Stop() {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if ds.ticker != nil {
		ds.ticker.Stop()
		close(ds.stop)
		ds.wg.Wait()
		log.Println("[Scheduler] Stopped")
	}
}

func (ds *DailyScheduler) run() {
	defer ds.wg.Done()

	// Run immediately on start
	ds.checkAndSweep()

	for {
		select {
		case <-ds.ticker.C:
			ds.checkAndSweep()
		case <-ds.stop:
			return
		}
	}
}

func (ds *DailyScheduler) checkAndSweep() {
	today := ds.Engine.Today()

	ds.mu.Lock()
	alreadySwept := ds.lastSwept == today
	ds.mu.Unlock()
	if alreadySwept {
		return
	}

	log.Printf("[Scheduler] Running daily tasks for %s", today)

	results, err := ds.Engine.RunDailyTasks(context.Background())
	if err != nil {
		log.Printf("[Scheduler] Daily tasks failed: %v", err)
		return
	}

	ds.mu.Lock()
	ds.lastSwept = today
	ds.mu.Unlock()

	if len(results) > 0 {
		log.Printf("[Scheduler] Completed: %d task(s) performed", len(results))
	}
}

// RunNow triggers an immediate sweep regardless of the last sweep date
// (for testing/admin).
func (ds *DailyScheduler) RunNow() {
	ds.mu.Lock()
	ds.lastSwept = hotel.Date{}
	ds.mu.Unlock()
	ds.checkAndSweep()
}
