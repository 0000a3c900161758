/*
batch.go - Daily batch task runner

PURPOSE:
  Sweeps every Booked reservation once per invocation and applies the
  time-based rules, in order:

  1. 60-Day payment reminder  arrival exactly 45 days away -> record that a
                              reminder went out (once per locator, tracked
                              in the store's reminders-sent map)
  2. 60-Day auto-cancel       arrival exactly 30 days away and nothing paid
                              -> cancel (nothing was collected, so this is
                              a no-fee cancellation)
  3. Automatic no-show        arrival was yesterday and the guest never
                              checked in -> mark No-Show with the standard
                              fee policy

IDEMPOTENCE:
  Each trigger condition goes false once its rule fires: the reminder map
  records the send, cancellation and no-show change the status. Running the
  sweep twice on the same day performs nothing the second time.

FAILURE SEMANTICS:
  A malformed record is logged and skipped; one bad reservation never fails
  the whole sweep.
*/
package hotel

import (
	"context"
	"fmt"
	"log"
)

// Batch trigger offsets, in days before arrival.
const (
	reminderDaysOut   = 45
	autoCancelDaysOut = 30
)

// TaskKind identifies which batch rule fired.
type TaskKind string

const (
	TaskReminder   TaskKind = "payment-reminder"
	TaskAutoCancel TaskKind = "auto-cancel"
	TaskNoShow     TaskKind = "auto-no-show"
)

// TaskResult describes one action the sweep performed.
type TaskResult struct {
	Kind    TaskKind `json:"kind"`
	Locator string   `json:"locator"`
	Detail  string   `json:"detail"`
}

// RunDailyTasks performs one sweep and returns what it did. An empty result
// means the day's work is already done.
func (e *Engine) RunDailyTasks(ctx context.Context) ([]TaskResult, error) {
	state, err := e.load(ctx)
	if err != nil {
		return nil, err
	}

	today := e.Today()
	var performed []TaskResult
	dirty := false

	for _, r := range state.Reservations {
		if normalizeStatus(r.Status) != StatusBooked {
			continue
		}
		if r.Arrive.IsZero() || r.Depart.IsZero() {
			log.Printf("[Batch] skipping %s: missing stay dates", r.Locator)
			continue
		}

		daysOut := today.DaysUntil(r.Arrive)

		// Rule 1: 60-Day payment reminder at exactly 45 days.
		if r.Type == TypeSixtyDay && daysOut == reminderDaysOut {
			if _, sent := state.RemindersSent[r.Locator]; !sent {
				state.RemindersSent[r.Locator] = today.String()
				dirty = true
				performed = append(performed, TaskResult{
					Kind:    TaskReminder,
					Locator: r.Locator,
					Detail:  fmt.Sprintf("payment reminder sent to %s (arrival %s)", r.Guest.Email, r.Arrive),
				})
			}
		}

		// Rule 2: 60-Day auto-cancel at exactly 30 days with nothing paid.
		if r.Type == TypeSixtyDay && daysOut == autoCancelDaysOut && !r.PaidAdvance.IsPositive() {
			r.Status = StatusCancelled
			r.CancelledOn = &today
			r.StatusChangedOn = &today
			dirty = true
			performed = append(performed, TaskResult{
				Kind:    TaskAutoCancel,
				Locator: r.Locator,
				Detail:  fmt.Sprintf("cancelled unpaid 60-Day reservation (arrival %s)", r.Arrive),
			})
			continue // terminal, no further rules apply
		}

		// Rule 3: arrival was yesterday and the guest never checked in.
		if r.Arrive.Equal(today.AddDays(-1)) {
			if r.Type.PaidUpFront() {
				r.Fee = r.TotalLocked
			} else {
				e.chargeFee(r, r.FirstNightRate(), today)
			}
			r.Status = StatusNoShow
			r.NoShowOn = &today
			r.StatusChangedOn = &today
			dirty = true
			performed = append(performed, TaskResult{
				Kind:    TaskNoShow,
				Locator: r.Locator,
				Detail:  fmt.Sprintf("marked no-show, fee $%s", r.Fee.StringFixed(2)),
			})
		}
	}

	if dirty {
		if err := e.save(ctx, state); err != nil {
			return nil, err
		}
	}

	for _, t := range performed {
		log.Printf("[Batch] %s %s: %s", t.Kind, t.Locator, t.Detail)
	}
	return performed, nil
}
