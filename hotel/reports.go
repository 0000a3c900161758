/*
reports.go - Operational reports

PURPOSE:
  Read-only tabular views computed from store state: who arrives and
  departs today, how full the house is, and what the next weeks look like
  in rooms and revenue. Rendering (tables, export, print) is the caller's
  concern; the engine returns rows and a summary.
*/
package hotel

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Report is a generic tabular report: columns, rows of cells, and a list of
// summary lines in presentation order.
type Report struct {
	Title   string        `json:"title"`
	Date    string        `json:"date"`
	Columns []string      `json:"columns"`
	Rows    [][]string    `json:"rows"`
	Summary []SummaryItem `json:"summary"`
}

// SummaryItem is one labeled summary value.
type SummaryItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

func money(d decimal.Decimal) string { return "$" + d.StringFixed(2) }

// DailyArrivals lists the reservations arriving on a date.
func (e *Engine) DailyArrivals(ctx context.Context, on Date) (*Report, error) {
	state, err := e.load(ctx)
	if err != nil {
		return nil, err
	}

	var arrivals []*Reservation
	for _, r := range state.Reservations {
		if r.Arrive.Equal(on) && r.Status.Active() {
			arrivals = append(arrivals, r)
		}
	}
	sort.Slice(arrivals, func(i, j int) bool { return arrivals[i].Guest.Name < arrivals[j].Guest.Name })

	rep := &Report{
		Title:   fmt.Sprintf("Daily Arrivals Report - %s", on),
		Date:    on.String(),
		Columns: []string{"Locator", "Guest Name", "Room Type", "Res Type", "Nights", "Room #", "Total"},
	}
	revenue := decimal.Zero
	for _, r := range arrivals {
		room := r.AssignedRoom
		if room == "" {
			room = "N/A"
		}
		revenue = revenue.Add(r.TotalLocked)
		rep.Rows = append(rep.Rows, []string{
			r.Locator, r.Guest.Name, string(r.RoomType), string(r.Type),
			fmt.Sprint(r.Nights()), room, money(r.TotalLocked),
		})
	}
	rep.Summary = []SummaryItem{
		{Label: "Total Arrivals", Value: fmt.Sprint(len(arrivals))},
		{Label: "Total Expected Revenue", Value: money(revenue)},
	}
	return rep, nil
}

// DailyDepartures lists the reservations departing on a date with their
// remaining balances.
func (e *Engine) DailyDepartures(ctx context.Context, on Date) (*Report, error) {
	state, err := e.load(ctx)
	if err != nil {
		return nil, err
	}

	var departures []*Reservation
	for _, r := range state.Reservations {
		if r.Depart.Equal(on) && (r.Status == StatusInHouse || r.Status == StatusCheckedOut) {
			departures = append(departures, r)
		}
	}
	sort.Slice(departures, func(i, j int) bool { return departures[i].Guest.Name < departures[j].Guest.Name })

	rep := &Report{
		Title:   fmt.Sprintf("Daily Departures Report - %s", on),
		Date:    on.String(),
		Columns: []string{"Locator", "Guest Name", "Room #", "Res Type", "Status", "Balance Due"},
	}
	outstanding := decimal.Zero
	for _, r := range departures {
		bal := r.Balance()
		outstanding = outstanding.Add(bal)
		rep.Rows = append(rep.Rows, []string{
			r.Locator, r.Guest.Name, r.AssignedRoom, string(r.Type), string(r.Status), money(bal),
		})
	}
	rep.Summary = []SummaryItem{
		{Label: "Total Departures", Value: fmt.Sprint(len(departures))},
		{Label: "Total Balance Due", Value: money(outstanding)},
	}
	return rep, nil
}

// DailyOccupancy lists who is in the house on a date, by room.
func (e *Engine) DailyOccupancy(ctx context.Context, on Date) (*Report, error) {
	state, err := e.load(ctx)
	if err != nil {
		return nil, err
	}

	var occupied []*Reservation
	for _, r := range state.Active() {
		if r.Span().Contains(on) {
			occupied = append(occupied, r)
		}
	}
	sort.Slice(occupied, func(i, j int) bool {
		ri, rj := occupied[i].AssignedRoom, occupied[j].AssignedRoom
		if ri == "" {
			ri = "ZZZ" // unassigned rooms sort last
		}
		if rj == "" {
			rj = "ZZZ"
		}
		return ri < rj
	})

	rep := &Report{
		Title:   fmt.Sprintf("Daily Occupancy Report - %s", on),
		Date:    on.String(),
		Columns: []string{"Room #", "Guest Name", "Locator", "Res Type", "Arrive", "Depart"},
	}
	for _, r := range occupied {
		room := r.AssignedRoom
		if room == "" {
			room = "N/A"
		}
		rep.Rows = append(rep.Rows, []string{
			room, r.Guest.Name, r.Locator, string(r.Type), r.Arrive.String(), r.Depart.String(),
		})
	}
	pct := 0.0
	if e.cfg.Capacity > 0 {
		pct = float64(len(occupied)) / float64(e.cfg.Capacity) * 100
	}
	rep.Summary = []SummaryItem{
		{Label: "Total Rooms", Value: fmt.Sprint(e.cfg.Capacity)},
		{Label: "Occupied Rooms", Value: fmt.Sprint(len(occupied))},
		{Label: "Available Rooms", Value: fmt.Sprint(e.cfg.Capacity - len(occupied))},
		{Label: "Occupancy Rate", Value: fmt.Sprintf("%.1f%%", pct)},
	}
	return rep, nil
}

// ExpectedOccupancy projects per-night occupancy for the next `days` days.
func (e *Engine) ExpectedOccupancy(ctx context.Context, start Date, days int) (*Report, error) {
	state, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	active := state.Active()

	rep := &Report{
		Title:   fmt.Sprintf("Expected Occupancy Report - Next %d Days", days),
		Date:    start.String(),
		Columns: []string{"Date", "Day", "Occupied", "Available", "Occupancy %"},
	}
	totalOccupied := 0
	for i := 0; i < days; i++ {
		d := start.AddDays(i)
		occ := occupiedOn(active, d, "")
		totalOccupied += occ
		pct := 0.0
		if e.cfg.Capacity > 0 {
			pct = float64(occ) / float64(e.cfg.Capacity) * 100
		}
		rep.Rows = append(rep.Rows, []string{
			d.String(), d.Weekday().String()[:3],
			fmt.Sprint(occ), fmt.Sprint(e.cfg.Capacity - occ), fmt.Sprintf("%.1f%%", pct),
		})
	}
	avg := 0.0
	if days > 0 && e.cfg.Capacity > 0 {
		avg = float64(totalOccupied) / float64(days) / float64(e.cfg.Capacity) * 100
	}
	rep.Summary = []SummaryItem{
		{Label: "Period", Value: fmt.Sprintf("%d days", days)},
		{Label: "Average Occupancy", Value: fmt.Sprintf("%.1f%%", avg)},
		{Label: "Total Room-Nights Available", Value: fmt.Sprint(days * e.cfg.Capacity)},
		{Label: "Total Room-Nights Booked", Value: fmt.Sprint(totalOccupied)},
	}
	return rep, nil
}

// ExpectedIncome projects per-night revenue from locked snapshots for the
// next `days` days.
func (e *Engine) ExpectedIncome(ctx context.Context, start Date, days int) (*Report, error) {
	state, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	active := state.Active()

	rep := &Report{
		Title:   fmt.Sprintf("Expected Room Income Report - Next %d Days", days),
		Date:    start.String(),
		Columns: []string{"Date", "Expected Revenue", "Reservations", "Avg Rate"},
	}
	total := decimal.Zero
	for i := 0; i < days; i++ {
		d := start.AddDays(i)
		revenue := decimal.Zero
		count := 0
		for _, r := range active {
			if !r.Span().Contains(d) {
				continue
			}
			for _, n := range r.Nightly {
				if n.Date.Equal(d) {
					revenue = revenue.Add(n.Rate)
					count++
					break
				}
			}
		}
		avg := decimal.Zero
		if count > 0 {
			avg = Cents(revenue.Div(decimal.NewFromInt(int64(count))))
		}
		total = total.Add(revenue)
		rep.Rows = append(rep.Rows, []string{d.String(), money(revenue), fmt.Sprint(count), money(avg)})
	}
	avgDaily := decimal.Zero
	if days > 0 {
		avgDaily = Cents(total.Div(decimal.NewFromInt(int64(days))))
	}
	rep.Summary = []SummaryItem{
		{Label: "Period", Value: fmt.Sprintf("%d days", days)},
		{Label: "Total Expected Revenue", Value: money(total)},
		{Label: "Average Daily Revenue", Value: money(avgDaily)},
	}
	return rep, nil
}

// IncentiveImpact shows what the incentive discount cost in revenue for
// active incentive reservations arriving within the window.
func (e *Engine) IncentiveImpact(ctx context.Context, start Date, days int) (*Report, error) {
	state, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	end := start.AddDays(days)

	rep := &Report{
		Title:   fmt.Sprintf("Incentive Discount Report - Next %d Days", days),
		Date:    start.String(),
		Columns: []string{"Locator", "Guest", "Arrive", "Depart", "Full Rate", "Discounted", "Savings"},
	}
	fullTotal, discTotal := decimal.Zero, decimal.Zero
	incentiveMult := TypeIncentive.Multiplier()
	count := 0
	for _, r := range state.Active() {
		if r.Type != TypeIncentive || !r.Arrive.Before(end) {
			continue
		}
		count++
		discounted := decimal.Zero
		for _, n := range r.Nightly {
			discounted = discounted.Add(n.Rate)
		}
		full := decimal.Zero
		if discounted.IsPositive() {
			full = Cents(discounted.Div(incentiveMult))
		}
		savings := full.Sub(discounted)
		fullTotal = fullTotal.Add(full)
		discTotal = discTotal.Add(discounted)
		rep.Rows = append(rep.Rows, []string{
			r.Locator, r.Guest.Name, r.Arrive.String(), r.Depart.String(),
			money(full), money(discounted), money(savings),
		})
	}
	savings := fullTotal.Sub(discTotal)
	pct := 0.0
	if fullTotal.IsPositive() {
		pct, _ = savings.Div(fullTotal).Mul(decimal.NewFromInt(100)).Float64()
	}
	rep.Summary = []SummaryItem{
		{Label: "Total Incentive Reservations", Value: fmt.Sprint(count)},
		{Label: "Revenue at Full Rate", Value: money(fullTotal)},
		{Label: "Actual Revenue", Value: money(discTotal)},
		{Label: "Total Discount Given", Value: money(savings)},
		{Label: "Average Discount", Value: fmt.Sprintf("%.1f%%", pct)},
	}
	return rep, nil
}

// CheckoutSummary lists checkouts in a date range with revenue totals.
func (e *Engine) CheckoutSummary(ctx context.Context, from, to Date) (*Report, error) {
	state, err := e.load(ctx)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		Title:   "Bill Accommodation Summary",
		Date:    fmt.Sprintf("%s to %s", from, to),
		Columns: []string{"Locator", "Guest", "Check-Out", "Room", "Nights", "Total", "Status"},
	}
	revenue := decimal.Zero
	count := 0
	for _, r := range state.Reservations {
		if r.Status != StatusCheckedOut || r.CheckOutAt == nil {
			continue
		}
		out := DateOf(*r.CheckOutAt)
		if out.Before(from) || out.After(to) {
			continue
		}
		count++
		revenue = revenue.Add(r.TotalLocked)
		rep.Rows = append(rep.Rows, []string{
			r.Locator, r.Guest.Name, out.String(), r.AssignedRoom,
			fmt.Sprint(r.Nights()), money(r.TotalLocked), string(r.Status),
		})
	}
	avg := decimal.Zero
	if count > 0 {
		avg = Cents(revenue.Div(decimal.NewFromInt(int64(count))))
	}
	rep.Summary = []SummaryItem{
		{Label: "Total Check-Outs", Value: fmt.Sprint(count)},
		{Label: "Total Revenue", Value: money(revenue)},
		{Label: "Average Bill", Value: money(avg)},
	}
	return rep, nil
}
