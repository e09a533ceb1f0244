// stats/calendar.go
package stats

import (
	"time"

	"github.com/rustyeddy/tradebook/ledger"
)

// DayCell is one day in the month grid. Day is zero for cells padding the
// grid out to full Monday-first weeks (days from adjacent months).
type DayCell struct {
	Day        int
	NetPnL     float64
	TradeCount int
}

// WeekSummary totals one grid row over its in-month days.
type WeekSummary struct {
	NetPnL     float64
	TradeCount int
}

// CalendarGrid is a Monday-first month layout with per-day and per-week
// trade totals. It is a pure projection of the trade set: recomputing it
// for the same trades, month and year always yields the same grid.
type CalendarGrid struct {
	Year  int
	Month time.Month
	Weeks [][7]DayCell
	// WeekTotals[i] sums Weeks[i]; padding cells contribute nothing.
	WeekTotals []WeekSummary
}

// MonthCalendar buckets the trades that fall inside (month, year) by
// calendar day and lays them out in Monday-first weeks. Days without trades
// report zero net and zero count.
func MonthCalendar(trades []ledger.Trade, year int, month time.Month) CalendarGrid {
	type dayTotal struct {
		net   float64
		count int
	}
	days := make(map[int]dayTotal)
	for _, t := range trades {
		if t.TradeDate.Year() != year || t.TradeDate.Month() != month {
			continue
		}
		d := days[t.TradeDate.Day()]
		d.net += t.NetPnL
		d.count++
		days[t.TradeDate.Day()] = d
	}

	grid := CalendarGrid{Year: year, Month: month}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	// Monday-first offset of the 1st: Monday=0 .. Sunday=6.
	offset := (int(first.Weekday()) + 6) % 7

	day := 1
	for day <= daysInMonth {
		var week [7]DayCell
		var total WeekSummary
		for i := 0; i < 7; i++ {
			if (len(grid.Weeks) == 0 && i < offset) || day > daysInMonth {
				continue // padding cell, Day stays 0
			}
			d := days[day]
			week[i] = DayCell{Day: day, NetPnL: d.net, TradeCount: d.count}
			total.NetPnL += d.net
			total.TradeCount += d.count
			day++
		}
		grid.Weeks = append(grid.Weeks, week)
		grid.WeekTotals = append(grid.WeekTotals, total)
	}
	return grid
}
