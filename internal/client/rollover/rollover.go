// Package rollover implements the startup migration that keeps the "today"
// view actionable: incomplete, unscheduled tasks left on past days are moved
// forward to today in one deterministic pass over the document.
package rollover

import (
	"sort"

	"github.com/lumina-journal/lumina/internal/client/models"
)

// Run mutates doc in place, moving every incomplete task without a
// scheduled time from days before today onto today's log. It returns the
// number of tasks moved.
//
// Rules:
//   - A task with a non-empty time is scheduled and never moves.
//   - A task whose id already exists on today's log (or was already queued
//     during this pass) is not duplicated, but is still removed from the
//     stale day.
//   - Today's log is only created if at least one task actually moves.
//
// Running twice in a row is a no-op the second time: moved tasks no longer
// match the predicate on a past day.
func Run(doc *models.UserDocument, today models.DateKey) int {
	if doc == nil || len(doc.Logs) == 0 {
		return 0
	}

	seen := map[string]struct{}{}
	if todayLog := doc.Log(today); todayLog != nil {
		for _, t := range todayLog.Tasks {
			seen[t.ID] = struct{}{}
		}
	}

	// Fixed YYYY-MM-DD keys compare chronologically as strings; sorting
	// makes the discovery order deterministic.
	dates := make([]models.DateKey, 0, len(doc.Logs))
	for date := range doc.Logs {
		if date < today {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)

	var toAdd []models.Task
	for _, date := range dates {
		log := doc.Logs[date]
		if log == nil || len(log.Tasks) == 0 {
			continue
		}

		kept := log.Tasks[:0]
		for _, t := range log.Tasks {
			if t.Completed || t.Scheduled() {
				kept = append(kept, t)
				continue
			}
			// Removal from the source day happens whether or not the id
			// is a duplicate of one already on today's list.
			if _, dup := seen[t.ID]; !dup {
				seen[t.ID] = struct{}{}
				toAdd = append(toAdd, t)
			}
		}
		log.Tasks = kept
	}

	if len(toAdd) == 0 {
		return 0
	}

	todayLog := doc.EnsureLog(today)
	todayLog.Tasks = append(todayLog.Tasks, toAdd...)
	return len(toAdd)
}
