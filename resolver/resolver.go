// Package resolver joins call handlers to the display names of their
// business-hour schedules via schedule sets and schedule set members.
package resolver

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"unity-handler-report/metrics"
	"unity-handler-report/models"
)

// Sentinel values substituted when a reference cannot be resolved. Missing
// data never drops a handler and never aborts the run.
const (
	NoSchedule      = "No Schedule"
	UnknownSchedule = "Unknown Schedule"
	unnamedHandler  = "Unnamed Handler"
)

// Resolve produces exactly one row per handler, in input order. A handler
// with no schedule set, an unknown or empty set, or a fully excluded member
// list resolves to the NoSchedule sentinel; a member pointing at a schedule
// id that was never fetched contributes UnknownSchedule to the joined list.
func Resolve(handlers []models.CallHandler, schedules []models.Schedule, index models.MemberIndex, log *zap.Logger) []models.ResolvedRow {
	start := time.Now()

	// Last write wins on duplicate ids; schedules are assumed unique.
	scheduleByID := make(map[string]string, len(schedules))
	for _, s := range schedules {
		scheduleByID[s.ObjectID] = s.DisplayName
	}

	rows := make([]models.ResolvedRow, 0, len(handlers))
	noSchedule := 0

	for _, h := range handlers {
		name := h.DisplayName
		if name == "" {
			name = unnamedHandler
		}

		if h.ScheduleSetObjectID == "" {
			log.Warn("call handler has no schedule set",
				zap.String("handler", name))
			rows = append(rows, models.ResolvedRow{CallHandlerName: name, Schedule: NoSchedule})
			noSchedule++
			continue
		}

		members := index[h.ScheduleSetObjectID]
		if len(members) == 0 {
			log.Warn("no members found for schedule set",
				zap.String("handler", name),
				zap.String("schedule_set", h.ScheduleSetObjectID))
			rows = append(rows, models.ResolvedRow{CallHandlerName: name, Schedule: NoSchedule})
			noSchedule++
			continue
		}

		var resolved []string
		for _, m := range members {
			if m.Excluded() {
				continue
			}
			display, ok := scheduleByID[m.ScheduleObjectID]
			if !ok {
				metrics.UnknownScheduleRefsTotal.Inc()
				display = UnknownSchedule
			}
			resolved = append(resolved, display)
		}

		if len(resolved) == 0 {
			log.Warn("no valid schedules linked to call handler",
				zap.String("handler", name),
				zap.String("schedule_set", h.ScheduleSetObjectID))
			rows = append(rows, models.ResolvedRow{CallHandlerName: name, Schedule: NoSchedule})
			noSchedule++
			continue
		}

		rows = append(rows, models.ResolvedRow{
			CallHandlerName: name,
			Schedule:        strings.Join(resolved, ", "),
		})
	}

	metrics.HandlersResolvedTotal.Set(float64(len(rows)))
	metrics.RowsNoSchedule.Set(float64(noSchedule))
	metrics.ResolveDurationSeconds.Observe(time.Since(start).Seconds())

	log.Info("resolved call handlers against schedules",
		zap.Int("rows", len(rows)),
		zap.Int("no_schedule", noSchedule))
	return rows
}
