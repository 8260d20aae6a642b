// Package classifier selects system call handlers out of the full fetch and
// deduplicates them by composite key.
package classifier

import (
	"strings"

	"go.uber.org/zap"

	"unity-handler-report/metrics"
	"unity-handler-report/models"
)

// systemDisplayNames are handler names that count as system handlers even
// without the undeletable flag or a DTMF access id.
var systemDisplayNames = map[string]bool{
	"auto attendant":   true,
	"opening greeting": true,
	"operator":         true,
}

// IsSystemHandler reports whether a handler belongs to the base system:
// undeletable, DTMF-addressable, or one of the well-known display names.
func IsSystemHandler(h models.CallHandler) bool {
	if h.IsUndeletable() {
		return true
	}
	if h.DtmfAccessID != "" {
		return true
	}
	return systemDisplayNames[strings.ToLower(strings.TrimSpace(h.DisplayName))]
}

// Classify filters handlers down to system handlers and drops duplicates by
// dedup key, keeping the first occurrence. Order is preserved, every dropped
// duplicate is logged, and re-running Classify on its own output is a no-op.
func Classify(handlers []models.CallHandler, log *zap.Logger) []models.CallHandler {
	seen := make(map[string]bool)
	unique := make([]models.CallHandler, 0, len(handlers))

	for _, h := range handlers {
		if !IsSystemHandler(h) {
			continue
		}
		key := h.DedupKey()
		if seen[key] {
			metrics.DuplicateHandlersTotal.Inc()
			log.Warn("duplicate handler detected, keeping the first instance",
				zap.String("display_name", h.DisplayName),
				zap.String("key", key))
			continue
		}
		seen[key] = true
		unique = append(unique, h)
	}

	metrics.HandlersSelectedTotal.Set(float64(len(unique)))
	log.Info("classified system call handlers",
		zap.Int("selected", len(unique)),
		zap.Int("total", len(handlers)))
	return unique
}
