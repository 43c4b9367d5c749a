package metrics

import (
	"time"

	"github.com/doorstephq/doorstep/internal/observability"
)

// Application-level metrics following Prometheus conventions
var (
	// AI provider metrics
	VisionAnalysisTotal    = "app_vision_analysis_total"
	VisionAnalysisDuration = "app_vision_analysis_duration_ms"
	CopyGenerationTotal    = "app_copy_generation_total"
	PacerWaitDuration      = "app_pacer_wait_duration_ms"

	// Session ledger metrics
	SessionEditsTotal   = "app_session_edits_total"
	EditLimitRejections = "app_edit_limit_rejections_total"

	// Lookup cache metrics
	LookupCacheTotal = "app_lookup_cache_total"

	// Health check metrics
	HealthCheckTotal    = "app_health_check_total"
	HealthCheckDuration = "app_health_check_duration_ms"

	// Server lifecycle metrics
	ServerStartTime = "app_server_start_time_seconds"
	ServerUptime    = "app_server_uptime_seconds"
)

// RecordVisionAnalysis records one photo analysis attempt. Fallback results
// count as failures.
func RecordVisionAnalysis(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "fallback"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			VisionAnalysisTotal,
			1,
			map[string]string{
				"status": status,
			},
		)

		_ = observability.TelemetrySystem.Histogram(
			VisionAnalysisDuration,
			duration,
			nil,
		)
	}
}

// RecordCopyGeneration records a copywriting operation with its outcome.
func RecordCopyGeneration(operation string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			CopyGenerationTotal,
			1,
			map[string]string{
				"operation": operation,
				"status":    status,
			},
		)
	}
}

// RecordPacerWait records how long a caller was held by the provider pacer.
func RecordPacerWait(waited time.Duration) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Histogram(
			PacerWaitDuration,
			waited,
			nil,
		)
	}
}

// RecordSessionEdit records a metered edit against a session.
func RecordSessionEdit(operation string) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			SessionEditsTotal,
			1,
			map[string]string{
				"operation": operation,
			},
		)
	}
}

// RecordEditLimitRejection records a request refused because the session's
// edit allowance was exhausted.
func RecordEditLimitRejection() {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			EditLimitRejections,
			1,
			nil,
		)
	}
}

// RecordLookupCache records a lookup cache hit or miss.
func RecordLookupCache(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			LookupCacheTotal,
			1,
			map[string]string{
				"outcome": outcome,
			},
		)
	}
}

// RecordHealthCheck records a health check execution
func RecordHealthCheck(checkName string, healthy bool, duration time.Duration) {
	status := "healthy"
	if !healthy {
		status = "unhealthy"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			HealthCheckTotal,
			1,
			map[string]string{
				"check":  checkName,
				"status": status,
			},
		)

		_ = observability.TelemetrySystem.Histogram(
			HealthCheckDuration,
			duration,
			map[string]string{
				"check": checkName,
			},
		)
	}
}

// SetServerStartTime records the server start time (Unix timestamp)
func SetServerStartTime(timestamp int64) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Gauge(
			ServerStartTime,
			float64(timestamp),
			nil,
		)
	}
}

// SetServerUptime records the server uptime in seconds
func SetServerUptime(seconds int64) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Gauge(
			ServerUptime,
			float64(seconds),
			nil,
		)
	}
}
