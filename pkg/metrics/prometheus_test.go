package metrics_test

import (
	"testing"

	"github.com/neurotrack/progression/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func TestMetricsRegistry(t *testing.T) {
	convey.Convey("Given the global metrics manager", t, func() {
		convey.Convey("Then the custom registry is available", func() {
			convey.So(metrics.GetRegistry(), convey.ShouldNotBeNil)
		})

		convey.Convey("When recording across the metric families", func() {
			metrics.RecordPredictionGenerated()
			metrics.RecordPredictionDuplicate()
			metrics.RecordPredictionFailure()
			metrics.RecordGenerationLatency(1.5)
			metrics.RecordEnforcementRun()
			metrics.RecordEnforcementLatency(0.2)
			metrics.RecordValidationRun()
			metrics.RecordValidationFailure()
			metrics.UpdateQueueSize(3)
			metrics.UpdateQueueCapacity(100)
			metrics.UpdateQueueUtilization(0.03)
			metrics.RecordQueueEnqueue()
			metrics.RecordQueueDequeue()
			metrics.RecordQueueEnqueueError()
			metrics.UpdateWorkerCount(4)
			metrics.UpdateWorkerActiveCount(4)
			metrics.RecordWorkerProcessingLatency(2.0)
			metrics.RecordWorkerError()
			metrics.UpdateDocumentsStored(10)
			metrics.UpdateStoreShardCount(16)
			metrics.RecordStoreUpdateLatency(0.1)
			metrics.RecordStoreQueryLatency(0.1)
			metrics.RecordHTTPRequest("predictions", "POST", "202")
			metrics.RecordHTTPRequestDuration("predictions", "POST", "202", 1.0)
			metrics.RecordErrorByComponent("worker", "generation failed")
			metrics.UpdateSystemMemoryUsage(1024)
			metrics.UpdateSystemGoroutineCount(12)
			metrics.RecordSystemGCPauseTime(0.5)

			convey.Convey("Then the registry gathers every family", func() {
				families, err := metrics.GetRegistry().Gather()
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(families), convey.ShouldBeGreaterThan, 20)

				names := make(map[string]bool, len(families))
				for _, f := range families {
					names[f.GetName()] = true
				}
				convey.So(names["neurotrack_progression_predictions_generated_total"], convey.ShouldBeTrue)
				convey.So(names["neurotrack_progression_queue_size"], convey.ShouldBeTrue)
				convey.So(names["neurotrack_progression_http_requests_total"], convey.ShouldBeTrue)
			})
		})
	})
}
