package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "music_catalog"

	StatusSuccess = "success"
	StatusError   = "error"
)

var (
	// Operations on music records (upload, update, delete, likes)
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "operations_total",
			Help:      "Total catalog operations by outcome",
		},
		[]string{"operation", "status"},
	)

	// Blob store operations
	BlobOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "blob_store",
			Name:      "operations_total",
			Help:      "Total blob store operations",
		},
		[]string{"operation", "kind", "status"},
	)

	// Bytes written to the blob store
	BlobBytesWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "blob_store",
			Name:      "bytes_written_total",
			Help:      "Total bytes written to the blob store",
		},
		[]string{"kind"},
	)

	// Deletes that found the blob already gone (dangling reference)
	MissingBlobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "blob_store",
			Name:      "missing_blobs_total",
			Help:      "Blob deletions that found the blob already absent",
		},
		[]string{"reason"},
	)

	// Compensating or superseded-blob deletes that failed
	CleanupFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "blob_store",
			Name:      "cleanup_failures_total",
			Help:      "Blob deletions that failed and left an orphan",
		},
		[]string{"reason"},
	)

	// Orphans removed by the sweep worker
	SweptBlobsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sweep",
			Name:      "blobs_deleted_total",
			Help:      "Unreferenced blobs deleted by the sweep",
		},
	)

	// Streaming
	StreamsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stream",
			Name:      "requests_total",
			Help:      "Audio stream requests by response status",
		},
		[]string{"status"},
	)
	StreamedBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stream",
			Name:      "bytes_total",
			Help:      "Total audio bytes written to clients",
		},
	)
)

// RecordOperation records the outcome of a catalog operation.
func RecordOperation(operation string, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	OperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordBlobPut records a blob write.
func RecordBlobPut(kind string, bytes int64, err error) {
	if err != nil {
		BlobOperationsTotal.WithLabelValues("put", kind, StatusError).Inc()
		return
	}
	BlobOperationsTotal.WithLabelValues("put", kind, StatusSuccess).Inc()
	BlobBytesWritten.WithLabelValues(kind).Add(float64(bytes))
}

// RecordCleanupFailure records a blob that could not be removed.
func RecordCleanupFailure(reason string) {
	CleanupFailuresTotal.WithLabelValues(reason).Inc()
}

// RecordMissingBlob records a delete that found the blob already gone.
func RecordMissingBlob(reason string) {
	MissingBlobsTotal.WithLabelValues(reason).Inc()
}

// RecordStream records a finished audio stream.
func RecordStream(status string, bytes int64) {
	StreamsTotal.WithLabelValues(status).Inc()
	StreamedBytesTotal.Add(float64(bytes))
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
