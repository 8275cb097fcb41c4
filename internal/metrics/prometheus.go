package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"imagesvc/internal/domain"
	"imagesvc/internal/port"
)

// PrometheusObserver exports image service metrics to Prometheus.
type PrometheusObserver struct {
	uploadedFiles  *prometheus.CounterVec
	uploadedBytes  *prometheus.CounterVec
	uploadDuration *prometheus.HistogramVec
	rejections     *prometheus.CounterVec
	deletes        *prometheus.CounterVec
	cleanupDeletes *prometheus.CounterVec
}

var _ port.UploadObserver = (*PrometheusObserver)(nil)

// NewPrometheusObserver registers the upload metrics under namespace.
func NewPrometheusObserver(namespace string, reg prometheus.Registerer) (*PrometheusObserver, error) {
	if namespace == "" {
		namespace = "imagesvc"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	o := &PrometheusObserver{
		uploadedFiles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploaded_files_total",
			Help:      "Images stored, by category.",
		}, []string{"category"}),
		uploadedBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploaded_bytes_total",
			Help:      "Bytes stored, by category.",
		}, []string{"category"}),
		uploadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upload_duration_seconds",
			Help:      "Latency of successful upload requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"category"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upload_failures_total",
			Help:      "Upload requests that failed, by category and reason.",
		}, []string{"category", "reason"}),
		deletes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deletes_total",
			Help:      "Delete requests, by category and result.",
		}, []string{"category", "result"}),
		cleanupDeletes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cleanup_deletes_total",
			Help:      "Rollback deletions of files written by failed uploads, by result.",
		}, []string{"category", "result"}),
	}

	var err error
	if o.uploadedFiles, err = register(reg, o.uploadedFiles); err != nil {
		return nil, err
	}
	if o.uploadedBytes, err = register(reg, o.uploadedBytes); err != nil {
		return nil, err
	}
	if o.uploadDuration, err = register(reg, o.uploadDuration); err != nil {
		return nil, err
	}
	if o.rejections, err = register(reg, o.rejections); err != nil {
		return nil, err
	}
	if o.deletes, err = register(reg, o.deletes); err != nil {
		return nil, err
	}
	if o.cleanupDeletes, err = register(reg, o.cleanupDeletes); err != nil {
		return nil, err
	}
	return o, nil
}

// register adds c to reg, reusing the collector already registered under the
// same name.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("register image metric: %w", err)
	}
	return c, nil
}

func (o *PrometheusObserver) RecordUpload(category domain.Category, files int, bytes int64, duration time.Duration) {
	if o == nil {
		return
	}
	c := string(category)
	o.uploadedFiles.WithLabelValues(c).Add(float64(files))
	o.uploadedBytes.WithLabelValues(c).Add(float64(bytes))
	o.uploadDuration.WithLabelValues(c).Observe(duration.Seconds())
}

func (o *PrometheusObserver) RecordRejection(category domain.Category, reason string) {
	if o == nil {
		return
	}
	o.rejections.WithLabelValues(string(category), reason).Inc()
}

func (o *PrometheusObserver) RecordDelete(category domain.Category, err error) {
	if o == nil {
		return
	}
	o.deletes.WithLabelValues(string(category), deleteResult(err)).Inc()
}

func (o *PrometheusObserver) RecordCleanup(category domain.Category, err error) {
	if o == nil {
		return
	}
	o.cleanupDeletes.WithLabelValues(string(category), deleteResult(err)).Inc()
}

func deleteResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrImageNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// NopObserver discards all telemetry.
type NopObserver struct{}

func (NopObserver) RecordUpload(domain.Category, int, int64, time.Duration) {}
func (NopObserver) RecordRejection(domain.Category, string) {}
func (NopObserver) RecordDelete(domain.Category, error) {}
func (NopObserver) RecordCleanup(domain.Category, error) {}
