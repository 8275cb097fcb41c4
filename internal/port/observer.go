package port

import (
	"time"

	"imagesvc/internal/domain"
)

// UploadObserver receives telemetry from the image service.
type UploadObserver interface {
	RecordUpload(category domain.Category, files int, bytes int64, duration time.Duration)
	RecordRejection(category domain.Category, reason string)
	RecordDelete(category domain.Category, err error)
	RecordCleanup(category domain.Category, err error)
}
