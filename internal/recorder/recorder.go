package recorder

import "github.com/huuquangchungkhoan/QuangvaQuang/internal/model"

// Recorder persists pipeline run history for operability review.
type Recorder interface {
	RecordRun(summary *model.RunSummary) error
	Close() error
}
