package recorder

import "github.com/huuquangchungkhoan/QuangvaQuang/internal/model"

// NoopRecorder discards all run history. Used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (*NoopRecorder) RecordRun(*model.RunSummary) error { return nil }
func (*NoopRecorder) Close() error                      { return nil }
