package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/huuquangchungkhoan/QuangvaQuang/internal/model"
)

// FormatRunSummary formats one pipeline run summary into a Telegram message.
func FormatRunSummary(s *model.RunSummary) string {
	var b strings.Builder

	icon := "✅"
	if s.Failed > 0 {
		icon = "⚠️"
	}
	if s.Succeeded == 0 {
		icon = "❌"
	}
	b.WriteString(fmt.Sprintf("%s <b>%s run</b> | %s\n\n", icon, s.Job, s.StartedAt.Format("2006-01-02 15:04")))

	b.WriteString(fmt.Sprintf("Processed: %d\n", s.Processed))
	b.WriteString(fmt.Sprintf("Succeeded: %d | Failed: %d | Skipped: %d\n", s.Succeeded, s.Failed, s.Skipped))
	b.WriteString(fmt.Sprintf("Rows written: %d in %d partition(s)\n", s.RowsWritten, s.Partitions))
	if s.IndicatorSet != "" {
		b.WriteString(fmt.Sprintf("Indicator set: %s\n", s.IndicatorSet))
	}
	b.WriteString(fmt.Sprintf("Elapsed: %s\n", s.Elapsed.Round(time.Second)))

	return b.String()
}
