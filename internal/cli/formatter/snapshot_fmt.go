package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/medcorpus/internal/domain"
	"github.com/alexanderramin/medcorpus/internal/service"
)

func FormatSnapshot(res *service.SnapshotResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d inserted, %d updated, %d unchanged, %d removed\n",
		Bold("snapshot:"), res.Inserted, res.Updated, res.Unchanged, res.Removed)
	if res.Skipped > 0 {
		fmt.Fprintf(&b, "%s\n", StyleYellow.Render(fmt.Sprintf("%d invalid topic(s) skipped", res.Skipped)))
	}
	fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("%d topic(s) stored", res.Stored)))
	if len(res.Issues) > 0 {
		b.WriteString(FormatIssues(res.Issues))
	}
	return b.String()
}

// FormatRuns lists stored validation runs, newest first.
func FormatRuns(runs []*domain.ValidationRun) string {
	if len(runs) == 0 {
		return Dim("no validation runs recorded") + "\n"
	}
	t := NewTable("RUN", "STARTED", "TOPICS", "ERRORS", "WARNINGS", "RESULT").AlignRight(2, 3, 4)
	for _, run := range runs {
		result := StyleGreen.Render("passed")
		if !run.Passed() {
			result = StyleRed.Render("failed")
		}
		t.AddRow(
			run.DisplayID(),
			run.StartedAt.Local().Format(time.DateTime),
			fmt.Sprintf("%d", run.TopicCount),
			fmt.Sprintf("%d", run.ErrorCount),
			fmt.Sprintf("%d", run.WarningCount),
			result,
		)
	}
	return t.String()
}
