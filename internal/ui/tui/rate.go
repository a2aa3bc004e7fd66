package tui

import (
	"fmt"

	"github.com/bamsammich/photocopy/internal/stats"
	"github.com/bamsammich/photocopy/internal/ui"
)

// rateView renders the one-line throughput strip under the header.
type rateView struct {
	sparkWidth int
}

func newRateView() rateView {
	return rateView{sparkWidth: 30}
}

func (r *rateView) view(width int, collector stats.Reader) string {
	sparkWidth := min(r.sparkWidth, max(width-40, 10))
	spark := ui.Sparkline(collector.SparklineData(sparkWidth), sparkWidth)
	fps := collector.RollingFilesPerSec(5)
	bps := collector.RollingSpeed(5)

	return fmt.Sprintf("  %s  %s  %s",
		styleSparkline.Render(spark),
		styleRate.Render(fmt.Sprintf("%.1f files/s", fps)),
		styleRate.Render(ui.FormatRate(bps)),
	)
}
