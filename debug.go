package guide

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger returns a logger in the format the guide's tools use: timestamped,
// prefixed with "guide", writing to w at the given level.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "guide",
	})
}

// drawStats holds per-frame overlay metrics. Only logged when the overlay was
// created with Debug set.
type drawStats struct {
	id            string
	vertexCount   int
	triangleCount int
	lineCount     int
	drawTime      time.Duration
}

// debugLog logs draw stats at debug level.
func (o *Overlay) debugLog(stats drawStats) {
	if !o.debug {
		return
	}
	o.guide.logger.Debug("overlay draw",
		"id", stats.id,
		"vertices", stats.vertexCount,
		"triangles", stats.triangleCount,
		"lines", stats.lineCount,
		"time", stats.drawTime)
}
