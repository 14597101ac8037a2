package prometrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// TextfileFlusher writes everything g gathers to path in the text exposition
// format, for the node_exporter textfile collector. An empty path disables it.
func TextfileFlusher(path string, g prometheus.Gatherer) func(ctx context.Context) error {
	return func(context.Context) error {
		if path == "" {
			return nil
		}
		if g == nil {
			g = prometheus.DefaultGatherer
		}
		if err := prometheus.WriteToTextfile(path, g); err != nil {
			return fmt.Errorf("prometrics: write %s: %w", path, err)
		}
		return nil
	}
}
