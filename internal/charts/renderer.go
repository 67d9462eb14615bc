package charts

import (
	"context"
	"log/slog"
)

// Point is one labeled value on a line chart's x-axis.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Renderer is the contract the analysis engine consumes to produce chart
// artifacts. Implementations may be remote services or local drawing
// backends; every call may fail and callers are expected to degrade to a
// placeholder rather than abort.
type Renderer interface {
	RenderLineChart(ctx context.Context, title string, series []Point, color string) ([]byte, error)
	RenderDoughnut(ctx context.Context, title string, labels []string, values []float64) ([]byte, error)
	RenderBarComparison(ctx context.Context, title string, labels []string, current, previous []float64) ([]byte, error)
}

// Artifact is one rendered chart image, or its placeholder when rendering
// failed.
type Artifact struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
	Placeholder bool   `json:"placeholder"`
}

// RenderOrPlaceholder runs one chart render and substitutes a placeholder
// artifact on failure. Chart rendering is best-effort: a failed chart is
// logged and replaced, never propagated.
func RenderOrPlaceholder(logger *slog.Logger, name, title string, render func() ([]byte, error)) Artifact {
	data, err := render()
	if err != nil {
		logger.Warn("chart render failed, using placeholder", "chart", name, "error", err)
		return Artifact{
			Name:        name,
			Title:       title,
			ContentType: contentTypeJSON,
			Data:        PlaceholderChart(title),
			Placeholder: true,
		}
	}
	return Artifact{
		Name:        name,
		Title:       title,
		ContentType: contentTypeJSON,
		Data:        data,
	}
}
