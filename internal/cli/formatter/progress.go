package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct = clamp01(pct)
	if width < 2 {
		width = 2
	}

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// RenderBars draws one horizontal bar per label, scaled so the largest value
// spans width cells, followed by the value rendered by format.
func RenderBars(labels []string, values []float64, width int, format func(float64) string) string {
	if len(labels) == 0 {
		return ""
	}
	peak := 0.0
	labelWidth := 0
	for i, v := range values {
		peak = max(peak, v)
		labelWidth = max(labelWidth, len(labels[i]))
	}

	var b strings.Builder
	for i, label := range labels {
		n := 0
		if peak > 0 {
			n = int(values[i] / peak * float64(width))
		}
		bar := StyleBlue.Render(strings.Repeat(filledBlock, n))
		fmt.Fprintf(&b, "%-*s │%s %s\n", labelWidth, label, bar, Dim(format(values[i])))
	}
	return b.String()
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
