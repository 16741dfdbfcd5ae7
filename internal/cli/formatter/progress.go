package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░]  45%, colored by
// percentage: green above 66%, yellow between 33% and 66%, red below.
func RenderProgress(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// SparkBar renders a horizontal count bar for the weekly chart, scaled
// against the week's maximum.
func SparkBar(count, max, width int) string {
	if max <= 0 || count <= 0 {
		return StyleDim.Render(strings.Repeat("·", 1))
	}
	n := count * width / max
	if n < 1 {
		n = 1
	}
	return strings.Repeat(filledBlock, n)
}
