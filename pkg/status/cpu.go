package status

import (
	"errors"
	"time"

	gopscpu "github.com/shirou/gopsutil/v4/cpu"

	"github.com/go-ledge/ledge/pkg/color"
	"github.com/go-ledge/ledge/pkg/font"
	"github.com/go-ledge/ledge/pkg/geometry"
)

// cpuSampleInterval paces the usage counter reads. Reads closer
// together than the kernel's accounting granularity produce noise, not
// data.
const cpuSampleInterval = 400 * time.Millisecond

// sampleCPU reads aggregate usage since the previous call, normalized
// to [0, 1]. The zero interval makes the call non-blocking.
func sampleCPU() (float64, error) {
	percents, err := gopscpu.Percent(0, false)
	if err != nil {
		return 0, err
	}
	if len(percents) == 0 {
		return 0, errors.New("cpu: no aggregate usage reported")
	}
	return min(max(percents[0]/100, 0), 1), nil
}

// CPUBuilder configures a CPU gauge: a processor glyph over a vertical
// usage bar that appears only while usage sits above the show
// threshold.
type CPUBuilder struct {
	gaugeBuilder
}

// NewCPU returns a builder with the default threshold of 75% usage.
func NewCPU() CPUBuilder {
	return CPUBuilder{gaugeBuilder{
		fg:        color.Text,
		bg:        color.Unset,
		barFilled: color.Pine,
		threshold: 0.75,
		interval:  cpuSampleInterval,
		now:       time.Now,
	}}
}

// Font sets the glyph typeface.
func (b CPUBuilder) Font(f *font.Font) CPUBuilder { b.font = f; return b }

// DesiredHeight sets the widget height in pixels.
func (b CPUBuilder) DesiredHeight(h int) CPUBuilder { b.desiredHeight = h; return b }

// HAlign sets the widget's horizontal alignment.
func (b CPUBuilder) HAlign(a geometry.Align) CPUBuilder { b.hAlign = a; return b }

// VAlign sets the widget's vertical alignment.
func (b CPUBuilder) VAlign(a geometry.Align) CPUBuilder { b.vAlign = a; return b }

// Fg sets the glyph color.
func (b CPUBuilder) Fg(c color.Color) CPUBuilder { b.fg = c; return b }

// Bg sets the background color.
func (b CPUBuilder) Bg(c color.Color) CPUBuilder { b.bg = c; return b }

// BarColor sets the usage bar's fill color.
func (b CPUBuilder) BarColor(c color.Color) CPUBuilder { b.barFilled = c; return b }

// ShowThreshold sets the usage ratio above which the gauge appears.
func (b CPUBuilder) ShowThreshold(t float64) CPUBuilder { b.threshold = t; return b }

// Build constructs the CPU gauge.
func (b CPUBuilder) Build(name string) (*Gauge, error) {
	// Prime the usage counters so the first real sample has a delta to
	// measure against.
	_, _ = gopscpu.Percent(0, false)
	return b.gaugeBuilder.build(name, '', sampleCPU)
}
