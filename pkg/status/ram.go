package status

import (
	"time"

	gopsmem "github.com/shirou/gopsutil/v4/mem"

	"github.com/go-ledge/ledge/pkg/color"
	"github.com/go-ledge/ledge/pkg/font"
	"github.com/go-ledge/ledge/pkg/geometry"
)

// ramSampleInterval paces the memory reads. Memory pressure moves far
// slower than CPU load, so it is sampled less often.
const ramSampleInterval = time.Second

// sampleRAM reads the used fraction of physical memory, in [0, 1].
func sampleRAM() (float64, error) {
	vm, err := gopsmem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return min(max(vm.UsedPercent/100, 0), 1), nil
}

// RAMBuilder configures a RAM gauge: a memory glyph over a vertical
// usage bar that appears only while usage sits above the show
// threshold.
type RAMBuilder struct {
	gaugeBuilder
}

// NewRAM returns a builder with the default threshold of 75% usage.
func NewRAM() RAMBuilder {
	return RAMBuilder{gaugeBuilder{
		fg:        color.Text,
		bg:        color.Unset,
		barFilled: color.Iris,
		threshold: 0.75,
		interval:  ramSampleInterval,
		now:       time.Now,
	}}
}

// Font sets the glyph typeface.
func (b RAMBuilder) Font(f *font.Font) RAMBuilder { b.font = f; return b }

// DesiredHeight sets the widget height in pixels.
func (b RAMBuilder) DesiredHeight(h int) RAMBuilder { b.desiredHeight = h; return b }

// HAlign sets the widget's horizontal alignment.
func (b RAMBuilder) HAlign(a geometry.Align) RAMBuilder { b.hAlign = a; return b }

// VAlign sets the widget's vertical alignment.
func (b RAMBuilder) VAlign(a geometry.Align) RAMBuilder { b.vAlign = a; return b }

// Fg sets the glyph color.
func (b RAMBuilder) Fg(c color.Color) RAMBuilder { b.fg = c; return b }

// Bg sets the background color.
func (b RAMBuilder) Bg(c color.Color) RAMBuilder { b.bg = c; return b }

// BarColor sets the usage bar's fill color.
func (b RAMBuilder) BarColor(c color.Color) RAMBuilder { b.barFilled = c; return b }

// ShowThreshold sets the usage ratio above which the gauge appears.
func (b RAMBuilder) ShowThreshold(t float64) RAMBuilder { b.threshold = t; return b }

// Build constructs the RAM gauge.
func (b RAMBuilder) Build(name string) (*Gauge, error) {
	return b.gaugeBuilder.build(name, '', sampleRAM)
}
