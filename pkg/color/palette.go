package color

// Clear is the zero-alpha sentinel: compositing it changes nothing, so
// a Clear background lets the parent's already-painted pixels show.
var Clear = Color{}

// Unset is the conspicuous placeholder a builder falls back to when no
// color was configured. It is never chosen deliberately, so a widget
// showing it is visibly misconfigured rather than silently transparent.
var Unset = Foam

// The default palette (Rosé Pine).
var (
	Base    = RGB(0x19, 0x17, 0x24)
	Surface = RGB(0x1f, 0x1d, 0x2e)
	Overlay = RGB(0x26, 0x23, 0x3a)
	Muted   = RGB(0x6e, 0x6a, 0x86)
	Subtle  = RGB(0x90, 0x8c, 0xaa)
	Text    = RGB(0xe0, 0xde, 0xf4)
	Love    = RGB(0xeb, 0x6f, 0x92)
	Gold    = RGB(0xf6, 0xc1, 0x77)
	Rose    = RGB(0xeb, 0xbc, 0xba)
	Pine    = RGB(0x31, 0x74, 0x8f)
	Foam    = RGB(0x9c, 0xcf, 0xd8)
	Iris    = RGB(0xc4, 0xa7, 0xe7)

	HighlightLow  = RGB(0x21, 0x20, 0x2e)
	HighlightMed  = RGB(0x40, 0x3d, 0x52)
	HighlightHigh = RGB(0x52, 0x4f, 0x67)
)
