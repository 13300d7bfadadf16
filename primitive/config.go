package primitive

// Config controls optional behaviour of frame building.
type Config struct {
	// EnableScrollbars adds a scrollbar indicator to every page root.
	EnableScrollbars bool

	// EnableSubpixelAA allows subpixel antialiasing for text runs that
	// request it.
	EnableSubpixelAA bool

	// EnableOverscroll lets scroll gestures move past content bounds and
	// spring back.
	EnableOverscroll bool

	// DebugOverdraw makes Build report how much visible primitive area
	// overlaps.
	DebugOverdraw bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		EnableSubpixelAA: true,
	}
}
