package game

// DebugState holds debug flags that persist across playthroughs
type DebugState struct {
	ShowOverlay bool // Show the diagnostic readout line (overlap flags, entity counts)
}

// Global debug state instance (persists across scene switches)
var globalDebugState = &DebugState{
	ShowOverlay: false, // Default to off
}

// GetDebugState returns the global debug state
func GetDebugState() *DebugState {
	return globalDebugState
}
