package analytics

import "github.com/cavalcanteprofissional/mittu-dashboard/internal/dataset"

// DefaultStatusColor is assigned to any status value outside the known
// vocabulary.
const DefaultStatusColor = "#A9A9A9"

// statusColors is the fixed display mapping for the known status set. It
// is a declared lookup table, never derived from or mutated by data.
var statusColors = map[string]string{
	dataset.StatusOnTrack:    "#2E8B57",
	dataset.StatusDelayed:    "#FF8C00",
	dataset.StatusCritical:   "#DC143C",
	dataset.StatusPaused:     "#708090",
	dataset.StatusCompleted:  "#4682B4",
	dataset.StatusInProgress: "#3CB371",
}

// StatusColor returns the display color for a status value, falling back
// to DefaultStatusColor for anything outside the known set.
func StatusColor(status string) string {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return DefaultStatusColor
}
