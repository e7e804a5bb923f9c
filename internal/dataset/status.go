package dataset

// Known status vocabulary of the planning tool. The table keeps whatever
// the source says; these constants only anchor the display mapping and the
// schedule rules.
const (
	StatusOnTrack    = "em dia"
	StatusDelayed    = "atrasado"
	StatusCritical   = "critico"
	StatusPaused     = "pausado"
	StatusCompleted  = "concluido"
	StatusInProgress = "andamento"
)
