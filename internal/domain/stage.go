package domain

// Stage identifies a step of the report pipeline. The pipeline advances
// through the stages in declaration order; any failure makes the stage it
// occurred in terminal for the run.
type Stage int

const (
	StageIdle Stage = iota
	StageFetching
	StageProjecting
	StageRendering
	StageConverting
	StagePublishing
	StageDone
)

// String returns the stage name used in logs and notifications.
func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageFetching:
		return "fetching"
	case StageProjecting:
		return "projecting"
	case StageRendering:
		return "rendering"
	case StageConverting:
		return "converting"
	case StagePublishing:
		return "publishing"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}
