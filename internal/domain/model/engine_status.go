package model

// EngineStatus is the lifecycle state of the inference engine. The only
// transitions are NotLoaded -> Available and NotLoaded -> Unavailable.
type EngineStatus int

const (
	EngineNotLoaded EngineStatus = iota
	EngineAvailable
	EngineUnavailable
)

func (s EngineStatus) String() string {
	switch s {
	case EngineAvailable:
		return "available"
	case EngineUnavailable:
		return "unavailable"
	default:
		return "not_loaded"
	}
}
