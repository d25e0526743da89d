package services

// EditState is a step of an edit operation
type EditState int

const (
	StateDiscovering EditState = iota
	StateResolvingPlugins
	StateBuildingModules
	StateAssembling
	StateDelegating
	StateDone
	StateFailed
)

func (s EditState) String() string {
	switch s {
	case StateDiscovering:
		return "discovering"
	case StateResolvingPlugins:
		return "resolving_plugins"
	case StateBuildingModules:
		return "building_modules"
	case StateAssembling:
		return "assembling"
	case StateDelegating:
		return "delegating"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen from s
func (s EditState) Terminal() bool {
	return s == StateDone || s == StateFailed
}
