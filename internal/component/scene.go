package component

// Scene holds per-scene settings. One entity per world carries it.
type Scene struct {
	Name      string
	TimeScale float32
}

// ScaledDelta applies the scene time scale to a frame delta.
func (s *Scene) ScaledDelta(dt float32) float32 {
	return dt * s.TimeScale
}

// Name labels an entity for logs and inspectors.
type Name struct {
	Value string
}

// Script binds an entity to a Lua behaviour function.
type Script struct {
	Handler string
}
