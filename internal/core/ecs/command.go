package ecs

type commandKind uint8

const (
	cmdAddComponent commandKind = iota
	cmdRemoveComponent
)

func (k commandKind) String() string {
	switch k {
	case cmdAddComponent:
		return "add"
	case cmdRemoveComponent:
		return "remove"
	}
	return "unknown"
}

// command is one queued structural mutation. payload is only set for adds.
type command struct {
	kind    commandKind
	entity  Entity
	typeID  ComponentTypeID
	payload any
}
