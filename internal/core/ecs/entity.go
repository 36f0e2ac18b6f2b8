package ecs

// Entity is an opaque 32-bit handle. Zero is never issued and marks "no entity".
// Handles carry no generation: a destroyed id goes back to the free list and may
// be handed out again, so holders of stale handles must check IsEntityValid.
type Entity uint32

const InvalidEntity Entity = 0

// EntityPool issues entity ids. Fresh ids grow monotonically from 1; destroyed
// ids are queued on a FIFO free list and reused in the order they were released.
type EntityPool struct {
	alive    []bool // indexed by id, alive[0] is always false
	freeList []Entity
	nextID   Entity
	living   int
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		alive:    make([]bool, 1, 1024),
		freeList: make([]Entity, 0, 256),
		nextID:   1,
	}
}

func (p *EntityPool) Create() Entity {
	var id Entity
	if len(p.freeList) > 0 {
		id = p.freeList[0]
		p.freeList = p.freeList[1:]
	} else {
		id = p.nextID
		p.nextID++
		p.alive = append(p.alive, false)
	}
	p.alive[id] = true
	p.living++
	return id
}

// Alive reports whether id has been issued and not released since.
func (p *EntityPool) Alive(id Entity) bool {
	if id == InvalidEntity || int(id) >= len(p.alive) {
		return false
	}
	return p.alive[id]
}

// Destroy releases id. Releasing an invalid or already released id is a no-op.
func (p *EntityPool) Destroy(id Entity) bool {
	if !p.Alive(id) {
		return false
	}
	p.alive[id] = false
	p.freeList = append(p.freeList, id)
	p.living--
	return true
}

func (p *EntityPool) Len() int { return p.living }

// Each calls fn for every live id in ascending order.
func (p *EntityPool) Each(fn func(Entity)) {
	for i := 1; i < len(p.alive); i++ {
		if p.alive[i] {
			fn(Entity(i))
		}
	}
}
