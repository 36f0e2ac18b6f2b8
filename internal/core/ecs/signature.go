package ecs

import (
	"math/bits"
	"strconv"
	"strings"
)

// MaxComponentTypes bounds the number of distinct component types per World.
const MaxComponentTypes = 256

// ComponentTypeID is the small integer a World assigns to a component type on
// first use. Ids start at 0 and stay stable for the lifetime of the World.
type ComponentTypeID uint8

// Signature is the set of component types an entity holds, or a system requires.
type Signature [MaxComponentTypes / 64]uint64

func NewSignature(ids ...ComponentTypeID) Signature {
	var s Signature
	for _, id := range ids {
		s.Set(id)
	}
	return s
}

func (s *Signature) Set(id ComponentTypeID)   { s[id>>6] |= 1 << (id & 63) }
func (s *Signature) Unset(id ComponentTypeID) { s[id>>6] &^= 1 << (id & 63) }

func (s Signature) Has(id ComponentTypeID) bool {
	return s[id>>6]&(1<<(id&63)) != 0
}

// Contains reports whether every type in sub is also in s.
// An empty sub is contained in every signature.
func (s Signature) Contains(sub Signature) bool {
	for i := range s {
		if s[i]&sub[i] != sub[i] {
			return false
		}
	}
	return true
}

func (s Signature) IsEmpty() bool {
	return s == Signature{}
}

func (s Signature) Len() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}

// IDs lists the member type ids in ascending order.
func (s Signature) IDs() []ComponentTypeID {
	ids := make([]ComponentTypeID, 0, s.Len())
	for i, w := range s {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			ids = append(ids, ComponentTypeID(i*64+b))
			w &= w - 1
		}
	}
	return ids
}

func (s Signature) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, id := range s.IDs() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(id)))
	}
	sb.WriteByte('}')
	return sb.String()
}
