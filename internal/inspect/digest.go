package inspect

import (
	"encoding/binary"
	"encoding/hex"
	"hash"
	"math"

	"golang.org/x/crypto/blake2b"
)

// Digest hashes the physical state in a snapshot with BLAKE2b-256. Names and
// component lists are not hashed; ids, transforms, rigidbodies and colliders are.
func Digest(s Snapshot) [32]byte {
	h, _ := blake2b.New256(nil) // only fails for keys over 64 bytes
	d := digester{h: h}
	for _, st := range s.Entities {
		d.u32(uint32(st.Entity))
		if t := st.Transform; t != nil {
			d.tag('T')
			d.f32(t.Position.X(), t.Position.Y(), t.Scale.X(), t.Scale.Y(), t.Rotation)
		}
		if rb := st.Rigidbody; rb != nil {
			d.tag('R')
			d.f32(rb.Velocity.X(), rb.Velocity.Y(), rb.AngularVelocity,
				rb.GravityScale, rb.Mass, rb.Restitution, rb.Friction, rb.Drag, rb.AngularDrag)
			d.flag(rb.UseGravity)
		}
		if c := st.Collider; c != nil {
			d.tag('C')
			d.f32(c.Size.X(), c.Size.Y(), c.Offset.X(), c.Offset.Y())
			d.flag(c.IsTrigger)
			d.flag(c.IsStatic)
		}
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// DigestString is Digest in hex.
func DigestString(s Snapshot) string {
	sum := Digest(s)
	return hex.EncodeToString(sum[:])
}

type digester struct {
	h   hash.Hash
	buf [4]byte
}

func (d *digester) u32(v uint32) {
	binary.LittleEndian.PutUint32(d.buf[:], v)
	d.h.Write(d.buf[:])
}

func (d *digester) f32(vs ...float32) {
	for _, v := range vs {
		d.u32(math.Float32bits(v))
	}
}

func (d *digester) tag(b byte) {
	d.h.Write([]byte{b})
}

func (d *digester) flag(b bool) {
	if b {
		d.tag(1)
	} else {
		d.tag(0)
	}
}
