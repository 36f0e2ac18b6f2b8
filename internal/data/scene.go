package data

import (
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// TransformDef places an entity. Scale defaults to (1,1).
type TransformDef struct {
	Position [2]float32  `yaml:"position"`
	Scale    *[2]float32 `yaml:"scale"`
	Rotation float32     `yaml:"rotation"` // degrees
}

type ColliderDef struct {
	Size    [2]float32 `yaml:"size"`
	Offset  [2]float32 `yaml:"offset"`
	Trigger bool       `yaml:"trigger"`
	Static  bool       `yaml:"static"`
}

// RigidbodyDef overrides Rigidbody2D defaults; nil fields keep the default
// or the material's value.
type RigidbodyDef struct {
	Material        string      `yaml:"material"`
	Velocity        *[2]float32 `yaml:"velocity"`
	AngularVelocity *float32    `yaml:"angular_velocity"`
	GravityScale    *float32    `yaml:"gravity_scale"`
	Mass            *float32    `yaml:"mass"`
	Restitution     *float32    `yaml:"restitution"`
	Friction        *float32    `yaml:"friction"`
	Drag            *float32    `yaml:"drag"`
	AngularDrag     *float32    `yaml:"angular_drag"`
	UseGravity      *bool       `yaml:"use_gravity"`
}

type ScriptDef struct {
	Handler string `yaml:"handler"`
}

type EntityDef struct {
	Name      string        `yaml:"name"`
	Transform *TransformDef `yaml:"transform"`
	Collider  *ColliderDef  `yaml:"collider"`
	Rigidbody *RigidbodyDef `yaml:"rigidbody"`
	Script    *ScriptDef    `yaml:"script"`
}

// Material is a named set of surface properties entities can share.
type Material struct {
	Restitution float32 `yaml:"restitution"`
	Friction    float32 `yaml:"friction"`
	Drag        float32 `yaml:"drag"`
	AngularDrag float32 `yaml:"angular_drag"`
}

// SceneDef is one scene file.
type SceneDef struct {
	Name      string              `yaml:"name"`
	TimeScale *float32            `yaml:"time_scale"`
	Gravity   *[2]float32         `yaml:"gravity"`
	Materials map[string]Material `yaml:"materials"`
	Entities  []EntityDef         `yaml:"entities"`
}

// Material returns the named material.
func (s *SceneDef) Material(name string) (Material, bool) {
	m, ok := s.Materials[name]
	return m, ok
}

// Count returns the number of entity definitions.
func (s *SceneDef) Count() int {
	return len(s.Entities)
}

// LoadScene loads and validates a scene from a YAML file.
func LoadScene(path string) (*SceneDef, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := ParseScene(raw)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return s, nil
}

// ParseScene decodes and validates scene YAML.
func ParseScene(raw []byte) (*SceneDef, error) {
	var s SceneDef
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate reports every out-of-range value at once.
func (s *SceneDef) Validate() error {
	var errs error
	if s.TimeScale != nil && *s.TimeScale < 0 {
		errs = multierr.Append(errs, fmt.Errorf("time_scale %v is negative", *s.TimeScale))
	}
	for name, m := range s.Materials {
		errs = multierr.Append(errs, unitRange("material "+name+" restitution", &m.Restitution))
		errs = multierr.Append(errs, unitRange("material "+name+" friction", &m.Friction))
	}
	for i, e := range s.Entities {
		label := fmt.Sprintf("entity %d", i)
		if e.Name != "" {
			label = fmt.Sprintf("entity %d (%s)", i, e.Name)
		}
		if c := e.Collider; c != nil {
			if c.Size[0] < 0 || c.Size[1] < 0 {
				errs = multierr.Append(errs, fmt.Errorf("%s: collider size %v is negative", label, c.Size))
			}
		}
		if rb := e.Rigidbody; rb != nil {
			if rb.Mass != nil && *rb.Mass < 0 {
				errs = multierr.Append(errs, fmt.Errorf("%s: mass %v is negative", label, *rb.Mass))
			}
			errs = multierr.Append(errs, unitRange(label+": restitution", rb.Restitution))
			errs = multierr.Append(errs, unitRange(label+": friction", rb.Friction))
			if rb.Material != "" {
				if _, ok := s.Materials[rb.Material]; !ok {
					errs = multierr.Append(errs, fmt.Errorf("%s: unknown material %q", label, rb.Material))
				}
			}
		}
		if e.Script != nil && e.Script.Handler == "" {
			errs = multierr.Append(errs, fmt.Errorf("%s: script without handler", label))
		}
	}
	return errs
}

func unitRange(what string, v *float32) error {
	if v == nil || (*v >= 0 && *v <= 1) {
		return nil
	}
	return fmt.Errorf("%s %v outside [0,1]", what, *v)
}
