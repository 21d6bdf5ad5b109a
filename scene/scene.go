// Package scene loads YAML scene files and spawns their entities into a
// world and spatial index. It is the stand-in for the engine's map loader:
// scenes arrive already decomposed into entities, and the spatial core never
// sees the file format.
package scene

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/kestrelgames/overworld/ecs"
	"github.com/kestrelgames/overworld/ecs/component"
	"github.com/kestrelgames/overworld/geom"
	"github.com/kestrelgames/overworld/spatial"
)

// Vec is a point in scene YAML.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// BoxSpec is a rectangular hull in entity-local space. X and Y offset the
// top-left corner from the entity's position.
type BoxSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// FenceSpec authors a fence polyline on an entity. Step promotes it to a
// step fence. OnCross optionally carries a script source the host may run
// when a crossing is reported; the loader stores it verbatim.
type FenceSpec struct {
	Points  [][2]float64 `yaml:"points"`
	Step    bool         `yaml:"step"`
	OnCross string       `yaml:"on_cross"`
}

// EntitySpec is one authored entity.
type EntitySpec struct {
	Name     string       `yaml:"name"`
	Position Vec          `yaml:"position"`
	Velocity *Vec         `yaml:"velocity"`
	Box      *BoxSpec     `yaml:"box"`
	Polygon  [][2]float64 `yaml:"polygon"`
	Barrier  bool         `yaml:"barrier"`
	Z        *int         `yaml:"z"`
	Excluded bool         `yaml:"excluded"`
	Fence    *FenceSpec   `yaml:"fence"`
}

// Scene is a parsed scene file.
type Scene struct {
	Name     string       `yaml:"name"`
	Entities []EntitySpec `yaml:"entities"`
}

// Spawned pairs an authored entity with its live handle.
type Spawned struct {
	Name    string
	Entity  ecs.Entity
	OnCross string
}

// Loader reads scene files and spawns them.
type Loader struct {
	log *zap.Logger
}

func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{log: log}
}

// Load parses the scene file at path.
func (l *Loader) Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	var sc Scene
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}
	l.log.Info("scene loaded",
		zap.String("path", path),
		zap.String("name", sc.Name),
		zap.Int("entities", len(sc.Entities)))
	return &sc, nil
}

// Spawn creates every authored entity in the world and seeds the spatial
// index with each hull's translated bounds, so the first tick queries a
// populated index.
func (l *Loader) Spawn(sc *Scene, w *ecs.World, index *spatial.Index) ([]Spawned, error) {
	if sc == nil || w == nil {
		return nil, fmt.Errorf("scene: nil scene or world")
	}
	out := make([]Spawned, 0, len(sc.Entities))
	for i := range sc.Entities {
		spec := &sc.Entities[i]
		e, err := l.spawnEntity(spec, w, index)
		if err != nil {
			return nil, fmt.Errorf("scene: entity %q: %w", spec.Name, err)
		}
		onCross := ""
		if spec.Fence != nil {
			onCross = spec.Fence.OnCross
		}
		out = append(out, Spawned{Name: spec.Name, Entity: e, OnCross: onCross})
	}
	return out, nil
}

func (l *Loader) spawnEntity(spec *EntitySpec, w *ecs.World, index *spatial.Index) (ecs.Entity, error) {
	e := w.CreateEntity()
	pos := geom.V(spec.Position.X, spec.Position.Y)
	if err := ecs.Add(w, e, component.PositionComponent, component.Position{Pos: pos}); err != nil {
		return 0, err
	}

	if spec.Velocity != nil {
		vel := component.Velocity{Vel: geom.V(spec.Velocity.X, spec.Velocity.Y)}
		if err := ecs.Add(w, e, component.VelocityComponent, vel); err != nil {
			return 0, err
		}
	}

	if hull, ok := hullFromSpec(spec); ok {
		if err := ecs.Add(w, e, component.HullComponent, component.Hull{Shape: hull}); err != nil {
			return 0, err
		}
		if index != nil {
			index.Insert(uint64(e), hull.AABB().Translate(pos))
		}
	}

	if spec.Barrier {
		if err := ecs.Add(w, e, component.BarrierComponent, component.Barrier{}); err != nil {
			return 0, err
		}
	}

	z := 0
	if spec.Z != nil {
		z = *spec.Z
	}
	if err := ecs.Add(w, e, component.ZLevelComponent, component.ZLevel{Level: z}); err != nil {
		return 0, err
	}

	if spec.Excluded {
		if err := ecs.Add(w, e, component.ExcludedComponent, component.Excluded{}); err != nil {
			return 0, err
		}
	}

	if spec.Fence != nil {
		points := make([]geom.Vec2, len(spec.Fence.Points))
		for i, p := range spec.Fence.Points {
			points[i] = geom.V(p[0], p[1])
		}
		if spec.Fence.Step {
			err := ecs.Add(w, e, component.StepFenceComponent, component.StepFence{Fence: component.Fence{Points: points}})
			if err != nil {
				return 0, err
			}
		} else {
			err := ecs.Add(w, e, component.FenceComponent, component.Fence{Points: points})
			if err != nil {
				return 0, err
			}
		}
	}

	return e, nil
}

func hullFromSpec(spec *EntitySpec) (geom.Shape, bool) {
	if spec.Box != nil {
		lower := geom.V(spec.Box.X, spec.Box.Y)
		upper := lower.Add(geom.V(spec.Box.W, spec.Box.H))
		return geom.NewBox(lower, upper), true
	}
	if len(spec.Polygon) > 0 {
		verts := make([]geom.Vec2, len(spec.Polygon))
		for i, p := range spec.Polygon {
			verts[i] = geom.V(p[0], p[1])
		}
		return geom.NewPolygon(verts), true
	}
	return geom.Shape{}, false
}
