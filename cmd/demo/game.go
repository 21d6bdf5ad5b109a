package main

import (
	"fmt"
	"image/color"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/kestrelgames/overworld/ecs"
	"github.com/kestrelgames/overworld/ecs/component"
	"github.com/kestrelgames/overworld/ecs/system"
	"github.com/kestrelgames/overworld/geom"
	"github.com/kestrelgames/overworld/scene"
	"github.com/kestrelgames/overworld/spatial"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	tickSeconds = 1.0 / 60.0
	moveSpeed   = 180.0
)

// fenceHook pairs a fence entity with its compiled on-cross script.
type fenceHook struct {
	entity   ecs.Entity
	compiled *tengo.Compiled
}

type Game struct {
	log    *zap.Logger
	loader *scene.Loader

	scenePath string
	watcher   *scene.Watcher

	world     *ecs.World
	index     *spatial.Index
	scheduler *ecs.Scheduler
	player    ecs.Entity
	hooks     []fenceHook

	frames    int
	crossings int
	paused    bool
	pauseUI   *ebitenui.UI
}

func NewGame(logger *zap.Logger, scenePath string) (*Game, error) {
	g := &Game{
		log:       logger,
		loader:    scene.NewLoader(logger),
		scenePath: scenePath,
	}
	if err := g.loadScene(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)
	return g, nil
}

// loadScene rebuilds the world, index, and systems from the scene file. It
// runs both at startup and on hot reload.
func (g *Game) loadScene() error {
	sc, err := g.loader.Load(g.scenePath)
	if err != nil {
		return err
	}

	world := ecs.NewWorld()
	index := spatial.NewIndex()
	// Collision before fences so crossings see post-collision positions.
	scheduler := ecs.NewScheduler(
		system.NewCollisionSystem(world, index),
		system.NewFenceSystem(index),
	)

	spawned, err := g.loader.Spawn(sc, world, index)
	if err != nil {
		return err
	}

	var player ecs.Entity
	var hooks []fenceHook
	for _, sp := range spawned {
		if sp.Name == "player" {
			player = sp.Entity
		}
		if sp.OnCross == "" {
			continue
		}
		compiled, err := compileHook(sp.OnCross)
		if err != nil {
			g.log.Warn("on_cross script rejected",
				zap.String("entity", sp.Name), zap.Error(err))
			continue
		}
		hooks = append(hooks, fenceHook{entity: sp.Entity, compiled: compiled})
	}

	g.world = world
	g.index = index
	g.scheduler = scheduler
	g.player = player
	g.hooks = hooks
	g.crossings = 0
	return nil
}

func compileHook(src string) (*tengo.Compiled, error) {
	script := tengo.NewScript([]byte(src))
	script.SetImports(stdlib.GetModuleMap("fmt", "math"))
	_ = script.Add("entity", int64(0))
	_ = script.Add("sign", false)
	return script.Compile()
}

func (g *Game) Update() error {
	g.frames++

	select {
	case path, ok := <-g.watcherEvents():
		if ok && path != "" {
			g.log.Info("scene changed, reloading", zap.String("path", path))
			if err := g.loadScene(); err != nil {
				g.log.Error("scene reload failed", zap.Error(err))
			}
		}
	default:
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.applyInput()
	g.scheduler.Update(g.world, tickSeconds)
	g.fireHooks()
	return nil
}

func (g *Game) watcherEvents() chan string {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Events
}

func (g *Game) applyInput() {
	if !g.player.Valid() {
		return
	}
	vel, ok := ecs.Get(g.world, g.player, component.VelocityComponent)
	if !ok {
		return
	}
	var v geom.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		v.X -= moveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		v.X += moveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		v.Y -= moveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		v.Y += moveSpeed
	}
	vel.Vel = v
}

// fireHooks runs each fence's on-cross script once per crossing reported
// this frame.
func (g *Game) fireHooks() {
	for _, hook := range g.hooks {
		crossed := crossedFor(g.world, hook.entity)
		for id, sign := range crossed {
			g.crossings++
			c := hook.compiled.Clone()
			_ = c.Set("entity", int64(id))
			_ = c.Set("sign", sign)
			if err := c.Run(); err != nil {
				g.log.Warn("on_cross script failed", zap.Error(err))
			}
		}
	}
}

func crossedFor(w *ecs.World, e ecs.Entity) map[uint64]bool {
	if fence, ok := ecs.Get(w, e, component.FenceComponent); ok {
		return fence.Crossed
	}
	if fence, ok := ecs.Get(w, e, component.StepFenceComponent); ok {
		return fence.Crossed
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawHulls(screen)
	g.drawFences(screen)

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f  entities: %d  crossings: %d  (esc pauses, edit the scene file to hot reload)",
		ebiten.ActualFPS(), g.index.Len(), g.crossings))

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawHulls(screen *ebiten.Image) {
	ecs.ForEach2(g.world, component.HullComponent, component.PositionComponent,
		func(e ecs.Entity, hull *component.Hull, pos *component.Position) {
			box := hull.Shape.AABB().Translate(pos.Pos)
			x, y := float32(box.Left()), float32(box.Top())
			w, h := float32(box.Width()), float32(box.Height())

			fill := color.RGBA{R: 90, G: 90, B: 110, A: 120}
			if e == g.player {
				fill = color.RGBA{R: 80, G: 170, B: 90, A: 200}
			} else if ecs.Has(g.world, e, component.BarrierComponent) {
				fill = color.RGBA{R: 140, G: 100, B: 70, A: 160}
			}
			vector.FillRect(screen, x, y, w, h, fill, false)
			vector.StrokeRect(screen, x, y, w, h, 1.0, color.RGBA{R: 230, G: 230, B: 230, A: 200}, false)
		})
}

func (g *Game) drawFences(screen *ebiten.Image) {
	ecs.ForEach2(g.world, component.FenceComponent, component.PositionComponent,
		func(_ ecs.Entity, fence *component.Fence, pos *component.Position) {
			drawFenceLine(screen, fence.Points, pos.Pos, len(fence.Crossed) > 0)
		})
	ecs.ForEach2(g.world, component.StepFenceComponent, component.PositionComponent,
		func(_ ecs.Entity, fence *component.StepFence, pos *component.Position) {
			drawFenceLine(screen, fence.Points, pos.Pos, len(fence.Crossed) > 0)
		})
}

func drawFenceLine(screen *ebiten.Image, pts []geom.Vec2, origin geom.Vec2, hot bool) {
	clr := color.RGBA{R: 90, G: 140, B: 230, A: 255}
	if hot {
		clr = color.RGBA{R: 230, G: 80, B: 80, A: 255}
	}
	for i := 0; i+1 < len(pts); i++ {
		a := pts[i].Add(origin)
		b := pts[i+1].Add(origin)
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 2.0, clr, false)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
