// Package game wires the ECS core into an Ebitengine Game: it owns the
// Registry and Scheduler, spawns the starting entities, and each frame
// publishes the delta time, runs the scheduler, then draws whatever the
// rendering system collected.
package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"ironvolley/internal/ecs"
	"ironvolley/internal/game/components"
	"ironvolley/internal/game/systems"
)

const (
	screenWidth  = 1280
	screenHeight = 720
)

// Game is the ebiten.Game implementation driving the simulation.
type Game struct {
	registry  *ecs.Registry
	scheduler *ecs.Scheduler

	movement *systems.MovementSystem
	physics  *systems.PhysicsSystem
	audio    *systems.AudioSystem
	render   *systems.RenderingSystem

	player ecs.Entity
}

// NewGame builds a registry with DefaultWorldConfig. See NewGameWithConfig.
func NewGame() *Game {
	return NewGameWithConfig(DefaultWorldConfig())
}

// NewGameWithConfig builds a registry sized per cfg, registers the standard
// systems in dependency order, and spawns the player entity.
func NewGameWithConfig(cfg WorldConfig) *Game {
	var logger *zap.Logger
	if cfg.EnableDebugMode {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	r := ecs.NewRegistry(logger)
	r.Reserve(cfg.EntityPoolSize)
	scheduler := ecs.NewScheduler(logger)

	movement := systems.NewMovementSystem()
	movement.SetBoundary(0, 0, screenWidth, screenHeight)
	physics := systems.NewPhysicsSystem()
	audio := systems.NewAudioSystem()
	render := systems.NewRenderingSystem()
	render.SetViewport(0, 0, screenWidth, screenHeight)

	scheduler.Add("physics", physics.System)
	scheduler.Add("movement", movement.System, "physics")
	scheduler.Add("audio", audio.System, "movement")
	scheduler.Add("rendering", render.System, "movement")

	g := &Game{
		registry:  r,
		scheduler: scheduler,
		movement:  movement,
		physics:   physics,
		audio:     audio,
		render:    render,
	}
	g.player = g.spawnPlayer()
	return g
}

func (g *Game) spawnPlayer() ecs.Entity {
	e := g.registry.Spawn()
	ecs.Emplace(g.registry, e, components.NewTransformComponent())

	physics := components.NewPhysicsComponent()
	physics.MaxSpeed = 300
	ecs.Emplace(g.registry, e, physics)

	sprite := components.NewSpriteComponent()
	sprite.SetTexture("player", components.AABB{Max: components.Vector2{X: 32, Y: 32}})
	ecs.Emplace(g.registry, e, sprite)

	ecs.Emplace(g.registry, e, components.NewHealthComponent(100))
	return e
}

// Update publishes this frame's delta time as a registry singleton and
// runs every registered system in dependency order.
func (g *Game) Update() error {
	const fixedDelta = 1.0 / 60.0
	ecs.SetSingleton(g.registry, systems.DeltaTime(fixedDelta))

	if transform, err := ecs.Get[components.TransformComponent](g.registry, g.player); err == nil {
		g.audio.SetListener(transform.Position)
	}

	return g.scheduler.Run(g.registry)
}

// Draw renders every entity RenderingSystem collected this frame.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 20, G: 20, B: 40, A: 255})
	for _, renderable := range g.render.Visible() {
		w := renderable.Sprite.SourceRect.Max.X - renderable.Sprite.SourceRect.Min.X
		h := renderable.Sprite.SourceRect.Max.Y - renderable.Sprite.SourceRect.Min.Y
		vector := ebiten.NewImage(int(w), int(h))
		vector.Fill(color.RGBA{
			R: renderable.Sprite.Color.R,
			G: renderable.Sprite.Color.G,
			B: renderable.Sprite.Color.B,
			A: renderable.Sprite.Color.A,
		})
		opts := &ebiten.DrawImageOptions{}
		opts.GeoM.Translate(renderable.ScreenPos.X, renderable.ScreenPos.Y)
		screen.DrawImage(vector, opts)
	}
	ebitenutil.DebugPrintAt(screen, "ironvolley", 4, 4)
}

// Layout fixes the logical screen size regardless of window scaling.
func (g *Game) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}

// Run opens the window and blocks until the game exits.
func (g *Game) Run() error {
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("ironvolley")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
