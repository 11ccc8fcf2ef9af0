//go:build !headless

package effects

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenVideoBackend is the Effects Layer's optional real video backend: it
// renders one flat rectangle per visible prim through ebiten/v2. It is a
// thin demonstration that prim state flows through to real pixels, not a
// reproduction of the original engine's primitive-tree/dissolve rendering
// pipeline (explicitly out of scope).
type EbitenVideoBackend struct {
	mu     sync.Mutex
	width  int
	height int
	rects  []Rect
	ready  chan struct{}
	once   sync.Once
}

func NewEbitenVideoBackend() *EbitenVideoBackend {
	return &EbitenVideoBackend{width: 640, height: 480, ready: make(chan struct{}, 1)}
}

func (e *EbitenVideoBackend) Resize(width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.width, e.height = width, height
	ebiten.SetWindowSize(width, height)
}

func (e *EbitenVideoBackend) DrawRect(r Rect) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rects = append(e.rects, r)
}

// Present is a no-op trigger point; ebiten drives redraws itself via Draw,
// called back from the game loop started by Run.
func (e *EbitenVideoBackend) Present() {}

// Run starts the ebiten game loop on the calling goroutine, matching
// ebiten's requirement that RunGame own the OS main thread. Callers that
// need a non-blocking host (cmd/hcbvmrun) should call this from a
// dedicated goroutine via golang.org/x/sync/errgroup.
func (e *EbitenVideoBackend) Run(title string) error {
	ebiten.SetWindowSize(e.width, e.height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizable(true)
	return ebiten.RunGame(e)
}

func (e *EbitenVideoBackend) Layout(outsideWidth, outsideHeight int) (int, int) {
	return e.width, e.height
}

func (e *EbitenVideoBackend) Update() error { return nil }

func (e *EbitenVideoBackend) Draw(screen *ebiten.Image) {
	e.mu.Lock()
	defer e.mu.Unlock()
	screen.Fill(color.Black)
	for _, r := range e.rects {
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H),
			color.RGBA{R: r.R, G: r.G, B: r.B, A: r.A}, false)
	}
}

func (e *EbitenVideoBackend) Close() error { return nil }
