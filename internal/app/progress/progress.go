package progress

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"docpod/internal/app/model"
)

type Config struct {
	Enabled bool
	Writer  io.Writer
}

type Manager struct {
	container *mpb.Progress
	enabled   bool
	mu        sync.Mutex
}

type Bar struct {
	bar     *mpb.Bar
	enabled bool
}

func NewManager(config Config) *Manager {
	if !config.Enabled {
		return &Manager{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
	)

	return &Manager{
		container: container,
		enabled:   true,
	}
}

func (pm *Manager) CreateBar(total int, description string) *Bar {
	if !pm.enabled || pm.container == nil {
		return &Bar{enabled: false}
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()

	bar := pm.container.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.NewPercentage("%.1f", decor.WCSyncSpace),
			decor.OnComplete(
				decor.EwmaETA(decor.ET_STYLE_GO, 30, decor.WCSyncWidth), " ✓ ",
			),
		),
	)

	return &Bar{
		bar:     bar,
		enabled: true,
	}
}

func (pb *Bar) Increment() {
	if pb.enabled && pb.bar != nil {
		pb.bar.Increment()
	}
}

func (pb *Bar) SetTotal(total int64) {
	if pb.enabled && pb.bar != nil {
		pb.bar.SetTotal(total, false)
	}
}

func (pb *Bar) Complete() {
	if pb.enabled && pb.bar != nil {
		pb.bar.SetTotal(pb.bar.Current(), true)
	}
}

func (pm *Manager) Wait() {
	if pm.enabled && pm.container != nil {
		pm.container.Wait()
	}
}

func (pm *Manager) Shutdown() {
	if pm.enabled && pm.container != nil {
		pm.container.Shutdown()
	}
}

func IsTTY(writer io.Writer) bool {
	if writer == nil {
		return false
	}

	if file, ok := writer.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

func ShouldShow(forced bool) bool {
	if forced {
		return true
	}
	return IsTTY(os.Stderr)
}

// ClipTracker shows synthesized clips against the planned sentence count
type ClipTracker struct {
	manager *Manager
	mu      sync.Mutex
	bar     *Bar
	done    int
}

// NewClipTracker creates a tracker drawing on manager
func NewClipTracker(manager *Manager) *ClipTracker {
	return &ClipTracker{manager: manager}
}

// Planned creates the bar once the sentence count is known
func (t *ClipTracker) Planned(total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bar = t.manager.CreateBar(total, "Synthesizing clips")
	if total == 0 {
		t.bar.Complete()
	}
}

// ClipDone advances the bar
func (t *ClipTracker) ClipDone(clip model.AudioClip) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.done++
	if t.bar != nil {
		t.bar.Increment()
	}
}

// Done returns the number of clips reported so far
func (t *ClipTracker) Done() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

// Finish completes a partially filled bar, e.g. after a failed run
func (t *ClipTracker) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.bar != nil {
		t.bar.Complete()
	}
}
