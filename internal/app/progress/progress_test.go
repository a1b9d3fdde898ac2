package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"docpod/internal/app/model"
)

func TestManager_Disabled(t *testing.T) {
	pm := NewManager(Config{Enabled: false})
	bar := pm.CreateBar(10, "noop")

	assert.False(t, bar.enabled)
	bar.Increment()
	bar.SetTotal(20)
	bar.Complete()
	pm.Wait()
	pm.Shutdown()
}

func TestClipTracker(t *testing.T) {
	var out bytes.Buffer
	pm := NewManager(Config{Enabled: true, Writer: &out})
	tracker := NewClipTracker(pm)

	tracker.Planned(3)
	for i := 0; i < 3; i++ {
		tracker.ClipDone(model.AudioClip{Index: i, Speaker: model.SpeakerHost})
	}
	tracker.Finish()
	pm.Wait()

	assert.Equal(t, 3, tracker.Done())
}

func TestClipTracker_EmptyScript(t *testing.T) {
	pm := NewManager(Config{Enabled: true, Writer: &bytes.Buffer{}})
	tracker := NewClipTracker(pm)

	tracker.Planned(0)
	pm.Wait()
	assert.Equal(t, 0, tracker.Done())
}

func TestIsTTY(t *testing.T) {
	assert.False(t, IsTTY(nil))
	assert.False(t, IsTTY(&bytes.Buffer{}))
	assert.True(t, ShouldShow(true))
}
