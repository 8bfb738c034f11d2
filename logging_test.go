package studyroom

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func lastLine(b *bytes.Buffer) string {
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	return lines[len(lines)-1]
}

func TestDefaultLoggerLevels(t *testing.T) {
	var out, errs bytes.Buffer
	l := NewDefaultLogger("room", false)
	l.SetOutput(&out, &errs)

	l.Debugf("hidden %d", 1)
	l.Infof("frame %d", 2)
	l.Warnf("slow")
	assert.NotContains(t, out.String(), "hidden")
	assert.True(t, strings.HasSuffix(lastLine(&out), "[room] INFO: frame 2"))
	assert.True(t, strings.HasSuffix(lastLine(&errs), "[room] WARN: slow"))

	l.SetDebug(true)
	l.Debugf("shown")
	assert.Contains(t, out.String(), "[room] DEBUG: shown")
}

func TestNamedLoggerNestsAndSharesDebug(t *testing.T) {
	var out bytes.Buffer
	root := NewDefaultLogger("studyroom", false)
	root.SetOutput(&out, nil)

	scene := Named(Named(root, "app"), "scene")
	scene.Infof("built %d parts", 3)
	assert.Contains(t, out.String(), "[studyroom] INFO: app/scene: built 3 parts")

	scene.SetDebug(true)
	assert.True(t, root.DebugEnabled())
	scene.Debugf("50%% done")
	assert.Contains(t, out.String(), "app/scene: 50% done")

	assert.Same(t, root, Named(root, "").(*DefaultLogger))
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	assert.False(t, OrNop(nil).DebugEnabled())
	assert.NotPanics(t, func() { Named(nil, "x").Errorf("ignored") })
}
