package loader_test

import (
	"errors"
	"testing"

	"stocktake/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (f *fakeFeature) Name() string    { return f.name }
func (f *fakeFeature) IsEnabled() bool { return f.enabled }
func (f *fakeFeature) Load(app fiber.Router) error {
	f.loaded = true
	return f.err
}

func TestManager_LoadAll(t *testing.T) {
	on := &fakeFeature{name: "stocktake", enabled: true}
	off := &fakeFeature{name: "integrity", enabled: false}

	mgr := loader.NewManager(zap.NewNop())
	mgr.Register(on)
	mgr.Register(off)

	assert.NoError(t, mgr.LoadAll(fiber.New()))
	assert.True(t, on.loaded)
	assert.False(t, off.loaded)
	assert.Equal(t, []string{"stocktake", "integrity"}, mgr.Names())
}

func TestManager_LoadAllError(t *testing.T) {
	broken := &fakeFeature{name: "broken", enabled: true, err: errors.New("no routes")}
	after := &fakeFeature{name: "after", enabled: true}

	mgr := loader.NewManager(zap.NewNop())
	mgr.Register(broken)
	mgr.Register(after)

	err := mgr.LoadAll(fiber.New())
	assert.ErrorContains(t, err, "failed to load feature broken")
	assert.False(t, after.loaded)
}
