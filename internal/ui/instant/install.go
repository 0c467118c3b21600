package instant

import (
	"context"

	"github.com/bnema/instapreview/internal/application/port"
	"github.com/bnema/instapreview/internal/infrastructure/teardown"
	"github.com/bnema/instapreview/internal/infrastructure/windows"
	"github.com/bnema/instapreview/internal/logging"
)

// Installation is the preview feature enabled across all browser windows.
type Installation struct {
	ctx         context.Context
	registry    *teardown.Registry
	controllers map[string]*Controller
}

// Install attaches a controller to every existing and future browser window.
// deps.Teardown is replaced by the installation's own registry. With
// previews disabled nothing is attached and Uninstall is a no-op.
func Install(ctx context.Context, source port.WindowSource, deps Deps) *Installation {
	registry := teardown.NewRegistry(ctx)
	deps.Teardown = registry

	inst := &Installation{
		ctx:         ctx,
		registry:    registry,
		controllers: make(map[string]*Controller),
	}
	if !deps.Config.Enabled {
		logging.FromContext(ctx).Info().Msg("instant preview disabled")
		return inst
	}

	windows.NewWatcher(ctx, source, registry).ForEachBrowserWindow(func(w port.BrowserWindow) {
		id := w.ID()
		inst.controllers[id] = Attach(ctx, w, deps)
		registry.OnTeardown(w, func() { delete(inst.controllers, id) })
	})

	logging.FromContext(ctx).Info().Int("windows", len(inst.controllers)).Msg("instant preview installed")
	return inst
}

// Controller returns the controller bound to windowID.
func (i *Installation) Controller(windowID string) (*Controller, bool) {
	c, ok := i.controllers[windowID]
	return c, ok
}

// Windows returns the number of windows with previews attached.
func (i *Installation) Windows() int {
	return len(i.controllers)
}

// Uninstall releases every listener, timer and surface in every window.
func (i *Installation) Uninstall() {
	i.registry.RunAll()
	logging.FromContext(i.ctx).Info().Msg("instant preview uninstalled")
}
