package showcase

import (
	"log/slog"

	"scroll-scene/core"
	"scroll-scene/editor"
	"scroll-scene/io"
)

// ColorLabel is the panel label of the shared color control.
const ColorLabel = "color"

// BindColor adds the shared color control to the panel. Every change is
// written to the toon and points materials together.
func BindColor(panel *editor.Panel, w *World, logger *slog.Logger) *editor.ColorControl {
	if logger == nil {
		logger = slog.Default()
	}
	return panel.AddColor(ColorLabel, w.Color).OnChange(func(c core.Color) {
		if err := w.Scene.Materials.SetColor(c, w.ToonMaterial, w.PointsMaterial); err != nil {
			logger.Warn("color not applied", "color", c.Hex(), "error", err)
			return
		}
		w.Color = c
	})
}

// ConfigEdits returns a loader for the config file watcher. It reports the
// file's color as an edit only when it differs from the color last loaded,
// starting from initial, so saving other keys does not undo panel edits.
// The loader keeps state and must be called from one goroutine.
func ConfigEdits(initial core.Color) editor.LoadFunc {
	last := initial
	return func(path string) ([]editor.Edit, error) {
		sf, err := io.LoadScene(path)
		if err != nil {
			return nil, err
		}
		ed, err := editor.ParseEdit(ColorLabel, sf.Scene.Color)
		if err != nil {
			return nil, err
		}
		if ed.Value == last {
			return nil, nil
		}
		last = ed.Value
		return []editor.Edit{ed}, nil
	}
}
