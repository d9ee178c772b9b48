package apps

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/termdesk/event"
	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/layout"
	"github.com/lixenwraith/termdesk/registry"
)

// Monitor renders the host's per-frame diagnostics: diff strategy,
// bytes per frame, changed cells, frame time. Useful when tuning a
// slow link, since the numbers are the actual flush cost.
func Monitor(h registry.Host) registry.AppSpec {
	view := layout.NewCustom(func(p *layout.Painter, bounds geom.Rect) {
		p.Fill(bounds, p.Style.Bg)
		info := h.Render()

		lines := []string{
			fmt.Sprintf("frame     %d", info.Frame),
			fmt.Sprintf("strategy  %s", info.Strategy),
			fmt.Sprintf("windows   %d", info.Windows),
			fmt.Sprintf("target    %d fps", info.FPS),
			"",
			fmt.Sprintf("bytes     %d", info.Stats.BytesWritten),
			fmt.Sprintf("cells     %d", info.Stats.CellsChanged),
			fmt.Sprintf("rows      %d", info.Stats.RowsTouched),
			fmt.Sprintf("time      %s", info.FrameTime.Round(10*time.Microsecond)),
		}
		for i, l := range lines {
			p.Text(bounds.X+1, bounds.Y+i, l, p.Style.Fg, p.Style.Bg)
		}
	})

	return registry.AppSpec{
		Title: "Monitor",
		Size:  geom.Size{W: 28, H: 12},
		Root:  view,
		Run: func(ctx context.Context, win uuid.UUID) {
			ticker := time.NewTicker(500 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					h.Post(event.Op{Kind: event.OpInvalidate, Window: win})
				}
			}
		},
	}
}
