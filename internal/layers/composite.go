package layers

import (
	"context"
	"image"

	"github.com/gogpu/gg"
)

// Composite draws snaps bottom-up over a background and returns the result.
// It checks ctx between layers so a cancelled export stops early.
func Composite(ctx context.Context, snaps []*gg.Pixmap, width, height int, background gg.RGBA) (*image.RGBA, error) {
	dc := gg.NewContext(width, height)
	defer func() {
		_ = dc.Close()
	}()
	dc.ClearWithColor(background)
	for _, pm := range snaps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dc.DrawImageEx(gg.ImageBufFromImage(pm.ToImage()), gg.DrawImageOptions{
			DstWidth:  float64(width),
			DstHeight: float64(height),
			Opacity:   1,
			BlendMode: gg.BlendNormal,
		})
	}
	return dc.ResizeTarget().ToImage(), nil
}
