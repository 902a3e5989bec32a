package portraits

import (
	"image"
	"image/color"
)

// smoothSpeckles finds pixels that stand out against an otherwise uniform
// neighbourhood and replaces them with the 3x3 average. Everything else is
// left untouched.
func smoothSpeckles(img *image.RGBA) {
	b := img.Bounds()
	src := image.NewRGBA(b)
	copy(src.Pix, img.Pix)

	var fix []image.Point
	for y := b.Min.Y + 1; y < b.Max.Y-1; y++ {
		for x := b.Min.X + 1; x < b.Max.X-1; x++ {
			var ring [8]color.RGBA
			var sr, sg, sb, sa, n int
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					c := src.RGBAAt(x+dx, y+dy)
					ring[n] = c
					n++
					sr += int(c.R)
					sg += int(c.G)
					sb += int(c.B)
					sa += int(c.A)
				}
			}
			avg := color.RGBA{uint8(sr / 8), uint8(sg / 8), uint8(sb / 8), uint8(sa / 8)}
			flat := true
			for _, c := range ring {
				if colorDist(c, avg) > 64 {
					flat = false
					break
				}
			}
			if flat && colorDist(src.RGBAAt(x, y), avg) > 144 {
				fix = append(fix, image.Point{X: x, Y: y})
			}
		}
	}

	for _, p := range fix {
		var r, g, bl, a int
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				c := src.RGBAAt(p.X+dx, p.Y+dy)
				r += int(c.R)
				g += int(c.G)
				bl += int(c.B)
				a += int(c.A)
			}
		}
		img.SetRGBA(p.X, p.Y, color.RGBA{uint8(r / 9), uint8(g / 9), uint8(bl / 9), uint8(a / 9)})
	}
}

// colorDist is the squared RGB distance between two colors.
func colorDist(a, b color.RGBA) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}
