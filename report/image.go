package report

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// rasterDPI is the print resolution diagrams are rasterized at. Page
// layout runs at 72 points per inch, so the pixel grid is oversampled
// by rasterDPI/72 relative to the placed size.
const rasterDPI = 300.0

// maxRasterPixels bounds the raster area so a diagram with runaway
// dimensions fails over to the placeholder instead of exhausting memory.
const maxRasterPixels = 40 << 20

// rasterizeSVG renders SVG bytes to PNG at print resolution. It returns
// the encoded image together with the drawing's natural size in points.
// The rasterizer panics on some malformed inputs; those surface as
// errors so the caller can substitute a placeholder.
func rasterizeSVG(svg []byte) (data []byte, wPt, hPt float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, wPt, hPt = nil, 0, 0
			err = fmt.Errorf("rasterize svg: %v", r)
		}
	}()

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("parse svg: %w", err)
	}
	wPt, hPt = icon.ViewBox.W, icon.ViewBox.H
	if wPt <= 0 || hPt <= 0 {
		return nil, 0, 0, errors.New("svg has no drawable area")
	}

	scale := rasterDPI / 72.0
	pw := int(math.Ceil(wPt * scale))
	ph := int(math.Ceil(hPt * scale))
	if pw <= 0 || ph <= 0 || pw*ph > maxRasterPixels {
		return nil, 0, 0, fmt.Errorf("svg raster %dx%d exceeds the size limit", pw, ph)
	}

	icon.SetTarget(0, 0, float64(pw), float64(ph))
	rgba := image.NewRGBA(image.Rect(0, 0, pw, ph))
	draw.Draw(rgba, rgba.Bounds(), image.White, image.Point{}, draw.Src)
	icon.Draw(rasterx.NewDasher(pw, ph, rasterx.NewScannerGV(pw, ph, rgba, rgba.Bounds())), 1)

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, 0, 0, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), wPt, hPt, nil
}

// fitToBox scales natural dimensions to fit within the box, preserving
// aspect ratio and never scaling up.
func fitToBox(w, h, boxW, boxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	scale := 1.0
	if w > boxW {
		scale = boxW / w
	}
	if h*scale > boxH {
		scale = boxH / h
	}
	return w * scale, h * scale
}
