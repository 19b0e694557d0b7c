package media

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/disintegration/imaging"
)

const (
	// A logo wider than 3:1 gets the wide treatment: more of the image
	// width, larger minimum size.
	wideAspectRatio = 3.0
	wideWidthFrac   = 0.63
	wideMinWidth    = 100
	stdWidthFrac    = 0.21
	stdMinWidth     = 50

	watermarkOpacity  = 0.6
	stripAlpha        = 76 // ~30% of 255, contrast strip behind the logo
	stripHeightFactor = 1.5
	bottomMarginFrac  = 0.15
	bottomMarginCap   = 200
)

// applyWatermark composites the studio watermark onto img: the logo is
// scaled relative to the image width, faded to 60% opacity, centered on a
// semi-transparent white strip, and the strip is anchored near the bottom
// edge. A missing watermark asset skips the step silently.
func (p *Pipeline) applyWatermark(img image.Image) (image.Image, error) {
	if p.watermarkPath == "" {
		return img, nil
	}

	wm, err := imaging.Open(p.watermarkPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return img, nil
		}
		return nil, fmt.Errorf("open watermark: %w", err)
	}

	wmBounds := wm.Bounds()
	if wmBounds.Dx() == 0 || wmBounds.Dy() == 0 {
		return nil, fmt.Errorf("watermark has zero dimension")
	}

	imgW := img.Bounds().Dx()
	imgH := img.Bounds().Dy()

	var wmWidth int
	if float64(wmBounds.Dx())/float64(wmBounds.Dy()) > wideAspectRatio {
		wmWidth = int(float64(imgW) * wideWidthFrac)
		if wmWidth < wideMinWidth {
			wmWidth = wideMinWidth
		}
	} else {
		wmWidth = int(float64(imgW) * stdWidthFrac)
		if wmWidth < stdMinWidth {
			wmWidth = stdMinWidth
		}
	}

	faded := fadeAlpha(imaging.Resize(wm, wmWidth, 0, imaging.Lanczos), watermarkOpacity)
	wmH := faded.Bounds().Dy()

	stripH := int(float64(wmH) * stripHeightFactor)
	if stripH < 1 {
		stripH = 1
	}
	strip := imaging.New(imgW, stripH, color.NRGBA{R: 255, G: 255, B: 255, A: stripAlpha})
	strip = imaging.Overlay(strip, faded,
		image.Pt((imgW-faded.Bounds().Dx())/2, (stripH-wmH)/2), 1.0)

	margin := int(float64(imgH) * bottomMarginFrac)
	if margin > bottomMarginCap {
		margin = bottomMarginCap
	}

	return imaging.Overlay(img, strip, image.Pt(0, imgH-stripH-margin), 1.0), nil
}

// fadeAlpha multiplies every pixel's alpha channel by opacity.
func fadeAlpha(img *image.NRGBA, opacity float64) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = uint8(float64(out.Pix[i]) * opacity)
	}
	return out
}
