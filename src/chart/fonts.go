package chart

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/iafilius/CanDashboard/src/logging"
)

// Font selects a text size (logical pixels) and weight.
type Font struct {
	Size float64
	Bold bool
}

var (
	labelFont  = Font{Size: 12}
	titleFont  = Font{Size: 16, Bold: true}
	unitFont   = Font{Size: 14, Bold: true}
	legendFont = Font{Size: 12}
)

var (
	fontsOnce   sync.Once
	regularTTF  *truetype.Font
	boldTTF     *truetype.Font
	facesMu     sync.Mutex
	faceByScale = map[faceKey]font.Face{}
)

type faceKey struct {
	size float64
	bold bool
}

func loadFonts() {
	var err error
	if regularTTF, err = truetype.Parse(goregular.TTF); err != nil {
		logging.Errorf("[chart] parse regular font: %v", err)
	}
	if boldTTF, err = truetype.Parse(gobold.TTF); err != nil {
		logging.Errorf("[chart] parse bold font: %v", err)
		boldTTF = regularTTF
	}
}

// ttfFor returns the parsed TrueType font for f, or nil if none could be loaded.
func ttfFor(f Font) *truetype.Font {
	fontsOnce.Do(loadFonts)
	if f.Bold {
		return boldTTF
	}
	return regularTTF
}

// faceFor returns a cached face rendering f at scale device pixels per logical pixel.
func faceFor(f Font, scale float64) font.Face {
	key := faceKey{size: f.Size * scale, bold: f.Bold}
	facesMu.Lock()
	defer facesMu.Unlock()
	if face, ok := faceByScale[key]; ok {
		return face
	}
	ttf := ttfFor(f)
	var face font.Face
	if ttf == nil {
		face = basicfont.Face7x13
	} else {
		// 72 DPI makes the point size equal to the pixel size.
		face = truetype.NewFace(ttf, &truetype.Options{Size: key.size, DPI: 72, Hinting: font.HintingFull})
	}
	faceByScale[key] = face
	return face
}
