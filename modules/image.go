package modules

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	codeLength      = 5
	captchaWidth    = 200
	captchaHeight   = 60
	captchaFontSize = 32
)

var ErrRenderFailed = errors.New("captcha render failed")

var (
	captchaFontOnce sync.Once
	captchaFont     font.Face
	captchaFontErr  error
)

// GenerateCode returns a random digit string of the given length.
func GenerateCode(length int) string {
	digits := make([]byte, length)
	for i := range digits {
		digits[i] = byte('0' + rand.IntN(10))
	}
	return string(digits)
}

func loadCaptchaFont() (font.Face, error) {
	captchaFontOnce.Do(func() {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			captchaFontErr = err
			return
		}
		captchaFont = truetype.NewFace(f, &truetype.Options{Size: captchaFontSize})
	})
	return captchaFont, captchaFontErr
}

// RenderCaptcha draws the code centered on a white canvas with a random
// dark-ish text color and returns the PNG bytes.
func RenderCaptcha(code string) ([]byte, error) {
	face, err := loadCaptchaFont()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	dc := gg.NewContext(captchaWidth, captchaHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetFontFace(face)
	// channel bounds keep the text readable against the white background
	dc.SetRGB255(rand.IntN(150), rand.IntN(100), rand.IntN(150))
	dc.DrawStringAnchored(code, captchaWidth/2, captchaHeight/2, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return buf.Bytes(), nil
}
