package modules

import (
	"bytes"
	"image/png"
	"testing"
)

func TestGenerateCodeShape(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{name: "single digit", length: 1},
		{name: "default length", length: codeLength},
		{name: "long", length: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := GenerateCode(tt.length)
			if len(code) != tt.length {
				t.Fatalf("expected length %d, got %d (%q)", tt.length, len(code), code)
			}
			for i := 0; i < len(code); i++ {
				if code[i] < '0' || code[i] > '9' {
					t.Fatalf("expected only digits, got %q", code)
				}
			}
		})
	}
}

func TestRenderCaptchaProducesPNG(t *testing.T) {
	data, err := RenderCaptcha("12345")
	if err != nil {
		t.Fatalf("render captcha: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode rendered image: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != captchaWidth || bounds.Dy() != captchaHeight {
		t.Fatalf("expected %dx%d canvas, got %dx%d", captchaWidth, captchaHeight, bounds.Dx(), bounds.Dy())
	}
}
