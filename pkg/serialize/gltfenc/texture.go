package gltfenc

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// fitTexture downscales an encoded texture so neither dimension exceeds max.
// Textures within the cap pass through untouched. Downscaled textures are
// re-encoded as PNG, so the returned MIME type may differ from the input.
func fitTexture(data []byte, mime string, max int) ([]byte, string, error) {
	if max <= 0 {
		return data, mime, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= max && bounds.Dy() <= max {
		return data, mime, nil
	}

	resized := imaging.Fit(img, max, max, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return nil, "", fmt.Errorf("re-encode image: %w", err)
	}
	return buf.Bytes(), "image/png", nil
}
