// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"image"

	"golang.org/x/image/draw"
)

// UploadImage uploads img into the texture at offset. Images that are
// not tightly packed RGBA are converted first.
func (c *Context) UploadImage(t Texture, offset image.Point, img image.Image) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()
	rgba, ok := img.(*image.RGBA)
	size := img.Bounds().Size()
	if !ok || rgba.Stride != size.X*4 {
		dst := image.NewRGBA(image.Rectangle{Max: size})
		draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
		rgba = dst
	}
	start := rgba.PixOffset(rgba.Bounds().Min.X, rgba.Bounds().Min.Y)
	pixels := rgba.Pix[start : start+size.X*size.Y*4]
	return c.uploadTexturePixels(t, offset.X, offset.Y, size.X, size.Y, pixels)
}
