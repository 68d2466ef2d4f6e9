package opengl

import (
	"fmt"
	"image"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// uploadRGBA uploads img as a non-repeating, unfiltered-mip 2D texture.
// Call this from the main goroutine (OpenGL context must be current).
func uploadRGBA(img *image.RGBA) (uint32, error) {
	b := img.Bounds()
	if b.Empty() || len(img.Pix) == 0 {
		return 0, fmt.Errorf("empty image")
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(b.Dx()),
		int32(b.Dy()),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		unsafe.Pointer(&img.Pix[0]),
	)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id, nil
}

// deleteTexture frees a texture and zeroes the handle.
func deleteTexture(id *uint32) {
	if *id == 0 {
		return
	}
	gl.DeleteTextures(1, id)
	*id = 0
}
