// Package glcanvas draws panorama frames with OpenGL 4.1 core.
package glcanvas

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-pano/internal/engine/renderer"
	"github.com/Faultbox/midgard-pano/internal/engine/shader"
	"github.com/Faultbox/midgard-pano/internal/logger"
	"github.com/Faultbox/midgard-pano/pkg/math"
)

// Surface is a window with a GL context. Logical and drawable sizes differ
// on HiDPI displays.
type Surface interface {
	renderer.Viewport
	DrawableSize() (w, h int)
}

var _ renderer.Canvas = (*Canvas)(nil)

// floats per vertex: x, y, u, v
const quadStride = 4

// Canvas draws textured quads. It implements renderer.Canvas.
// IMPORTANT: must be created and used on the thread owning the GL context.
type Canvas struct {
	surface Surface
	program *shader.Program

	vao, vbo uint32
	texture  uint32
	texW     int
	texH     int
	maxTex   int32

	uProjection int32
	uTexture    int32
	vertices    [6 * quadStride]float32
}

// New initializes OpenGL and creates the blit pipeline.
func New(surface Surface) (*Canvas, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	c := &Canvas{surface: surface}
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &c.maxTex)

	prog, err := shader.Compile(shader.BlitVertexShader, shader.BlitFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	c.program = prog
	c.uProjection = prog.Uniform("uProjection")
	c.uTexture = prog.Uniform("uTexture")

	gl.Disable(gl.DEPTH_TEST)
	gl.ClearColor(0, 0, 0, 1)

	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)

	gl.GenBuffers(1, &c.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(c.vertices)*4, nil, gl.DYNAMIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, quadStride*4, nil)
	gl.EnableVertexAttribArray(0)

	// UV attribute (location = 1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, quadStride*4, unsafe.Pointer(uintptr(2*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("blit pipeline created",
		zap.Uint32("program", prog.ID),
		zap.Uint32("vao", c.vao),
		zap.Int32("max_texture", c.maxTex),
	)
	return c, nil
}

// Close releases GL resources.
func (c *Canvas) Close() {
	logger.Info("closing renderer")
	if c.texture != 0 {
		gl.DeleteTextures(1, &c.texture)
	}
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
	}
	if c.vbo != 0 {
		gl.DeleteBuffers(1, &c.vbo)
	}
	if c.program != nil {
		c.program.Delete()
	}
}

// Clear resets the GL viewport to the drawable size and clears it.
func (c *Canvas) Clear() {
	dw, dh := c.surface.DrawableSize()
	gl.Viewport(0, 0, int32(dw), int32(dh))
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// SetSource uploads img as the panorama texture.
func (c *Canvas) SetSource(img *image.RGBA) error {
	if img == nil {
		return renderer.ErrNoImage
	}
	b := img.Bounds()
	if c.maxTex > 0 && (int32(b.Dx()) > c.maxTex || int32(b.Dy()) > c.maxTex) {
		return fmt.Errorf("image %dx%d exceeds max texture size %d", b.Dx(), b.Dy(), c.maxTex)
	}

	if c.texture == 0 {
		gl.GenTextures(1, &c.texture)
	}
	gl.BindTexture(gl.TEXTURE_2D, c.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix[img.PixOffset(b.Min.X, b.Min.Y):]))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	c.texW, c.texH = b.Dx(), b.Dy()
	logger.Debug("texture uploaded", zap.Int("width", c.texW), zap.Int("height", c.texH))
	return nil
}

// DrawImage draws the src region of the texture as a quad covering dst.
func (c *Canvas) DrawImage(src, dst math.Rect) {
	if c.texture == 0 || src.Empty() || dst.Empty() {
		return
	}

	vw, vh := c.surface.ViewportSize()
	proj := math.ScreenOrtho(vw, vh)

	fillQuad(&c.vertices, src, dst, float64(c.texW), float64(c.texH))

	c.program.Use()
	gl.UniformMatrix4fv(c.uProjection, 1, false, proj.Ptr())
	gl.Uniform1i(c.uTexture, 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, c.texture)

	gl.BindVertexArray(c.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(c.vertices)*4, gl.Ptr(&c.vertices[0]))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (c *Canvas) ReadPixels() (pix []byte, width, height int) {
	width, height = c.surface.DrawableSize()
	if width <= 0 || height <= 0 {
		return nil, 0, 0
	}
	pix = make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	return pix, width, height
}

// fillQuad writes two triangles for dst with texture coordinates of src.
func fillQuad(v *[6 * quadStride]float32, src, dst math.Rect, texW, texH float64) {
	x0, y0 := float32(dst.X), float32(dst.Y)
	x1, y1 := float32(dst.Right()), float32(dst.Bottom())
	u0, v0 := float32(src.X/texW), float32(src.Y/texH)
	u1, v1 := float32(src.Right()/texW), float32(src.Bottom()/texH)

	*v = [6 * quadStride]float32{
		x0, y0, u0, v0,
		x1, y0, u1, v0,
		x1, y1, u1, v1,

		x0, y0, u0, v0,
		x1, y1, u1, v1,
		x0, y1, u0, v1,
	}
}
