package render

import (
	"errors"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/svo/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// View configures the camera used to render previews.
type View struct {
	// LookAt is the point the camera is aimed at.
	LookAt r3.Vec
	// Up is the camera's up direction.
	Up r3.Vec
	// Eye is the camera position.
	Eye r3.Vec
	// Near and Far clip planes.
	Near, Far float64
	// Width and Height of the output image in pixels.
	Width, Height int
}

// DefaultView is an isometric view of the model fitted to a bi-unit cube.
var DefaultView = View{
	Up:     r3.Vec{Z: 1},
	Eye:    d3.Elem(2.4),
	Near:   1,
	Far:    10,
	Width:  800,
	Height: 600,
}

// RenderImage draws model with a Phong shader as seen from view. The model
// is scaled to fit a bi-unit cube centered at the origin.
func RenderImage(model []r3.Triangle, view View) (image.Image, error) {
	if len(model) == 0 {
		return nil, errors.New("empty triangle slice")
	}
	if view.Width <= 0 || view.Height <= 0 {
		return nil, errors.New("image dimensions must be positive")
	}
	const (
		scale = 2  // supersampling
		fovy  = 30 // vertical field of view in degrees
	)
	var (
		eye    = fauxgl.V(view.Eye.X, view.Eye.Y, view.Eye.Z)          // camera position
		center = fauxgl.V(view.LookAt.X, view.LookAt.Y, view.LookAt.Z) // view center position
		up     = fauxgl.V(view.Up.X, view.Up.Y, view.Up.Z)             // up vector
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()                  // light direction
		color  = fauxgl.HexColor("#468966")                            // object color
	)
	tris := make([]*fauxgl.Triangle, len(model))
	for i, t := range model {
		tris[i] = fauxgl.NewTriangleForPoints(
			fauxgl.V(t[0].X, t[0].Y, t[0].Z),
			fauxgl.V(t[1].X, t[1].Y, t[1].Z),
			fauxgl.V(t[2].X, t[2].Y, t[2].Z),
		)
	}
	mesh := fauxgl.NewTriangleMesh(tris)
	mesh.BiUnitCube()
	context := fauxgl.NewContext(view.Width*scale, view.Height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(view.Width) / float64(view.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	img := context.Image()
	return resize.Resize(uint(view.Width), uint(view.Height), img, resize.Bilinear), nil
}

// WritePNG renders model and saves it as a PNG image at path.
func WritePNG(path string, model []r3.Triangle, view View) error {
	img, err := RenderImage(model, view)
	if err != nil {
		return err
	}
	return fauxgl.SavePNG(path, img)
}
