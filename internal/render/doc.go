// Package render turns evaluated orbitals into renderer-ready scenes and
// terminal previews.
//
// A [Strategy] is chosen per [Mode] from a [Registry]. Every strategy reads
// the same [Inputs] (grid, density, threshold levels, colors) and builds a
// [Scene] with column-major buffers:
//
//   - [Contour]: the shell of the first enclosed-probability level
//   - [MultiContour]: nested shells, one per level
//   - [Volume]: every cell with its shaped opacity
//
// Appearance is configured through an explicit [Settings] value; nothing in
// this package reads global state.
//
// # Preview
//
// Scenes can be projected onto a Braille [Canvas]:
//
//	cam := render.NewCamera()
//	cam.Fit(scene.Extent)
//	fmt.Print(render.Preview(scene, cam, 80, 40).Styled())
package render
