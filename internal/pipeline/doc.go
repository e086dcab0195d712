// Package pipeline runs one orbital job end to end: sample a grid,
// evaluate ψ, derive the density, solve enclosed-probability levels,
// encode colors and build the render scene.
//
// Every stage is synchronous. Callers that must stay responsive, such as
// the terminal viewer, run [Runner.Run] on their own goroutine and drop the
// result if it is no longer wanted.
package pipeline
