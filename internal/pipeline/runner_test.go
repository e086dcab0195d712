package pipeline

import (
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbital/internal/grid"
	"github.com/san-kum/orbital/internal/quantum"
	"github.com/san-kum/orbital/internal/render"
)

var _ = Describe("Runner", func() {
	var (
		runner *Runner
		job    Job
	)

	BeforeEach(func() {
		runner = New(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
		job = DefaultJob()
		job.Steps = 30
	})

	Context("with an invalid job", func() {
		It("fails before sampling", func() {
			job.State = quantum.State{N: 1, L: 1}
			res, err := runner.Run(job)
			Expect(err).To(MatchError(quantum.ErrInvalidState))
			Expect(res).To(BeNil())
		})
	})

	Context("with m = 0", func() {
		It("gives identical real and complex fields", func() {
			job.State = quantum.State{N: 3, L: 2, M: 0}
			job.Basis = quantum.Real
			realRes, err := runner.Run(job)
			Expect(err).NotTo(HaveOccurred())

			job.Basis = quantum.Complex
			complexRes, err := runner.Run(job)
			Expect(err).NotTo(HaveOccurred())
			Expect(realRes.Field.Values).To(Equal(complexRes.Field.Values))
		})
	})

	Context("in multi-contour mode", func() {
		It("orders levels from dense core to diffuse shell", func() {
			job.Mode = render.MultiContour
			job.Fractions = []float64{0.2, 0.5, 0.8}
			res, err := runner.Run(job)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Scene.Levels).To(HaveLen(3))
			Expect(res.Scene.Levels[0]).To(BeNumerically(">=", res.Scene.Levels[1]))
			Expect(res.Scene.Levels[1]).To(BeNumerically(">=", res.Scene.Levels[2]))
		})
	})

	Context("on a large uniform grid", func() {
		It("integrates the 2p density to one", func() {
			job.State = quantum.State{N: 2, L: 1, M: 1}
			job.Sampling = grid.Uniform
			job.Span = 20
			job.Steps = 101
			res, err := runner.Run(job)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Norm).To(BeNumerically("~", 1, 0.05))
			Expect(res.MeanRadius).To(BeNumerically("~", 5, 0.25))
		})
	})

	Context("on a spherical grid", func() {
		It("builds a contour around the nucleus", func() {
			job.State = quantum.State{N: 1}
			job.Sampling = grid.Spherical
			res, err := runner.Run(job)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Grid.DV.IsUniform()).To(BeFalse())
			Expect(res.Scene.Empty()).To(BeFalse())
		})
	})
})
