package epicycle_test

import (
	"errors"
	"math/cmplx"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/epicycles/internal/contour"
	"github.com/san-kum/epicycles/internal/epicycle"
	"github.com/san-kum/epicycles/internal/fourier"
)

func mustSeries(coefficients ...complex128) *fourier.Series {
	s, err := fourier.NewSeries(coefficients)
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("Interleave", func() {
	It("orders terms as 0, 1, -1, ..., N, -N", func() {
		Expect(epicycle.Interleave(3)).To(Equal([]int{0, 1, -1, 2, -2, 3, -3}))
	})

	It("keeps every order exactly once", func() {
		orders := epicycle.Interleave(10)
		Expect(orders).To(HaveLen(21))
		seen := map[int]bool{}
		for _, n := range orders {
			Expect(seen[n]).To(BeFalse())
			seen[n] = true
		}
		Expect(seen).To(HaveKey(10))
		Expect(seen).To(HaveKey(-10))
	})
})

var _ = Describe("Composer", func() {
	var series *fourier.Series

	BeforeEach(func() {
		pts, err := contour.Heart(256)
		Expect(err).NotTo(HaveOccurred())
		curve, err := fourier.NewCurve(pts)
		Expect(err).NotTo(HaveOccurred())
		series, err = fourier.Analyze(curve, 6)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects a nil series", func() {
		_, err := epicycle.NewComposer(nil)
		Expect(errors.Is(err, fourier.ErrInvalidArgument)).To(BeTrue())
	})

	It("chains vectors tip to tail from the origin", func() {
		c, err := epicycle.NewComposer(series)
		Expect(err).NotTo(HaveOccurred())

		f := c.Frame(0.7)
		Expect(f.Vectors).To(HaveLen(13))
		Expect(f.Vectors[0].Center).To(Equal(complex128(0)))
		for k := 1; k < len(f.Vectors); k++ {
			Expect(f.Vectors[k].Center).To(Equal(f.Vectors[k-1].Tip))
		}
		Expect(f.Tip).To(Equal(f.Vectors[len(f.Vectors)-1].Tip))
	})

	It("uses |c_n| as the circle radius", func() {
		c, _ := epicycle.NewComposer(series)
		for _, v := range c.Frame(2.1).Vectors {
			Expect(v.Radius).To(BeNumerically("~", cmplx.Abs(series.Coefficient(v.Order)), 1e-15))
			Expect(cmplx.Abs(v.Value)).To(BeNumerically("~", v.Radius, 1e-12))
		}
	})

	It("sums to the natural-order series at any time", func() {
		c, _ := epicycle.NewComposer(series)
		for _, t := range []float64{0, 0.3, 1.7, 3.14, 5.9, fourier.Tau} {
			Expect(cmplx.Abs(c.Frame(t).Tip - series.Eval(t))).To(BeNumerically("<", 1e-12))
			Expect(cmplx.Abs(c.Tip(t) - series.Eval(t))).To(BeNumerically("<", 1e-12))
		}
	})

	It("returns circle outlines around each center", func() {
		c, _ := epicycle.NewComposer(series)
		v := c.Frame(1).Vectors[1]
		circle := v.Circle(50)
		Expect(circle).To(HaveLen(50))
		for _, z := range circle {
			Expect(cmplx.Abs(z - v.Center)).To(BeNumerically("~", v.Radius, 1e-12))
		}
		Expect(v.Circle(1)).To(BeNil())
	})
})

var _ = Describe("TracedPath", func() {
	It("starts uninitialized and accumulates from the first frame", func() {
		p := epicycle.NewTracedPath()
		Expect(p.State()).To(Equal(epicycle.Uninitialized))
		_, ok := p.Last()
		Expect(ok).To(BeFalse())

		Expect(p.Append(0, 1)).To(Succeed())
		Expect(p.State()).To(Equal(epicycle.Accumulating))
		Expect(p.Append(0.5, 2)).To(Succeed())
		Expect(p.Append(0.5, 3)).To(Succeed())

		last, ok := p.Last()
		Expect(ok).To(BeTrue())
		Expect(last).To(Equal(complex128(3)))
		Expect(p.Points()).To(Equal([]complex128{1, 2, 3}))
		Expect(p.Times()).To(Equal([]float64{0, 0.5, 0.5}))
	})

	It("rejects frames that go back in time", func() {
		p := epicycle.NewTracedPath()
		Expect(p.Append(1, 1)).To(Succeed())
		err := p.Append(0.5, 2)
		Expect(errors.Is(err, epicycle.ErrOutOfOrder)).To(BeTrue())
		Expect(p.Len()).To(Equal(1))
	})

	It("is extended by Composer.Step", func() {
		c, _ := epicycle.NewComposer(mustSeries(0, 0, 1))
		p := epicycle.NewTracedPath()

		f, err := c.Step(p, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Tip).To(Equal(complex128(1)))

		_, err = c.Step(p, -1)
		Expect(errors.Is(err, epicycle.ErrOutOfOrder)).To(BeTrue())
		Expect(p.Len()).To(Equal(1))
	})
})

var _ = Describe("Animation", func() {
	It("produces one frame per time step and retains the path", func() {
		series := mustSeries(0, 0.2i, 1)
		a, err := epicycle.NewAnimation(series, 40)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.State()).To(Equal(epicycle.Uninitialized))

		var tips []complex128
		a.Run(func(i int, f epicycle.Frame) bool {
			Expect(i).To(Equal(len(tips)))
			tips = append(tips, f.Tip)
			Expect(a.Path()).To(HaveLen(i + 1))
			return true
		})

		Expect(tips).To(HaveLen(40))
		Expect(a.Path()).To(Equal(tips))
		Expect(a.Remaining()).To(Equal(0))
		Expect(a.State()).To(Equal(epicycle.Accumulating))

		_, ok := a.Next()
		Expect(ok).To(BeFalse())
	})

	It("matches the discrete reconstruction frame by frame", func() {
		series := mustSeries(0.1, -0.3i, 0.5, 1, 0.25+0.1i)
		samples, err := fourier.Reconstruct(series, 25)
		Expect(err).NotTo(HaveOccurred())

		a, err := epicycle.NewAnimation(series, 25)
		Expect(err).NotTo(HaveOccurred())
		a.Run(func(int, epicycle.Frame) bool { return true })

		for j, z := range a.Path() {
			Expect(cmplx.Abs(z - samples.Points[j])).To(BeNumerically("<", 1e-12))
		}
	})

	It("stops early when the callback says so", func() {
		a, _ := epicycle.NewAnimation(mustSeries(0, 0, 1), 10)
		a.Run(func(i int, _ epicycle.Frame) bool { return i < 3 })
		Expect(a.Path()).To(HaveLen(4))
		Expect(a.Remaining()).To(Equal(6))
	})

	It("requires more than two frames", func() {
		_, err := epicycle.NewAnimation(mustSeries(0, 0, 1), 2)
		Expect(errors.Is(err, fourier.ErrInvalidArgument)).To(BeTrue())
	})
})
