package sim

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/oceanebm/internal/dynamo"
	"github.com/san-kum/oceanebm/internal/physics"
)

var _ = Describe("Simulator", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("a one-year run at full resolution", func() {
		var result *Result

		BeforeEach(func() {
			var err error
			result, err = Run(ctx, []float64{0}, 0.5, 1e-5, 0.6, 0.02, 193)
			Expect(err).NotTo(HaveOccurred())
		})

		It("records every tick on every cell", func() {
			ticks, cells := result.Shape()
			Expect(ticks).To(Equal(5))
			Expect(cells).To(Equal(800))
			Expect(result.T).To(HaveLen(5))
			Expect(result.Td).To(HaveLen(5))
			Expect(result.Fb).To(HaveLen(5))
			for i := range result.T {
				Expect(result.T[i]).To(HaveLen(800))
				Expect(result.Td[i]).To(HaveLen(800))
				Expect(result.Fb[i]).To(HaveLen(800))
			}
		})

		It("advances time by a fifth of a year per tick", func() {
			for i, t := range result.Times {
				Expect(t).To(BeNumerically("~", 0.2*float64(i+1), 1e-12))
			}
			Expect(result.Years()).To(Equal(1))
		})

		It("returns only finite fields", func() {
			for i := range result.T {
				Expect(dynamo.Field(result.T[i]).IsValid()).To(BeTrue())
				Expect(dynamo.Field(result.Td[i]).IsValid()).To(BeTrue())
				Expect(dynamo.Field(result.Fb[i]).IsValid()).To(BeTrue())
			}
		})

		It("returns the grid coordinates", func() {
			Expect(result.X).To(HaveLen(800))
			Expect(result.X[0]).To(BeNumerically("~", 0.5/800, 1e-15))
			Expect(result.X[799]).To(BeNumerically("~", 1-0.5/800, 1e-12))
		})
	})

	Describe("malformed forcing", func() {
		It("rejects an empty series", func() {
			result, err := Run(ctx, []float64{}, 0.5, 1e-5, 0.6, 0.02, 193)
			Expect(err).To(MatchError(dynamo.ErrEmptyForcing))
			Expect(result).To(BeNil())
		})

		It("rejects a nil series", func() {
			_, err := Run(ctx, nil, 0.5, 1e-5, 0.6, 0.02, 193)
			Expect(err).To(MatchError(dynamo.ErrEmptyForcing))
		})

		It("rejects non-finite values", func() {
			_, err := Run(ctx, []float64{0, math.NaN()}, 0.5, 1e-5, 0.6, 0.02, 193)
			Expect(err).To(MatchError(dynamo.ErrInvalidForcing))
		})
	})

	Describe("determinism", func() {
		It("produces bit-identical output for identical input", func() {
			cfg := DefaultConfig()
			cfg.Resolution = 120
			forcing := []float64{0, 1, 2, 3}
			coeffs := physics.Coefficients{KvW: 0.7, KvI: 0.05, Ds: 0.6, Dd: 0.02, A: 193}

			s1, err := New(cfg)
			Expect(err).NotTo(HaveOccurred())
			s2, err := New(cfg)
			Expect(err).NotTo(HaveOccurred())

			a, err := s1.Run(ctx, forcing, coeffs)
			Expect(err).NotTo(HaveOccurred())
			b, err := s2.Run(ctx, forcing, coeffs)
			Expect(err).NotTo(HaveOccurred())

			Expect(a.Times).To(Equal(b.Times))
			Expect(a.T).To(Equal(b.T))
			Expect(a.Td).To(Equal(b.Td))
			Expect(a.Fb).To(Equal(b.Fb))
		})
	})

	Describe("unphysical configuration", func() {
		It("fails before stepping on non-positive heat capacity", func() {
			cfg := DefaultConfig()
			cfg.Constants.Cwd = 0
			_, err := New(cfg)
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
		})

		It("fails on negative flux coefficients", func() {
			_, err := Run(ctx, []float64{0}, -1, 1e-5, 0.6, 0.02, 193)
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
		})
	})
})
