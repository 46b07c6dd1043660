package montecarlo

import (
	"context"
	"errors"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/agbru/mcarea/internal/geometry"
)

// cancelCheckInterval is how many points are drawn between context checks.
const cancelCheckInterval = 4096

// Estimate draws n uniform points in region and returns the fraction inside
// every circle scaled by the region area.
func Estimate(ctx context.Context, circles []geometry.Circle, region geometry.Region, n int, src rand.Source) (float64, error) {
	if n <= 0 {
		return 0, errors.New("number of points must be positive")
	}
	xs := distuv.Uniform{Min: region.XMin, Max: region.XMax, Src: src}
	ys := distuv.Uniform{Min: region.YMin, Max: region.YMax, Src: src}

	inside := 0
	for i := 0; i < n; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		if geometry.InIntersection(xs.Rand(), ys.Rand(), circles) {
			inside++
		}
	}
	return float64(inside) / float64(n) * region.Area(), nil
}
