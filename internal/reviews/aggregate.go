package reviews

import (
	"github.com/shopspring/decimal"

	"github.com/shopkartlabs/shopkart-backend/pkg/db/models"
)

// Summary is the derived rating view for a product. Distribution always
// carries all five buckets so the UI can render five bars even for sparse
// data.
type Summary struct {
	AverageRating float64     `json:"average_rating"`
	TotalReviews  int         `json:"total_reviews"`
	Distribution  map[int]int `json:"rating_distribution"`
}

// Aggregate computes the rating summary. It never fails: empty input yields
// a zero average with empty buckets. Rows with a rating outside 1..5 are
// skipped entirely, so the average, total, and buckets always describe the
// same set. Sum and count are commutative so the result is independent of
// input order.
func Aggregate(reviews []models.Review) Summary {
	distribution := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}

	var sum int64
	var counted int
	for _, review := range reviews {
		if review.Rating < 1 || review.Rating > 5 {
			continue
		}
		sum += int64(review.Rating)
		counted++
		distribution[review.Rating]++
	}

	summary := Summary{
		TotalReviews: counted,
		Distribution: distribution,
	}
	if counted == 0 {
		return summary
	}

	average, _ := decimal.NewFromInt(sum).
		Div(decimal.NewFromInt(int64(counted))).
		Round(1).
		Float64()
	summary.AverageRating = average
	return summary
}
