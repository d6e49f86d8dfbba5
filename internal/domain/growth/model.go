// Package growth computes pediatric growth assessments: age in months,
// percentile buckets against a reference model, and BMI. The package is
// pure; callers supply the measurement history.
package growth

// Metric identifies which growth curve a value is compared against.
type Metric string

const (
	MetricHeight Metric = "height"
	MetricWeight Metric = "weight"
	MetricBMI    Metric = "bmi"
)

// Measurement is a single growth reading. Date uses YYYY-MM-DD.
type Measurement struct {
	Date   string  `db:"date" json:"date"`
	Weight float64 `db:"weight" json:"weight"`
	Height float64 `db:"height" json:"height"`
}

// ReferenceModel supplies the expected median value for a child of the
// given age and sex. Implementations can be swapped for real WHO/CDC
// tables without touching the assessment logic.
type ReferenceModel interface {
	Median(ageMonths int, sex string, metric Metric) float64
}

// LinearModel is a simplified reference: a base value at birth plus a
// fixed monthly increment. It is not a clinical standard.
type LinearModel struct{}

func (LinearModel) Median(ageMonths int, sex string, metric Metric) float64 {
	switch metric {
	case MetricHeight:
		base := 49.0
		if sex == "M" {
			base = 50.0
		}
		return base + float64(ageMonths)*0.8
	case MetricWeight:
		base := 3.2
		if sex == "M" {
			base = 3.4
		}
		return base + float64(ageMonths)*0.25
	case MetricBMI:
		return 16.0
	}
	return 0
}

// Assessment summarizes the latest measurement against the reference.
type Assessment struct {
	AgeMonths        int     `json:"age_months"`
	MeasuredAt       string  `json:"measured_at"`
	Height           float64 `json:"height"`
	Weight           float64 `json:"weight"`
	BMI              float64 `json:"bmi"`
	HeightPercentile int     `json:"height_percentile"`
	WeightPercentile int     `json:"weight_percentile"`
	BMIPercentile    int     `json:"bmi_percentile"`
}
