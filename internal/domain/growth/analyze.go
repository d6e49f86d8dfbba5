package growth

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// AgeInMonths counts whole calendar months between birth and at. Days
// within the month are ignored, so a child born on the 15th turns one
// month old on the 1st of the next month.
func AgeInMonths(birth, at time.Time) int {
	return (at.Year()-birth.Year())*12 + int(at.Month()) - int(birth.Month())
}

// Deviation is the percentage difference of value from the median.
func Deviation(value, median float64) float64 {
	return ((value - median) / median) * 100
}

// Percentile maps a value to one of five percentile buckets by its
// deviation from the median. Boundary deviations fall in the later
// bucket: exactly -20% reads as the 15th percentile, exactly -10% as
// the 50th.
func Percentile(value, median float64) int {
	d := Deviation(value, median)
	switch {
	case d < -20:
		return 3
	case d < -10:
		return 15
	case d < 10:
		return 50
	case d < 20:
		return 85
	default:
		return 97
	}
}

// BMI computes body mass index from weight in kg and height in cm.
func BMI(weightKg, heightCm float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	m := heightCm / 100
	return weightKg / (m * m)
}

// Analyze assesses the most recent measurement in history against the
// reference model. History is expected sorted ascending by date; the
// last entry is taken as current. An empty history yields (nil, nil).
func Analyze(birthDate time.Time, sex string, history []Measurement, model ReferenceModel) (*Assessment, error) {
	if len(history) == 0 {
		return nil, nil
	}

	latest := history[len(history)-1]
	measuredAt, err := time.Parse(dateLayout, latest.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid measurement date %q: %w", latest.Date, err)
	}

	age := AgeInMonths(birthDate, measuredAt)
	bmi := BMI(latest.Weight, latest.Height)

	return &Assessment{
		AgeMonths:        age,
		MeasuredAt:       latest.Date,
		Height:           latest.Height,
		Weight:           latest.Weight,
		BMI:              bmi,
		HeightPercentile: Percentile(latest.Height, model.Median(age, sex, MetricHeight)),
		WeightPercentile: Percentile(latest.Weight, model.Median(age, sex, MetricWeight)),
		BMIPercentile:    Percentile(bmi, model.Median(age, sex, MetricBMI)),
	}, nil
}
