package ml

import (
	"fmt"
	"math"
	"slices"

	"github.com/bibbank/guestrisk/internal/domain/model"
)

// zeroScaleTolerance treats near-constant columns as constant.
const zeroScaleTolerance = 10 * 2.220446049250313e-16

// StandardScaler centres each numeric column on its reference mean and divides
// by its population standard deviation.
type StandardScaler struct {
	Mean  [model.NumericColumnCount]float64 `json:"mean"`
	Scale [model.NumericColumnCount]float64 `json:"scale"`
}

// OneHotEncoder holds the sorted categories of each categorical column. The
// first category of every column is dropped and encodes as all zeros.
type OneHotEncoder struct {
	Categories [model.CategoricalColumnCount][]string `json:"categories"`
}

// Pipeline is the fitted numeric standardizer plus categorical encoder. It is
// immutable after fitting and safe for concurrent use.
type Pipeline struct {
	Encoder OneHotEncoder  `json:"encoder"`
	Scaler  StandardScaler `json:"scaler"`
}

// FitPipeline fits the scaler and encoder on the reference rows.
func FitPipeline(rows []model.FeatureRecord) (*Pipeline, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("cannot fit pipeline on an empty reference dataset")
	}

	p := &Pipeline{}
	n := float64(len(rows))

	var sum [model.NumericColumnCount]float64
	for _, r := range rows {
		for i, v := range r.NumericValues() {
			sum[i] += v
		}
	}
	for i := range sum {
		p.Scaler.Mean[i] = sum[i] / n
	}

	var sq [model.NumericColumnCount]float64
	for _, r := range rows {
		for i, v := range r.NumericValues() {
			d := v - p.Scaler.Mean[i]
			sq[i] += d * d
		}
	}
	for i := range sq {
		std := math.Sqrt(sq[i] / n)
		if std < zeroScaleTolerance {
			std = 1
		}
		p.Scaler.Scale[i] = std
	}

	for col := range model.CategoricalColumnCount {
		seen := make(map[string]bool)
		for _, r := range rows {
			seen[r.CategoricalValues()[col]] = true
		}
		categories := make([]string, 0, len(seen))
		for c := range seen {
			categories = append(categories, c)
		}
		slices.Sort(categories)
		p.Encoder.Categories[col] = categories
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks a fitted or decoded pipeline.
func (p *Pipeline) Validate() error {
	for i, s := range p.Scaler.Scale {
		if s <= 0 || math.IsNaN(s) {
			return fmt.Errorf("scaler column %s has invalid scale %v", model.NumericColumns[i], s)
		}
	}
	for col, categories := range p.Encoder.Categories {
		if len(categories) == 0 {
			return fmt.Errorf("encoder column %s has no categories", model.CategoricalColumns[col])
		}
		if !slices.IsSorted(categories) {
			return fmt.Errorf("encoder column %s categories are not sorted", model.CategoricalColumns[col])
		}
	}
	return nil
}

// OutputDim is the length of a transformed vector.
func (p *Pipeline) OutputDim() int {
	dim := model.NumericColumnCount
	for _, categories := range p.Encoder.Categories {
		dim += len(categories) - 1
	}
	return dim
}

// Transform encodes a record into the network input vector: the standardized
// numeric columns followed by the one-hot blocks of each categorical column.
// A category the encoder has never seen fails with model.ErrPreprocessingMismatch.
func (p *Pipeline) Transform(rec model.FeatureRecord) ([]float64, error) {
	out := make([]float64, 0, p.OutputDim())

	for i, v := range rec.NumericValues() {
		out = append(out, (v-p.Scaler.Mean[i])/p.Scaler.Scale[i])
	}

	for col, value := range rec.CategoricalValues() {
		categories := p.Encoder.Categories[col]
		idx, found := slices.BinarySearch(categories, value)
		if !found {
			return nil, fmt.Errorf("%w: unknown %s %q", model.ErrPreprocessingMismatch, model.CategoricalColumns[col], value)
		}
		block := make([]float64, len(categories)-1)
		if idx > 0 {
			block[idx-1] = 1
		}
		out = append(out, block...)
	}

	return out, nil
}
