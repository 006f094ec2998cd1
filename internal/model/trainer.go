package model

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Row is one historical training observation. Missing feature values are
// already defaulted to zero by the dataset loader.
type Row struct {
	RedditSentiment  float64
	TrendsInflationZ float64
	PMIDevFrom50     float64
	Confidence       float64
	Direction        float64
	MovePct          float64
}

func (r Row) features() []float64 {
	return []float64{r.RedditSentiment, r.TrendsInflationZ, r.PMIDevFrom50, r.Confidence}
}

// TrainOptions are the trainer's hyperparameters. Training is full-batch,
// single-shot and deterministic given fixed data ordering.
type TrainOptions struct {
	LearningRate float64
	Epochs       int
	LogisticL2   float64
	RidgeL2      float64
	ClipPct      float64
}

func DefaultTrainOptions() TrainOptions {
	return TrainOptions{
		LearningRate: 0.2,
		Epochs:       600,
		LogisticL2:   0.001,
		RidgeL2:      1e-3,
		ClipPct:      1.0,
	}
}

// Train fits the direction (logistic) and magnitude (ridge) heads over the
// shared feature matrix and assembles the versioned artifact.
func Train(rows []Row, opts TrainOptions) (*Artifact, error) {
	if len(rows) == 0 {
		return nil, errors.New("empty training dataset")
	}
	if opts.LearningRate <= 0 {
		opts.LearningRate = DefaultTrainOptions().LearningRate
	}
	if opts.Epochs <= 0 {
		opts.Epochs = DefaultTrainOptions().Epochs
	}
	if opts.LogisticL2 < 0 {
		opts.LogisticL2 = DefaultTrainOptions().LogisticL2
	}
	if opts.RidgeL2 < 0 {
		opts.RidgeL2 = DefaultTrainOptions().RidgeL2
	}

	x := make([][]float64, len(rows))
	yDir := make([]float64, len(rows))
	yMag := make([]float64, len(rows))
	for i, row := range rows {
		x[i] = row.features()
		yDir[i] = row.Direction
		yMag[i] = row.MovePct
	}

	dirW, dirB := fitLogistic(x, yDir, opts.LearningRate, opts.Epochs, opts.LogisticL2)
	magW, magB, err := fitLinearRidge(x, yMag, opts.RidgeL2)
	if err != nil {
		return nil, fmt.Errorf("fit magnitude: %w", err)
	}

	return &Artifact{
		Version:  ArtifactVersion,
		Features: append([]string(nil), TrainerFeatures...),
		Direction: SubModel{
			Type:    "logistic",
			Weights: weightsByName(dirW),
			Bias:    dirB,
		},
		Magnitude: SubModel{
			Type:    "linear",
			Weights: weightsByName(magW),
			Bias:    magB,
			ClipPct: opts.ClipPct,
		},
	}, nil
}

// fitLogistic runs batch gradient descent from a zero initialization:
// p = sigmoid(Xw + b); grad_w = Xt(p-y)/n + l2*w; grad_b = mean(p-y).
func fitLogistic(x [][]float64, y []float64, lr float64, epochs int, l2 float64) ([]float64, float64) {
	n := len(x)
	d := len(TrainerFeatures)
	weights := make([]float64, d)
	bias := 0.0

	for epoch := 0; epoch < epochs; epoch++ {
		grads := make([]float64, d)
		gradBias := 0.0
		for i := 0; i < n; i++ {
			z := bias
			for j := 0; j < d; j++ {
				z += weights[j] * x[i][j]
			}
			err := sigmoid(z) - y[i]
			for j := 0; j < d; j++ {
				grads[j] += err * x[i][j]
			}
			gradBias += err
		}
		for j := 0; j < d; j++ {
			grads[j] = grads[j]/float64(n) + l2*weights[j]
			weights[j] -= lr * grads[j]
		}
		bias -= lr * (gradBias / float64(n))
	}
	return weights, bias
}

// fitLinearRidge solves the normal equations (XtX + l2*I)w = Xty and
// recovers the intercept by centering: b = mean(y) - mean(X)·w.
func fitLinearRidge(x [][]float64, y []float64, l2 float64) ([]float64, float64, error) {
	n := len(x)
	d := len(TrainerFeatures)

	xtx := mat.NewDense(d, d, nil)
	xty := mat.NewVecDense(d, nil)
	for j := 0; j < d; j++ {
		for k := 0; k < d; k++ {
			sum := 0.0
			for i := 0; i < n; i++ {
				sum += x[i][j] * x[i][k]
			}
			if j == k {
				sum += l2
			}
			xtx.Set(j, k, sum)
		}
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += x[i][j] * y[i]
		}
		xty.SetVec(j, sum)
	}

	var w mat.VecDense
	if err := w.SolveVec(xtx, xty); err != nil {
		return nil, 0, err
	}

	yMean := 0.0
	for i := 0; i < n; i++ {
		yMean += y[i]
	}
	yMean /= float64(n)

	bias := yMean
	weights := make([]float64, d)
	for j := 0; j < d; j++ {
		weights[j] = w.AtVec(j)
		xMean := 0.0
		for i := 0; i < n; i++ {
			xMean += x[i][j]
		}
		xMean /= float64(n)
		bias -= xMean * weights[j]
	}
	return weights, bias, nil
}

func weightsByName(w []float64) map[string]float64 {
	out := make(map[string]float64, len(TrainerFeatures))
	for i, name := range TrainerFeatures {
		out[name] = w[i]
	}
	return out
}
