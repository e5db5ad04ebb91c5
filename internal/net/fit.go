package net

import (
	"context"

	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/dataset"
)

// FitConfig controls a Fit run.
type FitConfig struct {
	Epochs int

	// BatchSize 1 trains sample by sample with Train; larger values use
	// TrainMultiple on consecutive batches.
	BatchSize int

	// Shuffle reorders the training set before every epoch using the
	// network's random source.
	Shuffle bool

	// Validation, when set, is evaluated at the end of every epoch.
	Validation *dataset.Dataset
}

// History records per-epoch metrics of a Fit run.
type History struct {
	Loss          []float64
	ValLoss       []float64
	ValAccuracy   []float64
	StoppedEarly  bool
	EpochsTrained int
}

// Fit trains the network on ds for cfg.Epochs epochs. The epoch loss is the
// mean loss of each sample measured before the update it caused. ctx is
// checked between batches; on cancellation the partial history is returned
// with the context's error.
func (n *Network) Fit(ctx context.Context, ds *dataset.Dataset, cfg FitConfig, callbacks ...Callback) (*History, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, errors.Wrap(dataset.ErrEmpty, "fit")
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1
	}

	hist := &History{}
	for _, cb := range callbacks {
		cb.OnTrainBegin(n)
	}
	defer func() {
		for _, cb := range callbacks {
			cb.OnTrainEnd(n)
		}
	}()

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		for _, cb := range callbacks {
			cb.OnEpochBegin(epoch, n)
		}
		if cfg.Shuffle {
			ds.Shuffle(n.rng)
		}

		var epochLoss float64
		for b, batch := range ds.Batches(cfg.BatchSize) {
			if err := ctx.Err(); err != nil {
				return hist, errors.Wrapf(err, "epoch %d batch %d", epoch, b)
			}
			for _, cb := range callbacks {
				cb.OnBatchBegin(b, n)
			}

			batchLoss, err := n.fitBatch(batch)
			if err != nil {
				return hist, errors.Wrapf(err, "epoch %d batch %d", epoch, b)
			}
			epochLoss += batchLoss * float64(batch.Len())

			for _, cb := range callbacks {
				cb.OnBatchEnd(b, batchLoss, n)
			}
		}

		epochLoss /= float64(ds.Len())
		hist.Loss = append(hist.Loss, epochLoss)
		hist.EpochsTrained++

		if cfg.Validation != nil {
			acc, valLoss, err := n.Evaluate(cfg.Validation)
			if err != nil {
				return hist, errors.Wrapf(err, "validation after epoch %d", epoch)
			}
			hist.ValAccuracy = append(hist.ValAccuracy, acc)
			hist.ValLoss = append(hist.ValLoss, valLoss)
		}

		stop := false
		for _, cb := range callbacks {
			cb.OnEpochEnd(epoch, epochLoss, n)
			if s, ok := cb.(Stopper); ok && s.ShouldStop() {
				stop = true
			}
		}
		if stop {
			hist.StoppedEarly = true
			break
		}
	}
	return hist, nil
}

func (n *Network) fitBatch(batch *dataset.Dataset) (float64, error) {
	if batch.Len() == 1 {
		return n.train(batch.Inputs[0], batch.Targets[0])
	}
	return n.trainMultiple(batch.Inputs, batch.Targets)
}
