package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/dataset"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/net"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/opt"
)

// MNIST digit classification with a sigmoid perceptron.
func main() {
	imagesPath := flag.String("images", "data/train-images-idx3-ubyte", "IDX image file")
	labelsPath := flag.String("labels", "data/train-labels-idx1-ubyte", "IDX label file")
	maxSamples := flag.Int("samples", 10000, "Max samples to load (0 = all)")
	epochs := flag.Int("epochs", 5, "Number of training epochs")
	batchSize := flag.Int("batch", 1, "Batch size (1 = per-sample SGD)")
	lr := flag.Float64("lr", 0.5, "Learning rate")
	hiddenFlag := flag.String("hidden", "16,16", "Comma-separated hidden layer widths")
	seed := flag.Int64("seed", 42, "Random seed")
	csvLog := flag.String("csvlog", "", "Write per-epoch metrics to this CSV file")
	useSynthetic := flag.Bool("synthetic", false, "Use generated digits instead of MNIST files")
	flag.Parse()

	hidden, err := parseWidths(*hiddenFlag)
	if err != nil {
		log.Fatalf("Invalid -hidden: %v", err)
	}

	fmt.Println("=== MNIST Digit Classification ===")

	start := time.Now()
	var all *dataset.Dataset
	if *useSynthetic {
		n := *maxSamples
		if n <= 0 {
			n = 1000
		}
		all = dataset.Synthetic(rand.New(rand.NewSource(*seed)), n)
		fmt.Printf("Generated %d synthetic samples\n", all.Len())
	} else {
		all, err = dataset.LoadMNIST(*imagesPath, *labelsPath, *maxSamples)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				fmt.Println("MNIST files not found. Pass -images/-labels or run with -synthetic.")
				os.Exit(1)
			}
			log.Fatalf("Failed to load MNIST: %v", err)
		}
		fmt.Printf("Loaded %d samples in %v\n", all.Len(), time.Since(start).Round(time.Millisecond))
	}

	if all.Len() == 0 {
		log.Fatal("No samples to train on")
	}

	train, test := all.Split(0.8)
	if train.Len() == 0 || test.Len() == 0 {
		log.Fatalf("Need at least 2 samples to split, got %d", all.Len())
	}
	fmt.Printf("Train: %d samples, Test: %d samples\n\n", train.Len(), test.Len())

	network, err := net.New(all.Inputs[0].Rows(), hidden, dataset.MNISTClasses,
		net.WithLearningRate(*lr),
		net.WithSeed(*seed),
	)
	if err != nil {
		log.Fatalf("Failed to build network: %v", err)
	}
	if err := network.Summary(os.Stdout); err != nil {
		log.Fatal(err)
	}

	callbacks := []net.Callback{
		net.NewLogger(os.Stdout, 1),
		net.NewSchedulerCallback(opt.NewReduceLROnPlateau(network, 0.5, 2, 1e-4, 1e-3)),
		net.NewEarlyStopping(3, 1e-4),
	}
	var csvLogger *net.CSVLogger
	if *csvLog != "" {
		csvLogger = net.NewCSVLogger(*csvLog, false)
		callbacks = append(callbacks, csvLogger)
	}

	before, _, err := network.Evaluate(test)
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}
	fmt.Printf("\nAccuracy before training: %.2f%%\n", before*100)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("Training...")
	start = time.Now()
	hist, err := network.Fit(ctx, train, net.FitConfig{
		Epochs:     *epochs,
		BatchSize:  *batchSize,
		Shuffle:    true,
		Validation: test,
	}, callbacks...)
	elapsed := time.Since(start)
	if err != nil {
		if hist == nil {
			log.Fatalf("Training failed: %v", err)
		}
		fmt.Printf("Training stopped: %v\n", err)
	}
	if csvLogger != nil && csvLogger.Err() != nil {
		fmt.Printf("CSV log incomplete: %v\n", csvLogger.Err())
	}

	fmt.Printf("Trained %d epochs in %v (%v per epoch)\n", hist.EpochsTrained, elapsed.Round(time.Millisecond),
		perEpoch(elapsed, hist.EpochsTrained))
	for i, acc := range hist.ValAccuracy {
		fmt.Printf("  Epoch %d: train loss=%.4f, test loss=%.4f, test accuracy=%.2f%%\n",
			i, hist.Loss[i], hist.ValLoss[i], acc*100)
	}

	start = time.Now()
	acc, meanLoss, err := network.Evaluate(test)
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}
	fmt.Printf("\nFinal test accuracy: %.2f%% (loss %.4f), evaluated in %v\n",
		acc*100, meanLoss, time.Since(start).Round(time.Millisecond))
}

func parseWidths(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	widths := make([]int, len(parts))
	for i, p := range parts {
		w, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		widths[i] = w
	}
	return widths, nil
}

func perEpoch(d time.Duration, epochs int) time.Duration {
	if epochs == 0 {
		return 0
	}
	return (d / time.Duration(epochs)).Round(time.Millisecond)
}
