// Command preprocess balances the review corpus by class and writes the
// result as JSON for the training pipeline.
//
// It loads a tab-separated reviews file (text \t rating), one-hot encodes the
// ratings, resamples the dataset with the chosen strategy and a fixed seed,
// and saves the balanced texts and labels to preprocessed_data.json.
// Optionally it renders a before/after class-distribution bar chart.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/christopher-danz/NLP-HandsOn-Workshop/datasets"
	"github.com/christopher-danz/NLP-HandsOn-Workshop/resample"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func main() {
	input := flag.String("input", "", "path to the reviews TSV file (default: first *.tsv under ./data)")
	output := flag.String("output", "data/preprocessed_data.json", "path to write the preprocessed JSON file")
	methodName := flag.String("method", "undersampling", "sampling method: undersampling, oversampling, mediansampling or none")
	seed := flag.Int64("seed", resample.DefaultSeed, "seed for the deterministic shuffle")
	plotPath := flag.String("plot", "", "optional path to write a class-distribution chart (PNG)")
	flag.Parse()

	method, err := resample.ParseMethod(*methodName)
	if err != nil {
		log.Fatalf("invalid -method: %v", err)
	}

	path := *input
	if path == "" {
		path, err = datasets.FindTSVInAssets("data")
		if err != nil {
			log.Fatalf("no input file: %v", err)
		}
	}

	ds, err := datasets.NewReviewDataset(path)
	if err != nil {
		log.Fatalf("failed to load reviews: %v", err)
	}
	log.Printf("loaded %d reviews (%d classes) from %s", ds.Len(), ds.NumClasses(), path)

	texts := ds.Texts()
	labels := ds.OneHot()
	before := countClasses(labels, ds.Classes())

	balancedTexts, balancedLabels, err := resample.Vectors(texts, labels, method, resample.WithSeed(*seed))
	if err != nil {
		log.Fatalf("resampling failed: %v", err)
	}
	after := countClasses(balancedLabels, ds.Classes())
	log.Printf("resampled with %s: %d -> %d examples", method, len(texts), len(balancedTexts))

	pre := &datasets.Preprocessed{
		Texts:  balancedTexts,
		Labels: balancedLabels,
		Method: string(method),
		Seed:   *seed,
	}
	if err := pre.Save(*output); err != nil {
		log.Fatalf("failed to save preprocessed data: %v", err)
	}
	log.Printf("wrote %s", *output)

	if *plotPath != "" {
		if err := plotDistribution(ds.Classes(), before, after, *plotPath); err != nil {
			log.Fatalf("failed to plot class distribution: %v", err)
		}
		log.Printf("wrote %s", *plotPath)
	}
}

// countClasses tallies examples per rating from one-hot labels. classes maps
// one-hot slots back to ratings.
func countClasses(labels [][]float32, classes []int) map[int]int {
	counts := make(map[int]int)
	for _, lab := range labels {
		for slot, v := range lab {
			if v == 1 {
				counts[classes[slot]]++
				break
			}
		}
	}
	return counts
}

// plotDistribution renders per-class example counts before and after
// balancing as a grouped bar chart.
func plotDistribution(classes []int, before, after map[int]int, outPath string) error {
	beforeVals := make(plotter.Values, len(classes))
	afterVals := make(plotter.Values, len(classes))
	names := make([]string, len(classes))
	for i, c := range classes {
		beforeVals[i] = float64(before[c])
		afterVals[i] = float64(after[c])
		names[i] = fmt.Sprintf("%d", c)
	}

	p := plot.New()
	p.Title.Text = "Class distribution"
	p.X.Label.Text = "rating"
	p.Y.Label.Text = "examples"

	w := vg.Points(16)

	beforeBars, err := plotter.NewBarChart(beforeVals, w)
	if err != nil {
		return fmt.Errorf("failed to build bar chart: %w", err)
	}
	beforeBars.Offset = -w / 2
	beforeBars.Color = color.RGBA{R: 80, G: 120, B: 200, A: 255}

	afterBars, err := plotter.NewBarChart(afterVals, w)
	if err != nil {
		return fmt.Errorf("failed to build bar chart: %w", err)
	}
	afterBars.Offset = w / 2
	afterBars.Color = color.RGBA{R: 220, G: 130, B: 60, A: 255}

	p.Add(beforeBars, afterBars)
	p.Legend.Add("before", beforeBars)
	p.Legend.Add("after", afterBars)
	p.Legend.Top = true
	p.NominalX(names...)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, outPath); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}
