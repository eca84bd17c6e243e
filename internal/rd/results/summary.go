package results

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/aclements/go-moremath/stats"
	"github.com/compressionlab/rdbench/internal/rd/table"
	"gopkg.in/yaml.v3"
)

// LambdaSummary aggregates rate and distortion over every row of one
// lambda rung.
type LambdaSummary struct {
	Lmbda      float64 `yaml:"lmbda"`
	Rows       int     `yaml:"rows"`
	MeanRate   float64 `yaml:"mean_rate_bpp"`
	MedianRate float64 `yaml:"median_rate_bpp"`
	MinRate    float64 `yaml:"min_rate_bpp"`
	MaxRate    float64 `yaml:"max_rate_bpp"`
	MeanPsnr   float64 `yaml:"mean_psnr_db"`
	MedianPsnr float64 `yaml:"median_psnr_db"`
	MinPsnr    float64 `yaml:"min_psnr_db"`
	MaxPsnr    float64 `yaml:"max_psnr_db"`
}

// SummaryReport is the YAML document written by the summary command.
type SummaryReport struct {
	GeneratedAt string          `yaml:"generated_at"`
	ResultsDir  string          `yaml:"results_dir"`
	Lambdas     []LambdaSummary `yaml:"lambdas"`
}

// Summarize groups the merged table by lambda and computes rate/distortion
// statistics per rung, sorted by ascending lambda.
func Summarize(t *table.Table) ([]LambdaSummary, error) {
	type group struct {
		rates []float64
		psnrs []float64
	}
	groups := make(map[float64]*group)

	for i := 0; i < t.NumRows(); i++ {
		lmbda, err := floatAt(t, i, ColLambda)
		if err != nil {
			return nil, err
		}
		rate, err := floatAt(t, i, ColRateBpp)
		if err != nil {
			return nil, err
		}
		psnr, err := floatAt(t, i, ColPsnrDb)
		if err != nil {
			return nil, err
		}
		g := groups[lmbda]
		if g == nil {
			g = &group{}
			groups[lmbda] = g
		}
		g.rates = append(g.rates, rate)
		g.psnrs = append(g.psnrs, psnr)
	}

	summaries := make([]LambdaSummary, 0, len(groups))
	for lmbda, g := range groups {
		s := LambdaSummary{Lmbda: lmbda, Rows: len(g.rates)}
		s.MeanRate = stats.Mean(g.rates)
		s.MedianRate = stats.Sample{Xs: g.rates}.Quantile(0.5)
		s.MinRate, s.MaxRate = stats.Bounds(g.rates)
		s.MeanPsnr = stats.Mean(g.psnrs)
		s.MedianPsnr = stats.Sample{Xs: g.psnrs}.Quantile(0.5)
		s.MinPsnr, s.MaxPsnr = stats.Bounds(g.psnrs)
		summaries = append(summaries, s)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Lmbda < summaries[j].Lmbda })
	return summaries, nil
}

// SaveSummaryYAML writes the per-lambda summaries to a YAML file.
func SaveSummaryYAML(path, resultsDir string, summaries []LambdaSummary) error {
	report := SummaryReport{
		GeneratedAt: time.Now().Format("2006-01-02_15-04-05"),
		ResultsDir:  resultsDir,
		Lambdas:     summaries,
	}

	data, err := yaml.Marshal(&report)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}
	return nil
}
