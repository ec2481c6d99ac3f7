package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/forest-guardian/sentinel-vision-poc/internal/pipeline"
)

type indexStatsRecord struct {
	Index  string  `csv:"index"`
	BandA  string  `csv:"band_a"`
	BandB  string  `csv:"band_b"`
	Min    float64 `csv:"min"`
	Max    float64 `csv:"max"`
	Mean   float64 `csv:"mean"`
	StdDev float64 `csv:"std_dev"`
}

// CreateIndexReport writes one CSV row of statistics per computed index.
func CreateIndexReport(results []pipeline.IndexResult, outputPath string) error {
	records := make([]indexStatsRecord, 0, len(results))
	for _, result := range results {
		records = append(records, indexStatsRecord{
			Index:  result.Name,
			BandA:  result.BandA,
			BandB:  result.BandB,
			Min:    result.Stats.Min,
			Max:    result.Stats.Max,
			Mean:   result.Stats.Mean,
			StdDev: result.Stats.StdDev,
		})
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&records, file); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Printf("Index report saved to: %s\n", outputPath)
	return nil
}

// FormatIndexReport renders the statistics family as a fixed-precision
// console table.
func FormatIndexReport(results []pipeline.IndexResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-6s %-6s %-6s %10s %10s %10s %10s\n", "index", "bandA", "bandB", "min", "max", "mean", "std"))
	for _, result := range results {
		sb.WriteString(fmt.Sprintf("%-6s %-6s %-6s %10.4f %10.4f %10.4f %10.4f\n",
			result.Name, result.BandA, result.BandB,
			result.Stats.Min, result.Stats.Max, result.Stats.Mean, result.Stats.StdDev))
	}
	return sb.String()
}
