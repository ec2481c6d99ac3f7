package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/airbusgeo/godal"
	"github.com/common-nighthawk/go-figure"
	bannercolor "github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/forest-guardian/sentinel-vision-poc/internal/notification"
	"github.com/forest-guardian/sentinel-vision-poc/internal/pipeline"
	"github.com/forest-guardian/sentinel-vision-poc/internal/product"
	"github.com/forest-guardian/sentinel-vision-poc/internal/properties"
	"github.com/forest-guardian/sentinel-vision-poc/output"
)

func printBanner() {
	figure1 := figure.NewFigure("Sentinel", "isometric1", true)
	figure2 := figure.NewFigure("Vision", "isometric1", true)
	bannercolor.Cyan(figure1.String())
	bannercolor.Cyan(figure2.String())
	fmt.Println()
}

func main() {
	var (
		productDir = flag.String("product", "", "path to the unpacked product directory")
		resolution = flag.String("resolution", "10m", "resolution tier of the band files")
		redBand    = flag.String("red", "B04", "band id for the red channel")
		greenBand  = flag.String("green", "B03", "band id for the green channel")
		blueBand   = flag.String("blue", "B02", "band id for the blue channel")
		percentile = flag.Float64("percentile", 2.0, "percentile stretch clip, in [0, 50)")
		vignette   = flag.Float64("vignette", 0.3, "vignette strength, in [0, 1], 0 disables it")
		outDir     = flag.String("out", "", "output directory, defaults to OUTPUT_PATH")
	)
	flag.Parse()

	printBanner()

	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: no .env file loaded")
	}
	godal.RegisterAll()

	if *productDir == "" {
		fmt.Println("Error: -product is required")
		flag.Usage()
		os.Exit(1)
	}
	if *outDir == "" {
		*outDir = properties.OutputPath()
	}

	if err := run(*productDir, *resolution, *redBand, *greenBand, *blueBand, *percentile, *vignette, *outDir); err != nil {
		bannercolor.Red("Pipeline failed: %v", err)
		if notifyErr := notification.SendDiscordErrorNotification(err.Error()); notifyErr != nil {
			fmt.Printf("Warning: failed to send notification: %v\n", notifyErr)
		}
		os.Exit(1)
	}
}

func run(productDir, resolution, red, green, blue string, percentile, vignette float64, outDir string) error {
	bandIDs := map[string]bool{red: true, green: true, blue: true}
	for _, req := range pipeline.DefaultIndexes {
		bandIDs[req.BandA] = true
		bandIDs[req.BandB] = true
	}
	ids := make([]string, 0, len(bandIDs))
	for id := range bandIDs {
		ids = append(ids, id)
	}

	fmt.Printf("Locating %d bands at %s in %s...\n", len(ids), resolution, productDir)
	paths, err := product.LocateBands(productDir, ids, resolution)
	if err != nil {
		return err
	}

	result, err := pipeline.New().Run(context.Background(), paths, red, green, blue, pipeline.DefaultIndexes, pipeline.Options{
		Percentile:       &percentile,
		VignetteStrength: vignette,
	})
	if err != nil {
		// A composite built before the failure is still worth exporting.
		if result != nil && result.Composite != nil {
			if exportErr := output.CreateCompositeImage(result.Composite, filepath.Join(outDir, "composite.png")); exportErr != nil {
				fmt.Printf("Warning: failed to export composite: %v\n", exportErr)
			}
		}
		return err
	}

	if err := output.CreateCompositeImage(result.Composite, filepath.Join(outDir, "composite.png")); err != nil {
		return err
	}
	for _, indexResult := range result.Indexes {
		if err := output.CreateIndexImage(indexResult, filepath.Join(outDir, indexResult.Name+".png")); err != nil {
			return err
		}
	}
	if err := output.CreateIndexReport(result.Indexes, filepath.Join(outDir, "index_stats.csv")); err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(output.FormatIndexReport(result.Indexes))

	summary := fmt.Sprintf("Composite and %d indices exported to %s", len(result.Indexes), outDir)
	if err := notification.SendDiscordSuccessNotification(summary); err != nil {
		fmt.Printf("Warning: failed to send notification: %v\n", err)
	}
	bannercolor.Green("\n✓ %s", summary)
	return nil
}
