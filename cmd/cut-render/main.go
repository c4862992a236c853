// Command cut-render renders a saved cut to a WAV file.
//
// Usage:
//
//	cut-render cut.yaml out.wav
//	cut-render -bpm 96 -quality high cut.yaml out.wav
//	cut-render -gate -analyze cut.json out.wav
//	cut-render -init -sample loops/break.wav cut.yaml     # write a default cut
//
// The record names its sample; -sample overrides it. Output is stereo
// 32-bit float at -rate kHz.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"time"

	cutcreator "github.com/tphakala/go-cut-creator"
	"github.com/tphakala/go-cut-creator/internal/pcm"
)

const (
	// CLI defaults
	defaultRateKHz  = 48.0
	defaultBPM      = 120.0
	minRequiredArgs = 1

	kHzToHz = 1000
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rateKHz := flag.Float64("rate", defaultRateKHz, "Output sample rate in kHz (e.g. 44.1, 48, 96)")
	bpm := flag.Float64("bpm", defaultBPM, "Tempo in beats per minute (4/4)")
	quality := flag.String("quality", "standard", "Quality preset: draft, standard, high, veryhigh, custom")
	taps := flag.Int("taps", 0, "Kernel width for -quality custom (even)")
	window := flag.String("window", "none", "Window for -quality custom: none, hann, blackman, lanczos, kaiser")
	gate := flag.Bool("gate", false, "Apply the fader as a gate")
	parallel := flag.Bool("parallel", true, "Render frame chunks concurrently")
	samplePath := flag.String("sample", "", "Sample WAV, overriding the one named in the record")
	analyze := flag.Bool("analyze", false, "Print level and pitch of the rendered output")
	initRecord := flag.Bool("init", false, "Write a default cut record and exit")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file (for PGO)")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] cut.yaml [output.wav]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s cut.yaml out.wav                        # Render at 48kHz, 120 bpm\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -bpm 174 -quality high cut.yaml dnb.wav  # Faster, cleaner\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -init -sample break.wav cut.yaml         # Start a new cut\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}
	recordPath := args[0]

	if *initRecord {
		if err := writeDefaultRecord(recordPath, *samplePath); err != nil {
			return err
		}
		fmt.Printf("Wrote default cut to %s\n", recordPath)
		return nil
	}

	outputPath := cutcreator.DefaultOutputPath
	if len(args) > 1 {
		outputPath = args[1]
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	cfg, err := buildRenderConfig(renderFlags{
		rateKHz:  *rateKHz,
		bpm:      *bpm,
		quality:  *quality,
		taps:     *taps,
		window:   *window,
		gate:     *gate,
		parallel: *parallel,
	})
	if err != nil {
		return err
	}

	if *verbose {
		log.Printf("Record: %s", recordPath)
		log.Printf("Output: %s", outputPath)
		log.Printf("Rate: %d Hz, %.1f bpm", cfg.OutputRate, cfg.BPM)
		log.Printf("Quality: %s", cfg.Quality)
		if cfg.Parallel {
			log.Printf("Parallel: enabled")
		} else {
			log.Printf("Parallel: disabled")
		}
	}

	ed, err := openEditor(recordPath, *samplePath, cfg, *verbose)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	res, err := ed.Render(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := pcm.WriteFloat32(outputPath, res.Frames, res.SampleRate); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	src := ed.SampleBuffer()
	fmt.Printf("Rendered %s -> %s\n", filepath.Base(recordPath), filepath.Base(outputPath))
	fmt.Printf("  %d Hz -> %d Hz, %.2f bars at %.1f bpm\n",
		src.SampleRate, res.SampleRate, ed.Curve().Bars(), cfg.BPM)
	fmt.Printf("  %d region frames -> %d frames (%d silent)\n", ed.Region().Len, res.FrameCount, res.Silent)
	fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
		elapsed.Seconds(),
		float64(res.FrameCount)/float64(res.SampleRate)/elapsed.Seconds())

	if *analyze {
		printAnalysis(os.Stdout, res)
	}
	return nil
}
