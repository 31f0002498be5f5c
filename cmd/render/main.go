package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"spectral-renderer/internal/runtime"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <scene.json|checkpoint.bin>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	setupLogging()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	rt, err := runtime.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", path, err)
		os.Exit(1)
	}

	fmt.Printf("Output: %s, Passes: %d, Threads: %d\n",
		rt.Renderer.Config.Output, rt.Renderer.Config.Passes, rt.Renderer.Config.Threads)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	rt.Run()
	rt.Wait()

	done := rt.Progress()
	if total := rt.TotalTiles(); done > total {
		done = total
	}

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs (%d/%d tiles)\n", time.Since(start).Seconds(), done, rt.TotalTiles())
}

// setupLogging derives the slog level from the LOG_LEVEL environment
// variable (debug, info, warn, error).
func setupLogging() {
	level := slog.LevelInfo

	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
