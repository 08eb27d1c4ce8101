package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/neurotrack/progression/internal/testpredictions"
)

// Default configuration constants.
const (
	defaultNumPatients = 1000
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numPatients = flag.Int("patients", defaultNumPatients, "Number of synthetic patients to submit")
		workers     = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile  = flag.String("output", "", "Output file for generated requests (default: generated_requests_TIMESTAMP.json)")
		logFile     = flag.String("log", "", "Log file for test output (default: test_log_TIMESTAMP.log)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		testpredictions.ShowHelp()
		return
	}

	if err := testpredictions.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	config := &testpredictions.Config{
		BaseURL:     *baseURL,
		NumPatients: *numPatients,
		Workers:     *workers,
		Timeout:     *timeout,
		OutputFile:  *outputFile,
		LogFile:     *logFile,
		Verbose:     *verbose,
	}

	if err := testpredictions.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Test failed: " + err.Error() + "\n")
		return
	}
}
