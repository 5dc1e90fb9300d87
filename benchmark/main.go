// Package main provides a performance benchmarking tool for the HPMA CLI.
// It generates synthetic response batches, measures execution times for the
// score and report commands, running each test multiple times, treating the
// first successful run as cold and averaging the rest as warm,
// and generates CSV output for performance analysis and documentation.
//
// Prerequisites:
// - hpma binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where the synthetic response batches are written
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hpmalabs/hpma/internal/bank"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Batch       string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	Workers     int
	NoCacheRuns int
	CacheRuns   int
	BatchSizes  []int
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:     os.Args[1],
		Timeout:     5 * time.Minute,
		Workers:     14,
		NoCacheRuns: 3,
		CacheRuns:   4,
		BatchSizes:  []int{10, 100, 1000},
	}

	if err := checkPrerequisites(); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	if err := generateBatches(config); err != nil {
		fmt.Printf("Failed to generate response batches: %v\n", err)
		os.Exit(1)
	}

	// Clear the cache using hpma cache clear
	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("hpma", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the hpma binary exists
func checkPrerequisites() error {
	if _, err := exec.LookPath("hpma"); err != nil {
		return fmt.Errorf("hpma binary not found in PATH")
	}
	return nil
}

func batchDir(config BenchmarkConfig, size int) string {
	return filepath.Join(config.WorkDir, fmt.Sprintf("batch-%d", size))
}

// generateBatches writes one directory of random response files per batch size
func generateBatches(config BenchmarkConfig) error {
	b, err := bank.Default()
	if err != nil {
		return err
	}
	questions := b.Questions()
	rng := rand.New(rand.NewPCG(1, 2))

	for _, size := range config.BatchSizes {
		dir := batchDir(config, size)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		for i := range size {
			answers := make(map[string]int, len(questions))
			for _, q := range questions {
				answers[strconv.Itoa(q.ID)] = 1 + rng.IntN(7)
			}
			data, err := json.Marshal(map[string]any{
				"respondent": fmt.Sprintf("r%04d", i),
				"baseline":   answers,
			})
			if err != nil {
				return err
			}
			if err := os.WriteFile(filepath.Join(dir, fmt.Sprintf("r%04d.json", i)), data, 0o644); err != nil {
				return err
			}
		}
		fmt.Printf("Generated %d response files in %s\n", size, dir)
	}
	return nil
}

// runBenchmarks executes all benchmark tests across configured batch sizes
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d batches, %v timeout, %d workers, no-cache: %d runs, cache: %d runs\n",
		len(config.BatchSizes), config.Timeout, config.Workers, config.NoCacheRuns, config.CacheRuns)

	for _, size := range config.BatchSizes {
		batch := fmt.Sprintf("batch-%d", size)
		glob := filepath.Join(batchDir(config, size), "*.json")
		fmt.Printf("Benchmarking %s\n", batch)

		results = append(results, runBenchmarkSuite(config, batch, "score", []string{glob}))
		results = append(results, runBenchmarkSuite(config, batch, "report", []string{glob, "--output-file", os.DevNull}))
	}

	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, batch, command string, extraArgs []string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, batch)

	// Helper to run a benchmark phase
	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, command, extraArgs, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Batch:       batch,
		Command:     command,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes an hpma command multiple times with specified cache backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, command string, extraArgs []string, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{command, "--cache-backend", cacheBackend, "--workers", strconv.Itoa(config.Workers)}
	args = append(args, extraArgs...)

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("hpma", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)
	if command == "report" {
		return strings.Contains(outputStr, "Wrote markdown to")
	}
	return strings.Contains(outputStr, "Scoring completed in") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/hpma_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"batch", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Batch, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "score", "Score:")
	printCommandSummary(results, "report", "Report:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: No-cache: %s, Cold: %s, Warm: %s\n", result.Batch, result.NoCacheTime, result.ColdTime, result.WarmTime)
		}
	}
}
