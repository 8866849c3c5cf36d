package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func digestCommand() *cli.Command {
	return &cli.Command{
		Name:      "digest",
		Usage:     "Summarize pass/fail counts per experiment from a batch report",
		ArgsUsage: "<report.jsonl>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("expected exactly one argument: report.jsonl, got %d", cmd.NArg())
			}

			return runDigest(cmd.Args().First())
		},
	}
}

type tally struct {
	total  int
	passed int
}

func (t tally) String() string {
	if t.total == 0 {
		return "0/0"
	}

	return fmt.Sprintf("%d/%d (%.0f%%)", t.passed, t.total, 100*float64(t.passed)/float64(t.total))
}

func runDigest(path string) error {
	file, err := os.Open(path) //nolint:gosec // CLI tool opens user-specified report files
	if err != nil {
		return fmt.Errorf("opening report: %w", err)
	}
	defer file.Close()

	var (
		errored    int
		alias      tally
		coherence  tally
		resolution tally
		allPassed  tally
	)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		var rec Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return fmt.Errorf("parsing report line: %w", err)
		}

		if rec.Error != "" {
			errored++

			continue
		}

		tallyFrom(rec.Probe, "alias_detection", &alias)
		tallyFrom(rec.Probe, "range_coherence", &coherence)
		tallyFrom(rec.Probe, "resolution", &resolution)

		allPassed.total++

		if passed, ok := rec.Probe["all_confirmed"].(bool); ok && passed {
			allPassed.passed++
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading report: %w", err)
	}

	fmt.Printf("recordings with errors:  %d\n", errored)
	fmt.Printf("alias detection passed:  %s\n", alias)
	fmt.Printf("range coherence passed:  %s\n", coherence)
	fmt.Printf("resolution passed:       %s\n", resolution)
	fmt.Printf("all three passed:        %s\n", allPassed)

	return nil
}

func tallyFrom(probe map[string]any, key string, t *tally) {
	section, ok := probe[key].(map[string]any)
	if !ok {
		return
	}

	t.total++

	if passed, ok := section["passed"].(bool); ok && passed {
		t.passed++
	}
}
