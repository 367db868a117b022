package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/midbel/cli"

	"x431/analyze"
)

func runAnalyze(cmd *cli.Command, args []string) error {
	if err := cmd.Flag.Parse(args); err != nil {
		return err
	}
	if cmd.Flag.NArg() != 1 {
		return fmt.Errorf("usage: %s", cmd.Usage)
	}

	file := cmd.Flag.Arg(0)
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	report, err := analyze.Load(f)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	report.Name = filepath.Base(file)
	return report.WriteSummary(os.Stdout)
}
