package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/midbel/cli"

	"x431/csvout"
	"x431/decode"
	"x431/walk"
)

func runBatch(cmd *cli.Command, args []string) error {
	clean := cmd.Flag.Bool("c", false, "spreadsheet friendly headers")
	profile := cmd.Flag.String("p", "", "format profile file")
	workdir := cmd.Flag.String("w", "", "write CSV files under this directory")
	jobs := cmd.Flag.Int("j", 1, "parallel conversions")
	if err := cmd.Flag.Parse(args); err != nil {
		return err
	}

	dir := cmd.Flag.Arg(0)
	if dir == "" {
		dir = "."
	}
	p, err := loadProfile(*profile)
	if err != nil {
		return err
	}
	style := csvout.Numbered
	if *clean {
		style = csvout.Clean
	}

	files, err := walk.Find(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Printf("no %s files found in %s", walk.Ext, dir)
		return nil
	}
	log.Printf("found %d %s file(s)", len(files), walk.Ext)

	// Decode sessions are shared nothing, so files convert in parallel;
	// only the counters need the lock.
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
		failed  int
	)
	queue := make(chan string)
	workers := *jobs
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range queue {
				rows, cols, err := batchOne(file, *workdir, p, style, *clean)
				mu.Lock()
				if err != nil {
					log.Printf("%s: %s", file, err)
					failed++
				} else {
					log.Printf("%s: %d rows, %d columns", file, rows, cols)
					success++
				}
				mu.Unlock()
			}
		}()
	}
	for _, file := range files {
		queue <- file
	}
	close(queue)
	wg.Wait()

	log.Printf("conversion complete: %d converted, %d failed", success, failed)
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}

func batchOne(file, workdir string, p decode.Profile, style csvout.Style, clean bool) (int, int, error) {
	out, err := batchOutput(file, workdir, clean)
	if err != nil {
		return 0, 0, err
	}
	return convertFile(file, out, p, style, nil)
}

// batchOutput mirrors the input tree under workdir when one is given,
// otherwise the CSV lands next to its input.
func batchOutput(file, workdir string, clean bool) (string, error) {
	out := defaultOutput(file, clean)
	if workdir == "" {
		return out, nil
	}
	dir, base := filepath.Split(out)
	dir = filepath.Join(workdir, dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, base), nil
}
