package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/midbel/cli"

	"x431/common"
	"x431/csvout"
	"x431/decode"
	"x431/walk"
)

func runConvert(cmd *cli.Command, args []string) error {
	clean := cmd.Flag.Bool("c", false, "spreadsheet friendly headers")
	verbose := cmd.Flag.Bool("v", false, "verbose decoding")
	profile := cmd.Flag.String("p", "", "format profile file")
	output := cmd.Flag.String("o", "", "output file")
	if err := cmd.Flag.Parse(args); err != nil {
		return err
	}
	if cmd.Flag.NArg() != 1 {
		return fmt.Errorf("usage: %s", cmd.Usage)
	}

	p, err := loadProfile(*profile)
	if err != nil {
		return err
	}
	style := csvout.Numbered
	if *clean {
		style = csvout.Clean
	}
	var logger common.Logger
	if *verbose {
		logger = common.NewStdLogger(common.SeverityDebug)
	}

	file := cmd.Flag.Arg(0)
	out := *output
	if out == "" {
		out = defaultOutput(file, *clean)
	}
	rows, cols, err := convertFile(file, out, p, style, logger)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	log.Printf("%s: %d rows, %d columns -> %s", filepath.Base(file), rows, cols, out)
	return nil
}

// defaultOutput names the CSV next to its input, the way the scanner
// vendor's exports do: "log.x431.csv", or "log_clean.csv" with the log
// extension stripped for the clean dialect.
func defaultOutput(file string, clean bool) string {
	if clean {
		if ext := filepath.Ext(file); strings.EqualFold(ext, walk.Ext) {
			file = strings.TrimSuffix(file, ext)
		}
		return file + "_clean.csv"
	}
	return file + ".csv"
}

func loadProfile(path string) (decode.Profile, error) {
	if path == "" {
		return decode.DefaultProfile(), nil
	}
	return decode.LoadProfile(path)
}

// convertFile decodes one log file and writes it as CSV, streaming rows
// straight to the output so large captures never live in memory whole.
func convertFile(file, out string, p decode.Profile, style csvout.Style, logger common.Logger) (rows, cols int, err error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return 0, 0, err
	}
	sess, err := decode.NewSessionLogger(data, p, logger)
	if err != nil {
		return 0, 0, err
	}

	w, err := os.Create(out)
	if err != nil {
		return 0, 0, err
	}
	defer w.Close()

	cols = len(sess.Columns())
	rows, err = csvout.ConvertSession(w, sess, style)
	return rows, cols, err
}
