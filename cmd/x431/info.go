package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/midbel/cli"

	"x431/decode"
)

func runInfo(cmd *cli.Command, args []string) error {
	profile := cmd.Flag.String("p", "", "format profile file")
	if err := cmd.Flag.Parse(args); err != nil {
		return err
	}
	if cmd.Flag.NArg() != 1 {
		return fmt.Errorf("usage: %s", cmd.Usage)
	}

	file := cmd.Flag.Arg(0)
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	p, err := loadProfile(*profile)
	if err != nil {
		return err
	}

	fmt.Printf("file:        %s\n", filepath.Base(file))
	fmt.Printf("size:        %d bytes\n", len(data))
	if len(data) >= 4 {
		fmt.Printf("magic:       %q\n", string(data[:4]))
	}

	sess, err := decode.NewSessionProfile(data, p)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	fmt.Printf("channels:    %d\n", len(sess.Table()))
	fmt.Printf("record size: %d bytes\n", sess.RecordSize())
	fmt.Printf("rows:        %d\n\n", sess.RowsRemaining())

	for _, d := range sess.Table() {
		sign := "unsigned"
		if d.Signed {
			sign = "signed"
		}
		note := ""
		if !d.Active {
			note = " (inactive)"
		}
		fmt.Printf("%3d: %-32s %-8s width=%d %-8s scale=%g offset=%g%s\n",
			d.Index+1, d.Name, d.Unit, d.Width, sign, d.Scale, d.Offset, note)
	}
	return nil
}
