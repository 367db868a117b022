package main

import (
	"log"
	"os"

	"github.com/midbel/cli"
)

const helpText = `{{.Name}} converts X431 diagnostic scanner logs to CSV.

Usage:

  {{.Name}} command [arguments]

The commands are:

{{range .Commands}}{{printf "  %-9s %s" .String .Short}}
{{end}}

Use {{.Name}} [command] -h for more information about its usage.
`

var commands = []*cli.Command{
	{
		Usage: "convert [-c] [-v] [-p profile] [-o output] <file.x431>",
		Short: "convert one log file to CSV",
		Run:   runConvert,
	},
	{
		Usage: "batch [-c] [-p profile] [-w workdir] [-j jobs] <directory>",
		Short: "convert every log file found under a directory",
		Run:   runBatch,
	},
	{
		Usage: "analyze <file.csv>",
		Short: "summarize a converted CSV file",
		Run:   runAnalyze,
	},
	{
		Usage: "info [-p profile] <file.x431>",
		Short: "print the structure of a log file",
		Run:   runInfo,
	},
}

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stdout)
}

func main() {
	cli.RunAndExit(commands, cli.Usage("x431", helpText, commands))
}
