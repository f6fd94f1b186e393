// mkicon writes the PWA app icons icon-192.png and icon-512.png into the
// current directory.
// Usage: go run ./cmd/mkicon
package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/dustin/go-humanize"

	"github.com/neurodata/pwaicons/internal/config"
	"github.com/neurodata/pwaicons/internal/render"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "help", "-h", "--help":
			printUsage()
			return
		case "version", "-V", "--version":
			printVersion()
			return
		default:
			fmt.Fprintf(os.Stderr, "Error: unexpected argument %q\n", os.Args[1])
			fmt.Fprintf(os.Stderr, "Run 'mkicon help' for usage.\n")
			os.Exit(1)
		}
	}

	if err := run(".", os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run writes the default icon set into dir and reports each file on out.
func run(dir string, out io.Writer) error {
	results, err := render.WriteAll(dir, config.Default())
	for _, r := range results {
		fmt.Fprintf(out, "Created %s (%dx%d, %s)\n",
			r.Path, r.Width, r.Height, humanize.Bytes(uint64(r.Size)))
	}
	return err
}

func printVersion() {
	fmt.Printf("mkicon %s (%s) %s/%s\n", version, buildDate, runtime.GOOS, runtime.GOARCH)
}

func printUsage() {
	fmt.Printf("mkicon %s - Generate the PWA app icons\n", version)
	fmt.Println(`
Usage:
  mkicon                 Write icon-192.png and icon-512.png to the current directory

Commands:
  version, -V            Show version and build date
  help, -h, --help       Show this help message

Existing icons are replaced atomically; a failed run leaves them untouched.`)
}
