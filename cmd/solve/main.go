// Command solve fetches a nonograms.org puzzle and prints its solution
// to the terminal.
//
//	solve [-kind color|bw] [-steps] <puzzle URL or ID>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/nonogram-server/internal/crawler"
	"github.com/vancomm/nonogram-server/internal/nonogram"
)

var (
	log = logrus.New()

	kindFlag  string
	showSteps bool
	timeout   time.Duration
)

func init() {
	flag.StringVar(&kindFlag, "kind", "", "puzzle kind (color or bw, overrides URL autodetect)")
	flag.BoolVar(&showSteps, "steps", false, "print the grid after every solving round")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "fetch timeout")
}

func main() {
	flag.Parse()
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: solve [flags] <puzzle URL or ID>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	kind, puzzleID, err := crawler.ParseID(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	switch kindFlag {
	case "":
	case string(crawler.Color), string(crawler.BlackWhite):
		kind = crawler.Kind(kindFlag)
	default:
		log.Fatalf("unknown puzzle kind %q", kindFlag)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log.Infof("fetching %s puzzle %s", kind, puzzleID)
	puzzle, err := crawler.New(nil).Fetch(ctx, kind, puzzleID)
	if err != nil {
		log.Fatal("unable to fetch puzzle: ", err)
	}
	log.Infof("%dx%d cells, %d colors", puzzle.Rows(), puzzle.Cols(), len(puzzle.Palette))

	if showSteps {
		steps, err := nonogram.SolveSteps(puzzle)
		if err != nil {
			log.Fatal(err)
		}
		for i, grid := range steps.Grids {
			fmt.Printf("round %d/%d\n", i, len(steps.Grids)-1)
			fmt.Print(render(steps.Palette, grid))
		}
		return
	}

	solution, err := nonogram.Solve(puzzle)
	if err != nil {
		log.Fatal(err)
	}
	if !solution.Solved() {
		log.Warn("line solving alone could not determine every cell")
	}
	fmt.Print(render(solution.Palette, solution.Grid))
}

// render draws the grid with truecolor backgrounds, two columns per
// cell; undetermined cells come out as "··".
func render(palette []string, grid [][]nonogram.Mask) string {
	var b strings.Builder
	for _, row := range grid {
		for _, mask := range row {
			color := mask.Color()
			if color < 0 || color >= len(palette) {
				b.WriteString("··")
				continue
			}
			r, g, bl, err := parseHex(palette[color])
			if err != nil {
				b.WriteString("??")
				continue
			}
			fmt.Fprintf(&b, "\x1b[48;2;%d;%d;%dm  \x1b[0m", r, g, bl)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func parseHex(s string) (r, g, b uint8, err error) {
	_, err = fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b)
	return r, g, b, err
}
