package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gookit/color"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/terminal"
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/devtools"
	"delvegen/pkg/game/levelgen"
	"delvegen/pkg/game/script"
	"delvegen/pkg/game/themes"
)

func main() {
	seed := flag.Uint64("seed", 1, "level seed")
	depth := flag.Int("depth", 1, "dungeon depth of the level")
	bottom := flag.Bool("bottom", false, "generate a bottom level (no down stairs)")
	themed := flag.Bool("themes", false, "build random levels from the themed room catalogue")
	dev := flag.Bool("dev", false, "generate the developer showcase level instead of a random one")
	retries := flag.Int("retries", 1, "seeds to try when a level fails its checks")
	colour := flag.String("color", "auto", "colour the map: auto, always or never")
	full := flag.Bool("full", false, "print the full dump instead of the map only")
	drawLog := flag.String("drawlog", "", "write the draw log to this file")
	compare := flag.String("compare", "", "compare the draws against a recorded draw log")
	html := flag.String("html", "", "also write an HTML screenshot to this file")
	flag.Parse()

	var opts []levelgen.Option
	if *bottom {
		opts = append(opts, levelgen.WithBottom())
	}
	if *themed {
		opts = append(opts, levelgen.WithThemes(themes.Catalogue()))
	}
	draws := rng.NewDrawLog()
	opts = append(opts, levelgen.WithDrawLog(draws))

	var sc *script.Script
	if *dev {
		sc = devtools.DevScript()
	}

	l, err := levelgen.GenerateWithRetry(*seed, *depth, sc, *retries, opts...)
	if err != nil {
		log.Fatalf("generation failed: %v", err)
	}

	useColour := terminal.UseColour(os.Stdout, *colour)
	if !useColour {
		color.Enable = false
	}
	if !terminal.Fits(os.Stdout, world.Cols) {
		log.Printf("terminal narrower than %d columns, the map will wrap", world.Cols)
	}

	if *full {
		if err := devtools.DumpLevel(os.Stdout, l, useColour); err != nil {
			log.Fatalf("dump: %v", err)
		}
	} else {
		fmt.Printf("depth %d, seed %d, %d draws, %d rooms\n", l.Depth(), l.Seed(), l.DrawCount(), len(l.Rooms()))
		for _, line := range devtools.MapLines(l, useColour) {
			fmt.Println(line)
		}
	}

	if *drawLog != "" {
		if err := writeDrawLog(*drawLog, draws); err != nil {
			log.Fatalf("draw log: %v", err)
		}
	}
	if *html != "" {
		if err := devtools.SaveScreenshotHTML(l, *html); err != nil {
			log.Fatalf("html: %v", err)
		}
	}
	if *compare != "" {
		f, err := os.Open(*compare)
		if err != nil {
			log.Fatalf("compare: %v", err)
		}
		want, err := devtools.ReadDrawLog(f)
		f.Close()
		if err != nil {
			log.Fatalf("compare: %v", err)
		}
		if _, diverged := devtools.FirstDivergence(os.Stdout, want, draws.Draws(), 10); diverged {
			os.Exit(1)
		}
		fmt.Printf("draws match (%d)\n", len(want))
	}
}

func writeDrawLog(path string, draws *rng.DrawLog) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := devtools.WriteDrawLog(f, draws.Draws()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
