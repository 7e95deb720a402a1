// Command folio-tui browses the portfolio in a terminal.
package main

import (
	"log"

	_ "github.com/joho/godotenv/autoload"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/tui"
	"github.com/Zachkp/folio/internal/widget"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	portfolio, err := content.Load(cfg.Content.Path)
	if err != nil {
		log.Fatal("Failed to load content: ", err)
	}

	t := cfg.Typewriter
	err = tui.Run(portfolio, tui.Options{
		Typewriter: widget.TextRotatorOptions{
			TypeInterval:   t.TypeInterval,
			DeleteInterval: t.DeleteInterval,
			Pause:          t.Pause,
			CursorBlink:    t.CursorBlink,
		},
		Cycler: widget.ImageCyclerOptions{
			Cycle:      cfg.Cycler.Interval,
			StartDelay: cfg.Cycler.StartDelay,
		},
	})
	if err != nil {
		log.Fatal(err)
	}
}
