package main

import (
	"context"
	"log"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/live"
	"github.com/Zachkp/folio/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}
	gin.SetMode(cfg.Server.Mode)

	portfolio, err := content.Load(cfg.Content.Path)
	if err != nil {
		log.Fatal("Failed to load content: ", err)
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.Database.Path)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer st.Close()

	srv, err := newServer(cfg, portfolio, st, live.NewHub(), newMailer(cfg.SMTP))
	if err != nil {
		log.Fatal("Failed to parse templates: ", err)
	}

	// Clean up old visitor data for privacy compliance (run in background)
	go srv.cleanupOldVisitorData(ctx)

	r := srv.routes()
	log.Printf("Serving %s on :%s", portfolio.Personal.Name, cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal(err)
	}
}
