package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"musicbingo/config"
	"musicbingo/internal/content"
	"musicbingo/internal/game"
	"musicbingo/internal/handlers"
	"musicbingo/internal/redis"
)

func main() {
	cfg := config.Load()

	rdb, err := redis.Connect(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
		log.Println("Redis lookup cache enabled")
	}

	// Pick the content supplier: the LLM when an API key is set,
	// otherwise the embedded catalog for fully offline play.
	var supplier content.Supplier
	llm := content.NewLLMSupplier(cfg.Supplier.APIKey, cfg.Supplier.APIURL, cfg.Supplier.Model, cfg.Supplier.Timeout)
	if llm.IsAvailable() {
		supplier = llm
		log.Printf("Content supplier: %s via %s", cfg.Supplier.Model, cfg.Supplier.APIURL)
	} else {
		supplier = content.NewCatalogSupplier(cfg.Game.Languages...)
		log.Println("Content supplier: embedded catalog (no API key configured)")
	}

	generator := content.NewGenerator(supplier, content.RetryPolicy{
		MaxAttempts: cfg.Supplier.MaxAttempts,
		Backoff:     cfg.Supplier.Backoff,
	})
	if rdb != nil {
		cache := content.NewLookupCache(rdb, cfg.Supplier.CacheTTL)
		generator.WithEnricher(content.NewDeezerClient(cache))
	} else {
		generator.WithEnricher(content.NewDeezerClient(nil))
	}

	ranges := game.DefaultColumnRanges()
	if cfg.Game.MaxSlot != 75 {
		ranges = game.RangesForSpan(cfg.Game.MaxSlot)
	}
	cards := game.NewCardGenerator(time.Now().UnixNano(), ranges)

	manager := game.NewManager(cards, generator, game.Config{
		InitialBatch: cfg.Game.InitialBatch,
		BatchSize:    cfg.Game.BatchSize,
		PoolTarget:   cfg.Game.PoolTarget,
		MaxSlot:      cfg.Game.MaxSlot,
	})

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(handlers.OriginFilter(cfg.AllowedOrigins))

	api := router.Group("/api")
	{
		api.GET("/health", handlers.Health)
		api.GET("/network-info", handlers.NetworkInfo(cfg.Port))
		api.POST("/rooms", handlers.CreateRoom(manager))
		api.GET("/rooms/:code", handlers.GetRoom(manager))
	}

	sockets := handlers.NewSocketServer(manager)
	router.GET("/ws/rooms/:code", sockets.Handle())

	log.Printf("Music bingo server listening on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
