package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"astro-search-app/config"
	"astro-search-app/internal/arxiv"
	"astro-search-app/internal/embedding"
	"astro-search-app/internal/envHelper"
	"astro-search-app/internal/server"
	"astro-search-app/internal/store"
)

var (
	healthStatus bool
	healthMutex  sync.Mutex
)

func main() {
	// Load environment variables
	envHelper.LoadEnv()

	mongoURI := envHelper.GetEnvVariable("MONGODB_URI")
	dbName := envHelper.GetEnvVariableWithDefault("MONGODB_DATABASE", "Astra")
	cfg := config.Load()
	log.Println("Environment variables loaded successfully.")

	// Set up mongo connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal("Error connecting to database:", err)
	}
	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		log.Fatal("Error pinging database:", err)
	} else {
		log.Println("Database pinged successfully.")
	}

	documentStore := store.New(client.Database(dbName), "documents", cfg.Search.IndexName)

	// The embedding service is built once and shared; the model behind it is
	// expensive to load, so it must never be reconstructed per request.
	embedder := embedding.New(cfg.Embedding.BaseURL, cfg.Embedding.Model, cfg.Embedding.Dimensions)
	log.Printf("Embedding model: %s (%d dimensions)\n", embedder.ModelName(), embedder.Dimensions())

	fetcher := arxiv.New(cfg.Arxiv.BaseURL, cfg.Arxiv.MinimumGapBetweenRequests)

	s := server.New(fetcher, embedder, documentStore, cfg)

	// Start a timer for periodic health checks of the embedding host
	go func() {
		embedder.CheckHealth(&healthStatus, &healthMutex)
		for {
			time.Sleep(1 * time.Minute) // Adjust the interval as needed
			embedder.CheckHealth(&healthStatus, &healthMutex)
		}
	}()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"https://astro-ai-sigma.vercel.app",
		},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/", func(c *gin.Context) {
		host, _ := os.Hostname()
		c.JSON(http.StatusOK, gin.H{"hostname": host})
	})

	r.GET("/health", func(c *gin.Context) {
		// Return the global health status
		healthMutex.Lock()
		healthy := healthStatus
		healthMutex.Unlock()
		c.JSON(http.StatusOK, gin.H{"healthy": healthy})
	})

	r.POST("/get_documents", s.GetDocuments)
	r.POST("/embed_documents", s.EmbedDocuments)
	r.POST("/embedding", s.Embedding)
	r.POST("/vector_search", s.VectorSearch)

	r.Run()
}
