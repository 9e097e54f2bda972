package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"prepwise/config"
	"prepwise/controllers"
	"prepwise/db"
	"prepwise/internal/cache"
	"prepwise/internal/events"
	"prepwise/internal/llm"
	"prepwise/internal/memstore"
	"prepwise/internal/ratelimit"
	"prepwise/routes"
	"prepwise/services"
	"prepwise/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const memoryDatabaseURI = "memory"

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	interviewStore, feedbackStore := setupStores(ctx, cfg)

	generator, closeLLM, err := setupLLM(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize %s client: %v", cfg.LLM.Provider, err)
	}
	defer closeLLM()

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = cache.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
		log.Println("Connected to Redis")
	}

	publisher := setupEvents(cfg, rdb)
	defer publisher.Close()

	interviewSvc := &services.InterviewService{
		Interviews: interviewStore,
		LLM:        generator,
		Events:     publisher,
	}
	if rdb != nil {
		interviewSvc.Drafts = cache.NewRedisDraftStore(rdb, cfg.Interview.DraftTTL)
		interviewSvc.Limiter = ratelimit.NewRedisLimiter(rdb, "interviews", cfg.Interview.GenerationLimit, cfg.Interview.GenerationEvery)
	} else {
		drafts := cache.NewMemoryDraftStore(cfg.Interview.DraftTTL)
		go sweepDrafts(drafts)
		interviewSvc.Drafts = drafts
		interviewSvc.Limiter = ratelimit.NewLocalLimiter(cfg.Interview.GenerationLimit, cfg.Interview.GenerationEvery)
	}

	feedbackSvc := &services.FeedbackService{
		Feedback:   feedbackStore,
		Interviews: interviewStore,
		LLM:        generator,
		Events:     publisher,
	}

	router := setupRouter(cfg, interviewSvc, feedbackSvc)
	port := strconv.Itoa(cfg.Server.Port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Println("server shutdown:", err)
		}
		close(idleConnsClosed)
	}()

	log.Printf("Server starting on port %s", port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
	<-idleConnsClosed

	if cfg.Database.URI != memoryDatabaseURI {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.DisconnectMongoDB(ctx); err != nil {
			log.Printf("Failed to disconnect MongoDB: %v", err)
		}
	}
}

func setupStores(ctx context.Context, cfg *config.Config) (services.InterviewStore, services.FeedbackStore) {
	if cfg.Database.URI == memoryDatabaseURI {
		log.Println("Using in-memory interview store; data is lost on restart")
		return memstore.NewInterviews(), memstore.NewFeedback()
	}

	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	if err := db.EnsureIndexes(ctx); err != nil {
		log.Printf("Failed to create indexes: %v", err)
	}
	return db.NewInterviewRepository(db.MongoDatabase), db.NewFeedbackRepository(db.MongoDatabase)
}

func setupLLM(ctx context.Context, cfg *config.Config) (llm.Generator, func(), error) {
	switch cfg.LLM.Provider {
	case "openai":
		client := llm.NewOpenAI(cfg.Openai.GptApiKey, cfg.Openai.Model, cfg.Openai.BaseURL)
		return llm.Instrumented{Generator: client}, func() {}, nil
	default:
		client, err := llm.NewGemini(ctx, cfg.Gemini.ApiKey, cfg.Gemini.Model)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Printf("Failed to close Gemini client: %v", err)
			}
		}
		return llm.Instrumented{Generator: client}, closeFn, nil
	}
}

func setupEvents(cfg *config.Config, rdb *redis.Client) events.Publisher {
	switch cfg.Events.Backend {
	case "redis":
		if rdb == nil {
			log.Println("Events backend is redis but redis.addr is empty; events disabled")
			return events.Nop{}
		}
		return events.NewStreamPublisher(rdb, cfg.Events.Stream)
	case "rabbitmq":
		pub, err := events.NewRabbitMQPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
		if err != nil {
			log.Printf("Failed to connect to RabbitMQ, events disabled: %v", err)
			return events.Nop{}
		}
		return pub
	default:
		return events.Nop{}
	}
}

func sweepDrafts(drafts *cache.MemoryDraftStore) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		drafts.CleanExpired()
	}
}

func setupRouter(cfg *config.Config, interviewSvc *services.InterviewService, feedbackSvc *services.FeedbackService) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	router.GET("/health", controllers.Health)
	router.GET("/metrics", controllers.Metrics)

	api := router.Group("/api")
	{
		routes.SetupInterviewRoutes(api, &controllers.InterviewController{Interviews: interviewSvc, Feedback: feedbackSvc})
		routes.SetupFeedbackRoutes(api, &controllers.FeedbackController{Feedback: feedbackSvc})
		routes.SetupResumeRoutes(api, &controllers.ResumeController{MaxUploadBytes: cfg.Interview.MaxUploadBytes})
		routes.SetupVoiceRoutes(api, &controllers.VoiceController{PublicKey: cfg.Voice.PublicKey, WorkflowID: cfg.Voice.WorkflowID})
	}

	// Voice call relay
	calls := &websocket.CallHandler{
		Interviews:     interviewSvc,
		Feedback:       feedbackSvc,
		WorkflowID:     cfg.Voice.WorkflowID,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}
	router.GET("/ws/call", calls.Serve)

	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
