package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/trivial-api/internal/config"
	"github.com/yourusername/trivial-api/internal/handler"
	"github.com/yourusername/trivial-api/internal/middleware"
	pgRepo "github.com/yourusername/trivial-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/trivial-api/internal/repository/redis"
	"github.com/yourusername/trivial-api/internal/service"
	"github.com/yourusername/trivial-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	roundRepo := pgRepo.NewRoundRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем сервисы
	questionService := service.NewQuestionService(
		questionRepo,
		cacheRepo,
		time.Duration(cfg.Cache.TTLSec)*time.Second,
	)
	userService := service.NewUserService(userRepo)
	roundService := service.NewRoundService(roundRepo, questionRepo, userRepo, &service.RoundConfig{
		QuestionCount: cfg.Round.QuestionCount,
	})

	// Инициализируем обработчики
	rootHandler := handler.NewRootHandler(cfg.Server.BaseURL)
	questionHandler := handler.NewQuestionHandler(questionService)
	userHandler := handler.NewUserHandler(userService)
	roundHandler := handler.NewRoundHandler(roundService)

	rateLimiter := middleware.NewRateLimiter(redisClient)
	writeLimit := rateLimiter.Limit(middleware.WriteRateLimitConfig(
		cfg.RateLimit.MaxRequests, cfg.RateLimit.WindowSec,
	))

	router := gin.Default()

	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	// Метаданные сервиса
	router.GET("/", rootHandler.ServiceInfo)

	// Вопросы
	questions := router.Group("/questions")
	{
		questions.GET("", questionHandler.ListQuestions)
		questions.GET("/random", questionHandler.GetRandomQuestion)
		questions.GET("/category/:category",
			middleware.ExtractCategoryParam("category", "category"),
			questionHandler.GetQuestionsByCategory)
		questions.GET("/difficulty/:difficulty",
			middleware.ExtractDifficultyParam("difficulty", "difficulty"),
			questionHandler.GetQuestionsByDifficulty)
		questions.GET("/:question_id",
			middleware.ExtractUintParam("question_id", "questionID"),
			questionHandler.GetQuestionByID)

		// Мутации пула вопросов ограничены по частоте.
		// TODO: закрыть авторизацией, когда она появится (сейчас сознательно отложена).
		questions.POST("/add", writeLimit, questionHandler.AddQuestion)
		questions.PUT("/update", writeLimit, questionHandler.UpdateQuestion)
		questions.DELETE("/delete", writeLimit, questionHandler.DeleteQuestion)
	}

	// Ответы
	router.GET("/answers/:question_id",
		middleware.ExtractUintParam("question_id", "questionID"),
		questionHandler.GetCorrectAnswer)

	// Пользователи
	users := router.Group("/users")
	{
		users.POST("/create", userHandler.CreateUser)
		users.GET("/:user_id",
			middleware.ExtractUintParam("user_id", "userID"),
			userHandler.GetUser)
	}

	// Раунды
	rounds := router.Group("/rounds")
	{
		rounds.POST("/create", roundHandler.CreateRound)

		roundWithID := rounds.Group("/:round_id")
		roundWithID.Use(middleware.ExtractUintParam("round_id", "roundID"))
		{
			roundWithID.GET("", roundHandler.GetRound)
			roundWithID.GET("/questions/current", roundHandler.GetCurrentQuestion)
			roundWithID.POST("/answers", roundHandler.SubmitAnswer)
			roundWithID.GET("/result", roundHandler.GetResult)
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// После получения сигнала SIGINT или SIGTERM останавливаем сервер
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
