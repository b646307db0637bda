package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TLMHoang/TriviaAPI/internal/middleware"
)

// Handlers объединяет обработчики всех маршрутов
type Handlers struct {
	Question *QuestionHandler
	Category *CategoryHandler
	Quiz     *QuizHandler
	Health   *HealthHandler
}

// RouterOptions - настройки роутера
type RouterOptions struct {
	Logger       *zap.Logger
	AllowOrigins []string
	// WriteLimit применяется к изменяющим маршрутам (создание и удаление вопроса); nil - без ограничения
	WriteLimit gin.HandlerFunc
}

// NewRouter создает gin.Engine со всеми middleware и маршрутами.
// Маршруты доступны от корня и под префиксом /api.
func NewRouter(h Handlers, opts RouterOptions) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(logger))
	router.Use(cors.New(corsConfig(opts.AllowOrigins)))

	router.NoRoute(func(c *gin.Context) {
		abortWithStatus(c, http.StatusNotFound)
	})
	router.NoMethod(func(c *gin.Context) {
		abortWithStatus(c, http.StatusMethodNotAllowed)
	})

	router.GET("/health", h.Health.Health)

	registerRoutes(router.Group(""), h, opts.WriteLimit)
	registerRoutes(router.Group("/api"), h, opts.WriteLimit)

	return router
}

func registerRoutes(rg *gin.RouterGroup, h Handlers, writeLimit gin.HandlerFunc) {
	write := func(handler gin.HandlerFunc, extra ...gin.HandlerFunc) []gin.HandlerFunc {
		chain := make([]gin.HandlerFunc, 0, len(extra)+2)
		if writeLimit != nil {
			chain = append(chain, writeLimit)
		}
		chain = append(chain, extra...)
		return append(chain, handler)
	}

	categories := rg.Group("/categories")
	{
		categories.GET("", h.Category.ListCategories)
		categories.GET("/:id/questions", middleware.ExtractUintParam("id", "categoryID"), h.Category.QuestionsByCategory)
	}

	questions := rg.Group("/questions")
	{
		questions.GET("", h.Question.ListQuestions)
		questions.GET("/export", h.Question.ExportQuestions)
		questions.POST("", write(h.Question.CreateQuestion)...)
		questions.POST("/search", h.Question.SearchQuestions)
		// Удаление несуществующего вопроса - 422, в том числе для id вне диапазона uint
		questions.DELETE("/:id", write(h.Question.DeleteQuestion,
			middleware.ExtractUintParamWithRangeStatus("id", "questionID", http.StatusUnprocessableEntity))...)
	}

	rg.POST("/quizzes", h.Quiz.NextQuestion)
}

// corsConfig разрешает методы и заголовки, которые использует фронтенд
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "PATCH", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
