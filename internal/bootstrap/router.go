package bootstrap

import (
	"database/sql"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/nordiccodeworks/portfolio-backend/config"
	httpapi "github.com/nordiccodeworks/portfolio-backend/internal/api/http"
	"github.com/nordiccodeworks/portfolio-backend/internal/api/http/middleware"
	chatbothttp "github.com/nordiccodeworks/portfolio-backend/internal/chatbot/http"
	"github.com/nordiccodeworks/portfolio-backend/internal/chatbot/langdetect"
	chatbotrepo "github.com/nordiccodeworks/portfolio-backend/internal/chatbot/repository"
	chatbotservice "github.com/nordiccodeworks/portfolio-backend/internal/chatbot/service"
	projectcache "github.com/nordiccodeworks/portfolio-backend/internal/projects/cache"
	projecthttp "github.com/nordiccodeworks/portfolio-backend/internal/projects/http"
	projectrepo "github.com/nordiccodeworks/portfolio-backend/internal/projects/repository"
	projectservice "github.com/nordiccodeworks/portfolio-backend/internal/projects/service"
)

type RouterDeps struct {
	ServiceName string
	Config      *config.Config
	DB          *sql.DB
	Redis       *redis.Client
	Completer   chatbotservice.Completer
	Publisher   chatbotservice.LogPublisher
}

// BuildRouter wires every HTTP dependency into a gin engine. All state the
// handlers need is constructed here from the explicit deps; nothing reads
// configuration after this point.
func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Config.App.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	projRepo := projectrepo.NewProjectRepository(dep.DB)
	projCache := projectcache.NewProjectCache(dep.Redis, dep.Config.Redis.CacheTTL)
	projSvc := projectservice.NewProjectService(projRepo, projCache)
	projecthttp.New(projSvc).Register(api.Group("/projects"))

	detector := langdetect.New(dep.Config.Chatbot.DefaultLanguage)
	respCache := chatbotrepo.NewResponseCache(dep.Redis, dep.Config.Chatbot.HashPepper, dep.Config.Chatbot.ResponseCacheTTL)
	chatLogs := chatbotrepo.NewChatLogRepository(dep.DB)
	chatSvc := chatbotservice.NewChatService(detector, dep.Completer, respCache, dep.Publisher)

	chatLimiter := middleware.NewRateLimiter(dep.Config.RateLimit.ChatPerMinute, dep.Config.RateLimit.ChatBurst)
	chatbothttp.New(chatSvc, chatLogs).Register(api.Group("/chat"), chatLimiter.Middleware())

	return r
}
