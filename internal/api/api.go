package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/zakatkuy/amil/internal/api/controller"
	"github.com/zakatkuy/amil/internal/pkg/logger"
	"github.com/zakatkuy/amil/internal/service/assistant"
	"github.com/zakatkuy/amil/internal/service/zakat"
)

type Config struct {
	Secret      string
	CORSOrigins []string
	LogLevel    string
}

type APIService struct {
	router           *echo.Echo
	secret           string
	zakatService     *zakat.Service
	assistantService *assistant.Service
}

func (svc *APIService) Serve(addr string) {
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal(context.Background(), err)
	}
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func (svc *APIService) Handler() http.Handler {
	return svc.router
}

func NewAPIService(cfg Config, zakatService *zakat.Service, assistantService *assistant.Service, backfill controller.BackfillFunc) (*APIService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("empty server secret")
	}

	svc := &APIService{
		router:           echo.New(),
		secret:           cfg.Secret,
		zakatService:     zakatService,
		assistantService: assistantService,
	}

	svc.router.HideBanner = true
	svc.router.Logger.SetLevel(gommonLevel(cfg.LogLevel))
	svc.router.JSONSerializer = Serializer{}
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.Use(middleware.Logger())
	svc.router.Use(middleware.Recover())
	svc.router.HTTPErrorHandler = httpErrorHandler

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     origins,
		AllowMethods:     []string{echo.GET, echo.POST, echo.DELETE},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(svc.zakatService, svc.assistantService, backfill)

	api.GET("/years", cntrl.GetYears)
	api.GET("/provinces", cntrl.GetProvinces)
	api.GET("/summary", cntrl.GetSummary)
	api.GET("/map", cntrl.GetMap)
	api.GET("/distribution", cntrl.GetDistribution)

	trend := api.Group("/trend")
	trend.GET("", cntrl.GetTrend)
	trend.GET("/provinces", cntrl.GetProvinceTrend)

	records := api.Group("/records", svc.AdminMiddleware)
	records.POST("/backfill", cntrl.BackfillRecords)

	chat := api.Group("/chat", svc.SessionMiddleware)
	chat.GET("", cntrl.GetChat)
	chat.POST("", cntrl.PostChat)
	chat.DELETE("", cntrl.DeleteChat)
	chat.GET("/backends", cntrl.GetChatBackends)

	return svc, nil
}

func gommonLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
