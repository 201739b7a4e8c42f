package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/annel0/voxel-builder/internal/game"
	"github.com/annel0/voxel-builder/internal/logging"
	"github.com/annel0/voxel-builder/internal/middleware"
	"github.com/annel0/voxel-builder/internal/persist"
	"github.com/annel0/voxel-builder/internal/world/block"
)

// RestServer — REST-поверхность UI: браузерный фронтенд шлёт сюда
// жесты указателя и дискретные команды (save/load/clear/help).
type RestServer struct {
	router     *gin.Engine
	editor     *game.Editor
	metrics    *ServerMetrics
	port       string
	httpServer *http.Server
}

// Config содержит конфигурацию для REST сервера
type Config struct {
	Port   string       // порт для запуска сервера, например ":8090"
	Editor *game.Editor // контроллер редактирования сессии
}

// Метрики HTTP регистрируются в глобальном регистре Prometheus один раз.
var (
	promOnce sync.Once
	promMw   *middleware.PrometheusMiddleware
)

// NewRestServer создает новый REST API сервер
func NewRestServer(config Config) *RestServer {
	if config.Port == "" {
		config.Port = ":8090"
	}

	gin.SetMode(gin.ReleaseMode)

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	// === Observability middleware ===
	loggerMw := middleware.NewRequestLogger()
	router.Use(loggerMw.Handler())

	router.Use(otelgin.Middleware("voxel_api"))

	promOnce.Do(func() {
		promMw = middleware.NewPrometheusMiddleware("voxel_api")
	})
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router)

	server := &RestServer{
		router:  router,
		editor:  config.Editor,
		metrics: NewServerMetrics(),
		port:    config.Port,
	}

	server.setupRoutes()
	return server
}

// setupRoutes настраивает маршруты REST API
func (rs *RestServer) setupRoutes() {
	// Middleware для CORS
	rs.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	rs.router.GET("/health", rs.handleHealth)

	api := rs.router.Group("/api")
	{
		api.GET("/status", rs.handleStatus)

		session := api.Group("/session")
		{
			session.POST("/pointer", rs.handlePointer)
			session.POST("/block-type", rs.handleBlockType)
			session.POST("/camera", rs.handleCamera)
			session.POST("/save", rs.handleSave)
			session.POST("/load", rs.handleLoad)
			session.POST("/clear", rs.handleClear)
			session.GET("/stats", rs.handleStats)
			session.GET("/blocks", rs.handleBlocks)
			session.GET("/help", rs.handleHelp)
		}
	}
}

// Start запускает HTTP-сервер в отдельной горутине
func (rs *RestServer) Start() error {
	rs.httpServer = &http.Server{
		Addr:    rs.port,
		Handler: rs.router,
	}

	go func() {
		if err := rs.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Ошибка REST сервера: %v", err)
		}
	}()

	logging.Info("🌐 REST API запущен на %s", rs.port)
	return nil
}

// Stop останавливает HTTP-сервер с graceful shutdown
func (rs *RestServer) Stop(ctx context.Context) error {
	if rs.httpServer == nil {
		return nil
	}
	return rs.httpServer.Shutdown(ctx)
}

// Router возвращает роутер (для тестов)
func (rs *RestServer) Router() *gin.Engine {
	return rs.router
}

//================ Handlers =================//

type pointerRequest struct {
	X      float64 `json:"x"`      // нормализованная координата в [-1, 1]
	Y      float64 `json:"y"`      // нормализованная координата в [-1, 1]
	Button string  `json:"button"` // primary | secondary
}

type cameraRequest struct {
	Orbit *struct {
		DYaw   float64 `json:"d_yaw"`
		DPitch float64 `json:"d_pitch"`
	} `json:"orbit"`
	Zoom *struct {
		Delta float64 `json:"delta"`
	} `json:"zoom"`
}

type blockTypeRequest struct {
	Type string `json:"type"`
}

type clearRequest struct {
	Confirm bool `json:"confirm"`
}

func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (rs *RestServer) handleStatus(c *gin.Context) {
	cpuPercent, err := rs.metrics.GetCPUUsage()
	if err != nil {
		cpuPercent = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"uptime":      rs.metrics.GetUptime(),
		"memory_mb":   rs.metrics.GetMemoryUsage(),
		"cpu_percent": cpuPercent,
		"blocks":      rs.editor.Stats().Count,
	})
}

// handlePointer обрабатывает жест указателя: primary — установка,
// secondary — удаление. Отклонённая операция — не ошибка HTTP:
// клиент получает changed=false.
func (rs *RestServer) handlePointer(c *gin.Context) {
	var req pointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректное тело запроса"})
		return
	}

	switch req.Button {
	case "primary":
		cell, changed := rs.editor.PlaceAtPointer(req.X, req.Y)
		if !changed {
			c.JSON(http.StatusOK, gin.H{"changed": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"changed": true,
			"action":  "placed",
			"cell":    cell,
			"type":    rs.editor.SelectedBlockType(),
		})
	case "secondary":
		cell, changed := rs.editor.RemoveAtPointer(req.X, req.Y)
		if !changed {
			c.JSON(http.StatusOK, gin.H{"changed": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"changed": true,
			"action":  "removed",
			"cell":    cell,
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("неизвестная кнопка %q", req.Button)})
	}
}

func (rs *RestServer) handleBlockType(c *gin.Context) {
	var req blockTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректное тело запроса"})
		return
	}

	if !rs.editor.SelectBlockType(block.BlockID(req.Type)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "тип блока не указан"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"selected": req.Type,
		"known":    block.IsValidBlockID(block.BlockID(req.Type)),
		"color":    block.ColorOf(block.BlockID(req.Type)),
	})
}

// handleCamera применяет орбиту/зум. Камера — презентационное
// состояние; сетка не меняется.
func (rs *RestServer) handleCamera(c *gin.Context) {
	var req cameraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректное тело запроса"})
		return
	}

	camera := rs.editor.Camera()
	if req.Orbit != nil {
		camera.Orbit(req.Orbit.DYaw, req.Orbit.DPitch)
	}
	if req.Zoom != nil {
		camera.Zoom(req.Zoom.Delta)
	}

	yaw, pitch := camera.Angles()
	c.JSON(http.StatusOK, gin.H{
		"yaw":      yaw,
		"pitch":    pitch,
		"distance": camera.Distance(),
	})
}

func (rs *RestServer) handleSave(c *gin.Context) {
	if err := rs.editor.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true, "blocks": rs.editor.Stats().Count})
}

func (rs *RestServer) handleLoad(c *gin.Context) {
	restored, err := rs.editor.Load()
	if err != nil {
		if errors.Is(err, persist.ErrSaveNotFound) {
			// Единственное видимое пользователю условие отказа.
			c.JSON(http.StatusNotFound, gin.H{"error": "сохранение не найдено"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"loaded": true, "restored": restored})
}

func (rs *RestServer) handleClear(c *gin.Context) {
	var req clearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректное тело запроса"})
		return
	}

	cleared := rs.editor.Clear(game.ConfirmFunc(func(string) bool {
		return req.Confirm
	}))
	c.JSON(http.StatusOK, gin.H{"cleared": cleared})
}

func (rs *RestServer) handleStats(c *gin.Context) {
	stats := rs.editor.Stats()
	if !stats.HasBlocks {
		c.JSON(http.StatusOK, gin.H{
			"count":      0,
			"has_blocks": false,
			"average":    "no blocks",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":      stats.Count,
		"has_blocks": true,
		"average":    stats.Average,
	})
}

func (rs *RestServer) handleBlocks(c *gin.Context) {
	snapshot := rs.editor.Blocks()
	blocks := make([]gin.H, 0, len(snapshot))
	for _, b := range snapshot {
		blocks = append(blocks, gin.H{
			"cell":      b.Cell,
			"type":      b.Type,
			"color":     block.ColorOf(b.Type),
			"placed_at": b.PlacedAt.Unix(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"count": len(blocks), "blocks": blocks})
}

func (rs *RestServer) handleHelp(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"help": game.HelpText})
}
