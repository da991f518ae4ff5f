package main

import (
	"net/http"
	"strings"

	"github.com/allape/sysevents/capture"
	"github.com/allape/sysevents/capture/event"
	"github.com/allape/sysevents/config"
	"github.com/allape/sysevents/overlay"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type TraceBody struct {
	Enabled bool `json:"enabled"`
}

type StatusBody struct {
	Active      bool                    `json:"active"`
	Tracing     bool                    `json:"tracing"`
	Backends    []capture.BackendStatus `json:"backends"`
	Subscribers map[string]int          `json:"subscribers"`
}

func status(c *capture.Coordinator) StatusBody {
	subscribers := make(map[string]int, len(event.Kinds()))
	for _, kind := range event.Kinds() {
		subscribers[kind.String()] = c.Subscribers(kind)
	}
	return StatusBody{
		Active:      c.Active(),
		Tracing:     c.Tracing(),
		Backends:    c.Status(),
		Subscribers: subscribers,
	}
}

// parseKinds reads ?kinds=click,scroll, empty means every kind
func parseKinds(query string) ([]event.Kind, error) {
	if strings.TrimSpace(query) == "" {
		return event.Kinds(), nil
	}
	var kinds []event.Kind
	for _, s := range strings.Split(query, ",") {
		kind, err := event.ParseKind(s)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

func SetupRoutes(router *gin.Engine, c *capture.Coordinator, o *overlay.Overlay, conf config.Config) {
	upgrader := websocket.Upgrader{}

	if conf.Server.Cors {
		router.Use(cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodPut},
			AllowHeaders:    []string{"Origin", "Content-Type"},
		}))
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	}

	api := router.Group("/api/capture")

	api.POST("/start", func(ctx *gin.Context) {
		err := c.Start()
		if err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "status": status(c)})
			return
		}
		ctx.JSON(http.StatusOK, status(c))
	})

	api.POST("/stop", func(ctx *gin.Context) {
		c.Stop()
		ctx.JSON(http.StatusOK, status(c))
	})

	api.GET("/position", func(ctx *gin.Context) {
		pos, ok := c.LastKnownPosition()
		if !ok {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "position unknown"})
			return
		}
		ctx.JSON(http.StatusOK, pos)
	})

	api.GET("/status", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, status(c))
	})

	api.PUT("/trace", func(ctx *gin.Context) {
		var body TraceBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.SetTracing(body.Enabled)
		ctx.JSON(http.StatusOK, TraceBody{Enabled: c.Tracing()})
	})

	router.GET(conf.Server.WSPath, func(ctx *gin.Context) {
		kinds, err := parseKinds(ctx.Query("kinds"))
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
		if err != nil {
			l.Warn().Println("upgrade:", err)
			return
		}

		client := NewWebsocketEventClient(conn)
		defer func() {
			_ = client.Close()
		}()

		l.Info().Println("websocket client connected:", ctx.ClientIP(), kinds)
		err = client.Serve(c, kinds)
		if err != nil {
			l.Warn().Println("websocket client:", err)
		}
		l.Info().Println("websocket client gone:", ctx.ClientIP(), "dropped", client.Dropped())
	})

	if o != nil {
		router.GET("/overlay.png", func(ctx *gin.Context) {
			ctx.Header("Content-Type", "image/png")
			ctx.Header("Cache-Control", "no-store")
			ctx.Status(http.StatusOK)
			if err := o.WritePNG(ctx.Writer); err != nil {
				ctx.Status(http.StatusInternalServerError)
			}
		})
	}

	SetupUI(router, conf)
}
