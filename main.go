package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/allape/gogger"
	"github.com/allape/sysevents/config"
	"github.com/allape/sysevents/factory"
	"github.com/allape/sysevents/logger"
	"github.com/allape/sysevents/overlay"
	"github.com/gin-gonic/gin"
)

var l = gogger.New("main")

func main() {
	conf, err := config.GetConfig()
	if err != nil {
		l.Error().Println("get config:", err)
		os.Exit(1)
	}

	c, err := factory.CaptureFromConfig(conf, runtime.GOOS)
	if err != nil {
		l.Error().Println("capture from config:", err)
		os.Exit(1)
	}
	defer c.Stop()

	o := overlay.New(&overlay.Options{
		Width:  conf.Overlay.Width,
		Height: conf.Overlay.Height,
		Trail:  conf.Overlay.Trail,
	})
	defer overlay.Detach(c, o.Attach(c))

	if !logger.Verbose() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	SetupRoutes(router, c, o, conf)

	server := &http.Server{
		Addr:    conf.Server.Addr,
		Handler: router,
	}

	go func() {
		l.Info().Println("listening on", conf.Server.Addr)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error().Println("listen:", err)
			os.Exit(1)
		}
	}()

	if conf.Capture.Autostart {
		err = c.Start()
		if err != nil {
			l.Error().Println("autostart:", err)
		}
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	l.Info().Println("started")
	sig := <-sigs
	l.Info().Println("exiting with", sig)

	_ = server.Close()
}
