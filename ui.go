package main

import (
	_ "embed"
	"net/http"

	"github.com/allape/sysevents/config"
	"github.com/gin-gonic/gin"
)

//go:embed ui/index.html
var IndexHTML string

func SetupUI(router *gin.Engine, conf config.Config) {
	if conf.Server.UI != "" {
		l.Info().Println("serving ui from", conf.Server.UI)
		router.NoRoute(gin.WrapH(http.FileServer(http.Dir(conf.Server.UI))))
		return
	}

	router.GET("/", func(ctx *gin.Context) {
		ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(IndexHTML))
	})
}
