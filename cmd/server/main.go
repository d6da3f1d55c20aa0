package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/ghabit/internal/config"
	"github.com/ghabit/internal/db"
	"github.com/ghabit/internal/handler"
	"github.com/ghabit/internal/persist"
	"github.com/ghabit/internal/router"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	local := persist.NewDocumentStore(db.DB)

	// 配置了远端地址时优先走远端，失败回退本地
	var provider persist.Provider = local
	if cfg.RemoteAPIURL != "" {
		provider = persist.NewFallback(persist.NewRemote(cfg.RemoteAPIURL), local)
	}

	api := handler.NewAPI(provider, local)

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(api, cfg.SessionSecret)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
