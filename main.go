package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	mongoutil "github.com/akhi1986akhi/webChat/data/database/mgo/mongoutil"
	"github.com/akhi1986akhi/webChat/global/config"
	"github.com/akhi1986akhi/webChat/logger"
	"github.com/akhi1986akhi/webChat/middleware"
	"github.com/akhi1986akhi/webChat/module/gateway"
	userapi "github.com/akhi1986akhi/webChat/module/user/api"
	chat "github.com/akhi1986akhi/webChat/service/chat"
	"github.com/akhi1986akhi/webChat/service/chat/handlers"
	"github.com/akhi1986akhi/webChat/service/kafka"
	mgo "github.com/akhi1986akhi/webChat/service/mgo"
	redis "github.com/akhi1986akhi/webChat/service/storage/redis"
)

func main() {
	config.LoadEnv()
	config.ConfigIds()
	cfg := config.Global

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := mgo.Start(ctx, &mongoutil.Config{
		Uri:         cfg.MongoURI,
		Database:    cfg.MongoDatabase,
		MaxPoolSize: 100,
		MaxRetry:    3,
	}); err != nil {
		cancel()
		logger.Errorf("mongo connect failed: %v", err)
		os.Exit(1)
	}
	cancel()

	// redis and kafka degrade to no-ops when absent
	if err := redis.InitRedis(redis.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		PoolSize: 50,
	}); err != nil {
		logger.Warnf("redis unavailable, presence mirror disabled: %v", err)
	}

	topic := ""
	if cfg.KafkaEnabled {
		if err := kafka.InitKafkaClient(cfg.KafkaBrokers); err != nil {
			logger.Warnf("kafka unavailable, message mirror disabled: %v", err)
		} else if err := kafka.InitAsyncProducerFromClient(); err != nil {
			logger.Warnf("kafka producer init failed: %v", err)
		} else {
			topic = cfg.KafkaTopic
		}
	}

	srv := chat.NewServer(cfg.NodeID, gateway.NewStore(), chat.ManagerConf{
		SendQueue:  64,
		SweepEvery: cfg.SweepEvery,
		OrphanTTL:  cfg.OrphanTTL,
	}, topic)
	handlers.RegisterAll(srv)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Cors())

	r.GET("/ws", srv.HandleWS)
	r.GET("/health", func(c *gin.Context) {
		adminOnline, users := srv.HealthSnapshot()
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
			"admin":  adminOnline,
			"users":  users,
		})
	})

	auth := r.Group("/api/auth")
	middleware.POST(auth, "/register", userapi.Register, middleware.RouteOpt{})
	middleware.GET(auth, "/users", userapi.ListUsers, middleware.RouteOpt{IsAuth: true})
	middleware.GET(auth, "/users/:id", userapi.GetUser, middleware.RouteOpt{IsAuth: true})

	httpSrv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Port),
		Handler: r,
	}
	go func() {
		logger.Infof("support chat relay listening on %s", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("http server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(shutdownCtx)
	srv.Shutdown()
	mgo.Stop(shutdownCtx)
	_ = redis.CloseRedis()
}
