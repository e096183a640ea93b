package server

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/thereayou/whisper/internal/config"
	"github.com/thereayou/whisper/internal/handlers"
	"github.com/thereayou/whisper/internal/handlers/dto"
	"github.com/thereayou/whisper/internal/store"
	ws "github.com/thereayou/whisper/internal/websocket"
	"github.com/thereayou/whisper/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	Store      *store.Store
	Hub        *ws.Hub
	Typing     *ws.TypingTracker
	Redis      *redis.Client
	JWTManager *auth.JWTManager

	cfg config.Config
}

func NewServer() (*Server, error) {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	st := store.New()

	hub := ws.NewHub(st.Friends)

	typing := ws.NewTypingTracker(cfg.TypingTTL, func(sender, target uuid.UUID, isTyping bool) {
		evtType := ws.TypeTyping
		if !isTyping {
			evtType = ws.TypeStopTyping
		}
		hub.PublishToUser(target, evtType, dto.TypingEvent{UserID: sender, IsTyping: isTyping})
	})

	// Обрыв последнего соединения гасит все флаги набора текста пользователя
	hub.OnUserOffline = typing.StopAllFrom

	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)

	authH := handlers.NewAuthHandler(st, jwtMgr, rdb, hub)
	userH := handlers.NewUserHandler(st, hub)
	friendH := handlers.NewFriendHandler(st, hub)
	messageH := handlers.NewMessageHandler(st, hub)
	notificationH := handlers.NewNotificationHandler(st)
	eventH := handlers.NewEventHandler(st, hub, typing)
	wsH := handlers.NewWebSocketHandler(hub, eventH, cfg.SendBufferSize)

	router := gin.Default()
	APIEndpoints(router, jwtMgr, rdb, authH, userH, friendH, messageH, notificationH, wsH)

	return &Server{
		Router:     router,
		Store:      st,
		Hub:        hub,
		Typing:     typing,
		Redis:      rdb,
		JWTManager: jwtMgr,
		cfg:        cfg,
	}, nil
}

func (s *Server) Run() error {
	go s.Hub.Run()
	defer s.Hub.Stop()

	log.Printf("Server starting on port %s", s.cfg.Port)
	return s.Router.Run(":" + s.cfg.Port)
}
