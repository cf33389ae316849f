package main

import (
	"log"
	"net/http"

	"github.com/das-globally-web/discovery-backend/chat"
	"github.com/das-globally-web/discovery-backend/config"
	"github.com/das-globally-web/discovery-backend/database"
	"github.com/das-globally-web/discovery-backend/handlers"
	"github.com/das-globally-web/discovery-backend/proximity"
	"github.com/das-globally-web/discovery-backend/registry"
	"github.com/das-globally-web/discovery-backend/users"
	"github.com/das-globally-web/discovery-backend/websocket"

	"github.com/rs/cors"
)

func main() {
	// Initialize PostgreSQL & Redis
	database.InitPostgres()
	database.InitRedis()

	// Run database migrations
	database.RunMigrations()

	// One registry instance shared by both real-time features
	reg := registry.New()

	store := chat.NewPgStore(database.DB)
	directory := users.NewPgDirectory(database.DB)
	positions := proximity.NewRedisPositionStore(database.RedisClient)

	gateway := &websocket.Gateway{
		Registry:  reg,
		Chat:      chat.NewEngine(store, reg),
		Proximity: proximity.NewEngine(positions, reg, directory),
	}

	chatHandlers := &handlers.ChatHandlers{
		Engine:     gateway.Chat,
		Projection: chat.NewProjection(store, directory),
	}

	// Real-time channels, keyed by path-embedded user id
	http.HandleFunc("GET /chat/ws/{userId}", gateway.HandleChat)
	http.HandleFunc("GET /user/location/{userId}", gateway.HandleLocation)

	// Read endpoints
	http.HandleFunc("GET /chats/inbox", chatHandlers.GetInbox)
	http.HandleFunc("GET /chats/history/{peerId}", chatHandlers.GetHistory)
	http.HandleFunc("POST /chats/mark_seen/{conversationId}", chatHandlers.MarkSeen)

	// Set up CORS
	c := cors.AllowAll()
	handler := c.Handler(http.DefaultServeMux)

	port := config.GetEnv("PORT", "8080")
	log.Println("Discovery backend is running...")
	log.Println("Listening on port " + port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
