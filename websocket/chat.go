package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/das-globally-web/discovery-backend/database"
	"github.com/das-globally-web/discovery-backend/models"
	"github.com/das-globally-web/discovery-backend/registry"
	"github.com/gorilla/websocket"
)

// HandleChat serves GET /chat/ws/{userId}. Inbound frames are
// {receiverId, message}; delivery pushes {senderId, message} to the
// receiver's live connection after persistence.
func (g *Gateway) HandleChat(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		http.Error(w, "Missing user id", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	live := registry.NewConnection(userID, conn)
	live.Start()
	if prev := g.Registry.Register(live); prev != nil {
		prev.Close(websocket.ClosePolicyViolation, "replaced by newer connection")
	}

	if err := database.SetOnline(r.Context(), userID, conn.RemoteAddr().String()); err != nil {
		log.Printf("Error recording user %s as online: %v", userID, err)
	}

	defer func() {
		if g.Registry.Deregister(live) {
			if err := database.SetOffline(context.Background(), userID); err != nil {
				log.Printf("Error recording user %s as offline: %v", userID, err)
			}
		}
		live.Close(websocket.CloseNormalClosure, "")
		log.Printf("Chat connection closed for user %s", userID)
	}()

	for {
		var frame ChatFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}

		if _, err := g.Chat.SendMessage(r.Context(), userID, frame.ReceiverID, frame.Message); err != nil {
			var verr *models.ValidationError
			if errors.As(err, &verr) {
				g.sendError(live, verr.Error())
				continue
			}
			// Persistence failure: the operation failed, the channel stays open.
			log.Printf("Error delivering message from user %s: %v", userID, err)
			g.sendError(live, "could not deliver message")
		}
	}
}

func (g *Gateway) sendError(live *registry.Connection, msg string) {
	data, err := json.Marshal(ErrorFrame{Error: msg})
	if err != nil {
		return
	}
	if err := live.Send(data); err != nil {
		log.Printf("Error sending error frame to user %s: %v", live.UserID, err)
	}
}
