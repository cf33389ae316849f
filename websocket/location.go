package websocket

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/das-globally-web/discovery-backend/models"
	"github.com/das-globally-web/discovery-backend/registry"
	"github.com/gorilla/websocket"
)

// HandleLocation serves GET /user/location/{userId}. Every inbound
// {latitude, longitude} frame triggers a full neighbor rescan: the caller
// gets their complete nearbyUsers snapshot and in-range peers get a newUser
// notification. Closing the socket drops the position record; peers are not
// told the user left.
func (g *Gateway) HandleLocation(w http.ResponseWriter, r *http.Request) {
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

	defer func() {
		if err := g.Proximity.Disconnect(context.Background(), live); err != nil {
			log.Printf("Error cleaning up position for user %s: %v", userID, err)
		}
		live.Close(websocket.CloseNormalClosure, "")
		log.Printf("Location connection closed for user %s", userID)
	}()

	for {
		var frame LocationFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}

		if _, err := g.Proximity.UpdatePosition(r.Context(), userID, frame.Latitude, frame.Longitude); err != nil {
			var verr *models.ValidationError
			if errors.As(err, &verr) {
				g.sendError(live, verr.Error())
				continue
			}
			log.Printf("Error updating position for user %s: %v", userID, err)
			g.sendError(live, "could not update position")
		}
	}
}
