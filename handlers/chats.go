package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/das-globally-web/discovery-backend/chat"
	"github.com/das-globally-web/discovery-backend/models"
)

// ChatHandlers serves the request/response read path over the message store:
// inbox, history, and mark-seen.
type ChatHandlers struct {
	Engine     *chat.Engine
	Projection *chat.Projection
}

type inboxResponse struct {
	Message string           `json:"message"`
	Inbox   []chat.InboxEntry `json:"inbox"`
	Status  int              `json:"status"`
}

type historyResponse struct {
	Message string              `json:"message"`
	Chat    []chat.HistoryEntry `json:"chat"`
	Status  int                 `json:"status"`
}

type statusResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println("Error encoding response:", err)
	}
}

// GetInbox handles GET /chats/inbox?user_id=
func (h *ChatHandlers) GetInbox(w http.ResponseWriter, r *http.Request) {
	callerID := r.URL.Query().Get("user_id")
	if callerID == "" {
		http.Error(w, "Missing user_id", http.StatusBadRequest)
		return
	}

	entries, err := h.Projection.ListInbox(r.Context(), callerID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			respond(w, http.StatusNotFound, statusResponse{Message: "No conversations found", Status: http.StatusNotFound})
			return
		}
		http.Error(w, "Unable to fetch inbox", http.StatusInternalServerError)
		log.Println("Error fetching inbox:", err)
		return
	}

	respond(w, http.StatusOK, inboxResponse{
		Message: "All conversations",
		Inbox:   entries,
		Status:  http.StatusOK,
	})
}

// GetHistory handles GET /chats/history/{peerId}?user_id=
func (h *ChatHandlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	callerID := r.URL.Query().Get("user_id")
	if callerID == "" {
		http.Error(w, "Missing user_id", http.StatusBadRequest)
		return
	}

	peerID := r.PathValue("peerId")
	if peerID == "" {
		http.Error(w, "Missing peer id", http.StatusBadRequest)
		return
	}

	entries, err := h.Projection.ListHistory(r.Context(), callerID, peerID)
	if err != nil {
		http.Error(w, "Unable to fetch chat history", http.StatusInternalServerError)
		log.Println("Error fetching chat history:", err)
		return
	}

	respond(w, http.StatusOK, historyResponse{
		Message: "All chats",
		Chat:    entries,
		Status:  http.StatusOK,
	})
}

// MarkSeen handles POST /chats/mark_seen/{conversationId}?user_id=
func (h *ChatHandlers) MarkSeen(w http.ResponseWriter, r *http.Request) {
	callerID := r.URL.Query().Get("user_id")
	if callerID == "" {
		http.Error(w, "Missing user_id", http.StatusBadRequest)
		return
	}

	conversationID, err := strconv.Atoi(r.PathValue("conversationId"))
	if err != nil {
		http.Error(w, "Invalid conversation id", http.StatusBadRequest)
		return
	}

	err = h.Engine.MarkSeen(r.Context(), conversationID, callerID)
	switch {
	case errors.Is(err, models.ErrNotFound):
		respond(w, http.StatusNotFound, statusResponse{Message: "Conversation not found", Status: http.StatusNotFound})
	case errors.Is(err, models.ErrNotParticipant):
		respond(w, http.StatusForbidden, statusResponse{Message: "Not authorized to access this chat", Status: http.StatusForbidden})
	case err != nil:
		http.Error(w, "Unable to mark messages as seen", http.StatusInternalServerError)
		log.Println("Error marking messages as seen:", err)
	default:
		respond(w, http.StatusOK, statusResponse{Message: "Messages marked as seen", Status: http.StatusOK})
	}
}
