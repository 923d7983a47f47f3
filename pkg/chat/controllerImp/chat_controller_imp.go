package controllerImp

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"campus/entities"
	"campus/pkg/agent"
	"campus/pkg/ai"
	authservice "campus/pkg/auth/service"
	"campus/pkg/chat/controller"
	"campus/pkg/history/service"
	"campus/pkg/history/serviceImp"
)

type ChatCtrl struct {
	agent   *agent.Dispatcher
	history service.HistoryService
	auth    authservice.AuthService
}

func New(d *agent.Dispatcher, h service.HistoryService, auth authservice.AuthService) controller.ChatController {
	return &ChatCtrl{agent: d, history: h, auth: auth}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatReq struct {
	UserID    string        `json:"user_id"`
	SessionID string        `json:"session_id"`
	Messages  []chatMessage `json:"messages"`
}

type chatResp struct {
	TextResponse string `json:"text_response"`
	SessionID    string `json:"session_id"`
}

// normalize converts incoming messages to the conversation format; blank
// roles default to user.
func normalize(msgs []chatMessage) []ai.Message {
	out := make([]ai.Message, 0, len(msgs))
	for _, m := range msgs {
		role := m.Role
		if role == "" {
			role = ai.RoleUser
		}
		out = append(out, ai.Message{Role: role, Content: m.Content})
	}
	return out
}

// lastUserMessage is what gets persisted as the user side of the exchange.
func lastUserMessage(msgs []chatMessage) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == "" || msgs[i].Role == ai.RoleUser {
			return msgs[i].Content
		}
	}
	return ""
}

func (h *ChatCtrl) Chat(c echo.Context) error {
	var req chatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.UserID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}
	return h.respond(c, req)
}

func (h *ChatCtrl) ChatAuthenticated(c echo.Context) error {
	u, ok := c.Get("user").(*entities.User)
	if !ok || u == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
	}
	var req chatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	req.UserID = u.Username
	return h.respond(c, req)
}

func (h *ChatCtrl) respond(c echo.Context, req chatReq) error {
	if len(req.Messages) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "messages are required"})
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	text, err := h.agent.Run(c.Request().Context(), threadID(req.UserID, req.SessionID), normalize(req.Messages))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	if _, err := h.history.Save(req.UserID, req.SessionID, lastUserMessage(req.Messages), text); err != nil {
		log.Printf("[chat] history save failed for %s: %v", req.UserID, err)
	}
	return c.JSON(http.StatusOK, chatResp{TextResponse: text, SessionID: req.SessionID})
}

func (h *ChatCtrl) StreamPost(c echo.Context) error {
	var req chatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.UserID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}
	return h.stream(c, req)
}

// StreamGet serves EventSource clients, which cannot set headers: the bearer
// token and the messages ride in query params.
func (h *ChatCtrl) StreamGet(c echo.Context) error {
	u, err := h.auth.Resolve(c.QueryParam("token"))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "could not validate credentials"})
	}
	var msgs []chatMessage
	if raw := c.QueryParam("messages"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "messages must be a JSON array"})
		}
	}
	return h.stream(c, chatReq{
		UserID:    u.Username,
		SessionID: c.QueryParam("session_id"),
		Messages:  msgs,
	})
}

func (h *ChatCtrl) stream(c echo.Context, req chatReq) error {
	if len(req.Messages) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "messages are required"})
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)

	ctx := c.Request().Context()
	emit := func(e agent.Event) error {
		// disconnect check at every emission; nothing is written after the
		// client goes away
		if err := ctx.Err(); err != nil {
			return err
		}
		b, err := json.Marshal(e)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(resp, "data: %s\n\n", b); err != nil {
			return err
		}
		resp.Flush()
		return nil
	}

	if err := emit(agent.Event{Type: agent.EventStart, SessionID: req.SessionID}); err != nil {
		return nil
	}

	text, err := h.agent.Stream(ctx, threadID(req.UserID, req.SessionID), normalize(req.Messages), emit)
	if err != nil {
		if ctx.Err() != nil {
			return nil // client gone mid-generation; skip persistence
		}
		_ = emit(agent.Event{Type: agent.EventError, Error: err.Error()})
		return nil
	}

	// generation completed naturally: persist, then report the outcome in-band
	if entry, err := h.history.Save(req.UserID, req.SessionID, lastUserMessage(req.Messages), text); err != nil {
		log.Printf("[chat] history save failed for %s: %v", req.UserID, err)
		_ = emit(agent.Event{Type: agent.EventSaveError, Error: err.Error()})
	} else {
		_ = emit(agent.Event{Type: agent.EventSaved, ID: entry.ID, SessionID: req.SessionID})
	}

	_ = emit(agent.Event{Type: agent.EventFinal, Content: text, SessionID: req.SessionID})
	_ = emit(agent.Event{Type: agent.EventComplete})
	return nil
}

func (h *ChatCtrl) MyHistory(c echo.Context) error {
	u, ok := c.Get("user").(*entities.User)
	if !ok || u == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
	}
	return h.userHistory(c, u.Username)
}

func (h *ChatCtrl) UserHistory(c echo.Context) error {
	return h.userHistory(c, c.Param("user_id"))
}

func (h *ChatCtrl) userHistory(c echo.Context, userID string) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "limit must be an integer"})
		}
		limit = n
	}
	out, err := h.history.UserHistory(userID, limit)
	if err != nil {
		if errors.Is(err, serviceImp.ErrLimitExceeded) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ChatCtrl) SessionHistory(c echo.Context) error {
	chats, err := h.history.SessionHistory(c.Param("user_id"), c.Param("session_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"user_id":    c.Param("user_id"),
		"session_id": c.Param("session_id"),
		"chats":      chats,
	})
}

func (h *ChatCtrl) DeleteUserHistory(c echo.Context) error {
	n, err := h.history.DeleteUser(c.Param("user_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]int64{"deleted": n})
}

func (h *ChatCtrl) Stats(c echo.Context) error {
	stats, err := h.history.Stats()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *ChatCtrl) RecentUsers(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	users, err := h.history.RecentUsers(limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"users": users})
}

// threadID keys reasoning-loop memory per user per session.
func threadID(userID, sessionID string) string { return userID + ":" + sessionID }
