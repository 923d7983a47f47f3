package controllerImp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus/database"
	"campus/entities"
	"campus/pkg/agent"
	"campus/pkg/ai"
	authRepoImp "campus/pkg/auth/repositoryImp"
	authservice "campus/pkg/auth/service"
	authSvcImp "campus/pkg/auth/serviceImp"
	"campus/pkg/chat/controller"
	"campus/pkg/history/repository"
	histRepoImp "campus/pkg/history/repositoryImp"
	histSvcImp "campus/pkg/history/serviceImp"
	"campus/pkg/tools"
)

type fixture struct {
	e    *echo.Echo
	ctrl controller.ChatController
	hist *histSvcImp.Svc
	auth *authSvcImp.Svc
	mock *ai.Mock
}

func newFixture(t *testing.T, script ...*ai.Completion) *fixture {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.ChatHistoryEntry{}, &entities.User{}))

	mock := ai.NewMock(script...)
	hist := histSvcImp.New(histRepoImp.New(db))
	auth := authSvcImp.New(authRepoImp.New(db), "test-secret", 30*time.Minute)
	d := agent.NewDispatcher(mock, tools.NewRegistry())

	return &fixture{
		e:    echo.New(),
		ctrl: New(d, hist, auth),
		hist: hist,
		auth: auth,
		mock: mock,
	}
}

func (f *fixture) post(t *testing.T, path, body string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(f.e.NewContext(req, rec)))
	return rec
}

func TestChatReturnsTextAndSession(t *testing.T) {
	f := newFixture(t, &ai.Completion{Content: "Hello Ali!"})

	rec := f.post(t, "/chat", `{"user_id":"ali","messages":[{"role":"user","content":"hello"}]}`, f.ctrl.Chat)
	require.Equal(t, http.StatusOK, rec.Code)

	var out chatResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Hello Ali!", out.TextResponse)
	assert.NotEmpty(t, out.SessionID)

	// the exchange was persisted
	uh, err := f.hist.UserHistory("ali", 0)
	require.NoError(t, err)
	require.Len(t, uh.Chats, 1)
	assert.Equal(t, "hello", uh.Chats[0].UserMessage)
	assert.Equal(t, "Hello Ali!", uh.Chats[0].AIResponse)
}

func TestChatRequiresUserAndMessages(t *testing.T) {
	f := newFixture(t)

	rec := f.post(t, "/chat", `{"messages":[{"content":"hi"}]}`, f.ctrl.Chat)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.post(t, "/chat", `{"user_id":"ali"}`, f.ctrl.Chat)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatKeepsSessionMemory(t *testing.T) {
	f := newFixture(t,
		&ai.Completion{Content: "first"},
		&ai.Completion{Content: "second"},
	)

	rec := f.post(t, "/chat", `{"user_id":"ali","session_id":"s1","messages":[{"content":"one"}]}`, f.ctrl.Chat)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = f.post(t, "/chat", `{"user_id":"ali","session_id":"s1","messages":[{"content":"two"}]}`, f.ctrl.Chat)
	require.Equal(t, http.StatusOK, rec.Code)

	// second turn replays the first exchange from thread memory
	second := f.mock.Calls[1]
	var contents []string
	for _, m := range second {
		contents = append(contents, m.Content)
	}
	assert.Contains(t, contents, "one")
	assert.Contains(t, contents, "first")
	assert.Contains(t, contents, "two")
}

func TestHistoryCapAfterElevenChats(t *testing.T) {
	script := make([]*ai.Completion, 0, 11)
	for i := 1; i <= 11; i++ {
		script = append(script, &ai.Completion{Content: fmt.Sprintf("answer %d", i)})
	}
	f := newFixture(t, script...)

	for i := 1; i <= 11; i++ {
		body := fmt.Sprintf(`{"user_id":"ali","session_id":"s%d","messages":[{"content":"message %d"}]}`, i, i)
		rec := f.post(t, "/chat", body, f.ctrl.Chat)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	uh, err := f.hist.UserHistory("ali", 50)
	require.NoError(t, err)
	assert.EqualValues(t, 10, uh.TotalChats)
	require.Len(t, uh.Chats, 10)
	assert.Equal(t, "message 11", uh.Chats[0].UserMessage)
	for _, chat := range uh.Chats {
		assert.NotEqual(t, "message 1", chat.UserMessage)
	}
}

func TestUserHistoryLimitValidation(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/history/ali?limit=51", nil)
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	c.SetParamNames("user_id")
	c.SetParamValues("ali")
	require.NoError(t, f.ctrl.UserHistory(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/history/ali?limit=abc", nil)
	rec = httptest.NewRecorder()
	c = f.e.NewContext(req, rec)
	c.SetParamNames("user_id")
	c.SetParamValues("ali")
	require.NoError(t, f.ctrl.UserHistory(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteUserHistory(t *testing.T) {
	f := newFixture(t, &ai.Completion{Content: "a"}, &ai.Completion{Content: "b"})
	f.post(t, "/chat", `{"user_id":"ali","messages":[{"content":"1"}]}`, f.ctrl.Chat)
	f.post(t, "/chat", `{"user_id":"ali","messages":[{"content":"2"}]}`, f.ctrl.Chat)

	req := httptest.NewRequest(http.MethodDelete, "/history/ali", nil)
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	c.SetParamNames("user_id")
	c.SetParamValues("ali")
	require.NoError(t, f.ctrl.DeleteUserHistory(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var out map[string]int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.EqualValues(t, 2, out["deleted"])
}

func parseEvents(t *testing.T, body string) []agent.Event {
	t.Helper()
	var events []agent.Event
	for _, line := range strings.Split(body, "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var e agent.Event
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &e))
		events = append(events, e)
	}
	return events
}

func TestStreamEventOrder(t *testing.T) {
	f := newFixture(t, &ai.Completion{Content: "streamed answer"})

	rec := f.post(t, "/stream", `{"user_id":"ali","messages":[{"content":"hi"}]}`, f.ctrl.StreamPost)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/event-stream")

	events := parseEvents(t, rec.Body.String())
	require.NotEmpty(t, events)
	assert.Equal(t, agent.EventStart, events[0].Type)
	assert.Equal(t, agent.EventComplete, events[len(events)-1].Type)

	var types []agent.EventType
	tokens := ""
	for _, e := range events {
		types = append(types, e.Type)
		if e.Type == agent.EventToken {
			tokens += e.Content
		}
	}
	assert.Equal(t, "streamed answer", tokens)

	// saved precedes final_response which precedes complete
	idx := func(tp agent.EventType) int {
		for i, ty := range types {
			if ty == tp {
				return i
			}
		}
		return -1
	}
	require.Greater(t, idx(agent.EventSaved), 0)
	assert.Greater(t, idx(agent.EventFinal), idx(agent.EventSaved))
	assert.Greater(t, idx(agent.EventComplete), idx(agent.EventFinal))

	final := events[idx(agent.EventFinal)]
	assert.Equal(t, "streamed answer", final.Content)
	assert.NotEmpty(t, final.SessionID)

	// the stream persisted the exchange
	uh, err := f.hist.UserHistory("ali", 0)
	require.NoError(t, err)
	require.Len(t, uh.Chats, 1)
	assert.Equal(t, "streamed answer", uh.Chats[0].AIResponse)
}

// disconnectingClient drops the request context right after the first token
// reaches the wire, like a client closing its connection mid-generation.
type disconnectingClient struct {
	inner  ai.Client
	cancel context.CancelFunc
}

func (d *disconnectingClient) Complete(ctx context.Context, msgs []ai.Message, tools []ai.ToolSpec) (*ai.Completion, error) {
	return d.inner.Complete(ctx, msgs, tools)
}

func (d *disconnectingClient) Stream(ctx context.Context, msgs []ai.Message, tools []ai.ToolSpec, onToken func(string) error) (*ai.Completion, error) {
	return d.inner.Stream(ctx, msgs, tools, func(tok string) error {
		err := onToken(tok)
		d.cancel()
		return err
	})
}

func TestStreamClientDisconnectSkipsPersistence(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.ChatHistoryEntry{}, &entities.User{}))
	hist := histSvcImp.New(histRepoImp.New(db))
	auth := authSvcImp.New(authRepoImp.New(db), "test-secret", 30*time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	llm := &disconnectingClient{inner: ai.NewMock(&ai.Completion{Content: "several words here"}), cancel: cancel}
	ctrl := New(agent.NewDispatcher(llm, tools.NewRegistry()), hist, auth)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/stream", strings.NewReader(`{"user_id":"ali","messages":[{"content":"hi"}]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	require.NoError(t, ctrl.StreamPost(e.NewContext(req, rec)))

	events := parseEvents(t, rec.Body.String())
	require.NotEmpty(t, events)
	assert.Equal(t, agent.EventStart, events[0].Type)
	// nothing after the disconnect: no save, no final, no complete
	for _, ev := range events {
		assert.NotEqual(t, agent.EventSaved, ev.Type)
		assert.NotEqual(t, agent.EventSaveError, ev.Type)
		assert.NotEqual(t, agent.EventFinal, ev.Type)
		assert.NotEqual(t, agent.EventComplete, ev.Type)
	}

	// interrupted generation is never persisted
	uh, err := hist.UserHistory("ali", 0)
	require.NoError(t, err)
	assert.Empty(t, uh.Chats)
	assert.EqualValues(t, 0, uh.TotalChats)
}

// failingHistoryRepo rejects every write; reads behave as an empty store.
type failingHistoryRepo struct{}

func (failingHistoryRepo) SaveWithTrim(*entities.ChatHistoryEntry, int) error {
	return errors.New("disk full")
}
func (failingHistoryRepo) CountByUser(string) (int64, error) { return 0, nil }
func (failingHistoryRepo) ListByUser(string, int) ([]entities.ChatHistoryEntry, error) {
	return nil, nil
}
func (failingHistoryRepo) ListBySession(string, string) ([]entities.ChatHistoryEntry, error) {
	return nil, nil
}
func (failingHistoryRepo) DeleteByUser(string) (int64, error)    { return 0, nil }
func (failingHistoryRepo) Stats() (*repository.Stats, error)     { return &repository.Stats{}, nil }
func (failingHistoryRepo) RecentUsers(int) ([]repository.UserActivity, error) {
	return nil, nil
}

func TestStreamSaveFailureEmitsSaveError(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	auth := authSvcImp.New(authRepoImp.New(db), "test-secret", 30*time.Minute)
	hist := histSvcImp.New(failingHistoryRepo{})
	mock := ai.NewMock(&ai.Completion{Content: "answer"})
	ctrl := New(agent.NewDispatcher(mock, tools.NewRegistry()), hist, auth)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/stream", strings.NewReader(`{"user_id":"ali","messages":[{"content":"hi"}]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, ctrl.StreamPost(e.NewContext(req, rec)))

	events := parseEvents(t, rec.Body.String())
	var types []agent.EventType
	for _, ev := range events {
		types = append(types, ev.Type)
		if ev.Type == agent.EventSaveError {
			assert.Contains(t, ev.Error, "disk full")
		}
		assert.NotEqual(t, agent.EventSaved, ev.Type)
	}
	assert.Contains(t, types, agent.EventSaveError)
	// the failure is reported in-band and the stream still runs to the end
	assert.Contains(t, types, agent.EventFinal)
	assert.Equal(t, agent.EventComplete, types[len(types)-1])
}

func TestStreamGetAuthenticatesToken(t *testing.T) {
	f := newFixture(t, &ai.Completion{Content: "ok"})
	_, err := f.auth.Signup(authservice.Signup{Email: "a@x", Username: "ali", Password: "pw"})
	require.NoError(t, err)
	token, _, err := f.auth.Login("ali", "pw")
	require.NoError(t, err)

	msgs := url.QueryEscape(`[{"role":"user","content":"hi"}]`)
	req := httptest.NewRequest(http.MethodGet, "/stream?token="+token+"&messages="+msgs, nil)
	rec := httptest.NewRecorder()
	require.NoError(t, f.ctrl.StreamGet(f.e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	events := parseEvents(t, rec.Body.String())
	require.NotEmpty(t, events)
	assert.Equal(t, agent.EventStart, events[0].Type)

	// bad token never opens a stream
	req = httptest.NewRequest(http.MethodGet, "/stream?token=bogus&messages="+msgs, nil)
	rec = httptest.NewRecorder()
	require.NoError(t, f.ctrl.StreamGet(f.e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStatsAndRecentUsers(t *testing.T) {
	f := newFixture(t, &ai.Completion{Content: "a"}, &ai.Completion{Content: "b"})
	f.post(t, "/chat", `{"user_id":"ali","messages":[{"content":"1"}]}`, f.ctrl.Chat)
	f.post(t, "/chat", `{"user_id":"sara","messages":[{"content":"2"}]}`, f.ctrl.Chat)

	req := httptest.NewRequest(http.MethodGet, "/chats/stats", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, f.ctrl.Stats(f.e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	var stats map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.EqualValues(t, 2, stats["total_chats"])
	assert.EqualValues(t, 2, stats["total_users"])

	req = httptest.NewRequest(http.MethodGet, "/chats/recent-users", nil)
	rec = httptest.NewRecorder()
	require.NoError(t, f.ctrl.RecentUsers(f.e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	var users map[string][]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Len(t, users["users"], 2)
}
