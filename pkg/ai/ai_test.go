package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failing struct{}

func (failing) Complete(context.Context, []Message, []ToolSpec) (*Completion, error) {
	return nil, errors.New("transport down")
}

func (failing) Stream(context.Context, []Message, []ToolSpec, func(string) error) (*Completion, error) {
	return nil, errors.New("transport down")
}

func TestChainFallsThroughToStatic(t *testing.T) {
	c := NewChain(failing{}, failing{}, NewStatic(DefaultApology))
	comp, err := c.Complete(context.Background(), []Message{User("hi")}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultApology, comp.Content)
}

func TestChainPrefersPrimary(t *testing.T) {
	c := NewChain(NewMock(&Completion{Content: "primary"}), NewStatic("never"))
	comp, err := c.Complete(context.Background(), []Message{User("hi")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "primary", comp.Content)
}

func TestChainStreamEmitsTokensOnce(t *testing.T) {
	c := NewChain(failing{}, NewStatic("all good"))
	var tokens []string
	comp, err := c.Stream(context.Background(), []Message{User("hi")}, nil, func(tok string) error {
		tokens = append(tokens, tok)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "all good", comp.Content)
	assert.Equal(t, []string{"all good"}, tokens)
}

func TestOpenAIComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"UAF was established in 1906."}}]}`)
	}))
	defer srv.Close()

	c := NewOpenAI(srv.URL, "test-key", "gpt-4o-mini")
	comp, err := c.Complete(context.Background(), []Message{User("when was UAF established?")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "UAF was established in 1906.", comp.Content)
}

func TestOpenAICompleteToolCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"","tool_calls":[
			{"id":"call_1","type":"function","function":{"name":"get_library_hours","arguments":"{}"}}
		]}}]}`)
	}))
	defer srv.Close()

	c := NewOpenAI(srv.URL, "k", "m")
	comp, err := c.Complete(context.Background(), []Message{User("library hours?")}, []ToolSpec{{Name: "get_library_hours"}})
	require.NoError(t, err)
	require.Len(t, comp.ToolCalls, 1)
	assert.Equal(t, "get_library_hours", comp.ToolCalls[0].Name)
	assert.Equal(t, "call_1", comp.ToolCalls[0].ID)
}

func TestOpenAIStreamDecodesTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Hel\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"lo\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	c := NewOpenAI(srv.URL, "k", "m")
	var got []string
	comp, err := c.Stream(context.Background(), []Message{User("hi")}, nil, func(tok string) error {
		got = append(got, tok)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Hel", "lo"}, got)
	assert.Equal(t, "Hello", comp.Content)
}

func TestOpenAITransportErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewOpenAI(srv.URL, "k", "m")
	_, err := c.Complete(context.Background(), []Message{User("hi")}, nil)
	assert.Error(t, err)
}

func TestDirectRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewDirect(srv.URL, "bad-key", "m")
	_, err := c.Complete(context.Background(), []Message{User("hi")}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestMockScriptOrder(t *testing.T) {
	m := NewMock(&Completion{Content: "one"}, &Completion{Content: "two"})
	c1, _ := m.Complete(context.Background(), []Message{User("a")}, nil)
	c2, _ := m.Complete(context.Background(), []Message{User("b")}, nil)
	assert.Equal(t, "one", c1.Content)
	assert.Equal(t, "two", c2.Content)
	assert.Len(t, m.Calls, 2)
}
