package summarizer_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiji-news/internal/infra/summarizer"
	"fiji-news/internal/resilience/retry"
)

func singleAttempt() retry.Policy {
	return retry.Once()
}

func testConfig(model string) summarizer.Config {
	return summarizer.Config{CharacterLimit: 300, Model: model, MaxTokens: 256, Timeout: 5 * time.Second}
}

func TestClaude_Summarize(t *testing.T) {
	var prompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/messages"), r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Messages []struct {
				Content []struct {
					Text string `json:"text"`
				} `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		require.NotEmpty(t, req.Messages)
		prompt = req.Messages[0].Content[0].Text

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"content": [{"type": "text", "text": "  The Drua won in Lautoka.  "}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 7}
		}`)
	}))
	defer srv.Close()

	c := summarizer.NewClaude("test-key", testConfig("claude-test"),
		option.WithBaseURL(srv.URL), option.WithMaxRetries(0)).WithRetryPolicy(singleAttempt())

	got, err := c.Summarize(context.Background(), "The Fijian Drua beat the Chiefs at Churchill Park.")
	require.NoError(t, err)
	assert.Equal(t, "The Drua won in Lautoka.", got)
	assert.Contains(t, prompt, "in English in at most 300 characters")
	assert.Contains(t, prompt, "Churchill Park")
}

func TestClaude_Summarize_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"type":"error","error":{"type":"invalid_request_error","message":"bad"}}`)
	}))
	defer srv.Close()

	c := summarizer.NewClaude("test-key", testConfig("claude-test"),
		option.WithBaseURL(srv.URL), option.WithMaxRetries(0)).WithRetryPolicy(singleAttempt())

	_, err := c.Summarize(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "claude api error")
}

func TestOpenAI_Summarize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-test", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Contains(t, req.Messages[0].Content, "Summarize the following Fiji news article")

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1715900000,
			"model": "gpt-test",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Flooding closed roads in Nadi."}, "finish_reason": "stop"}]
		}`)
	}))
	defer srv.Close()

	clientCfg := openai.DefaultConfig("test-key")
	clientCfg.BaseURL = srv.URL + "/v1"
	o := summarizer.NewOpenAIWithClientConfig(clientCfg, testConfig("gpt-test")).WithRetryPolicy(singleAttempt())

	got, err := o.Summarize(context.Background(), "Heavy rain caused flooding in Nadi town.")
	require.NoError(t, err)
	assert.Equal(t, "Flooding closed roads in Nadi.", got)
}

func TestOpenAI_Summarize_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"x","object":"chat.completion","created":1,"model":"gpt-test","choices":[]}`)
	}))
	defer srv.Close()

	clientCfg := openai.DefaultConfig("test-key")
	clientCfg.BaseURL = srv.URL + "/v1"
	o := summarizer.NewOpenAIWithClientConfig(clientCfg, testConfig("gpt-test")).WithRetryPolicy(singleAttempt())

	_, err := o.Summarize(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}
