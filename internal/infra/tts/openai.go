package tts

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sashabaranov/go-openai"

	"fiji-news/internal/resilience/circuitbreaker"
	"fiji-news/internal/usecase/narrate"
	"fiji-news/internal/utils/text"
)

// openAIMaxChars is the input limit of the speech endpoint.
const openAIMaxChars = 4096

var _ narrate.OnlineEngine = (*OpenAISpeech)(nil)

// OpenAISpeech synthesizes MP3 audio with the OpenAI speech API.
type OpenAISpeech struct {
	client  *openai.Client
	model   openai.SpeechModel
	voice   openai.SpeechVoice
	breaker *circuitbreaker.Breaker
}

// NewOpenAISpeech creates an engine authenticated with apiKey.
func NewOpenAISpeech(apiKey string) *OpenAISpeech {
	return NewOpenAISpeechWithClientConfig(openai.DefaultConfig(apiKey))
}

// NewOpenAISpeechWithClientConfig creates an engine from a go-openai client config.
func NewOpenAISpeechWithClientConfig(clientCfg openai.ClientConfig) *OpenAISpeech {
	return &OpenAISpeech{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   openai.TTSModel1,
		voice:   openai.VoiceAlloy,
		breaker: circuitbreaker.New(circuitbreaker.RemoteAPI("openai-tts")),
	}
}

// Name implements narrate.OnlineEngine.
func (o *OpenAISpeech) Name() string { return "openai" }

// Synthesize writes the MP3 narration of input to path. Input beyond the
// endpoint limit is cut.
func (o *OpenAISpeech) Synthesize(ctx context.Context, input, path string) error {
	_, err := circuitbreaker.Run(o.breaker, func() (struct{}, error) {
		resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
			Model:          o.model,
			Input:          text.Truncate(input, openAIMaxChars),
			Voice:          o.voice,
			ResponseFormat: openai.SpeechResponseFormatMp3,
		})
		if err != nil {
			return struct{}{}, err
		}
		defer func() { _ = resp.Close() }()

		f, err := os.Create(path)
		if err != nil {
			return struct{}{}, err
		}
		if _, err := io.Copy(f, resp); err != nil {
			_ = f.Close()
			return struct{}{}, err
		}
		return struct{}{}, f.Close()
	})
	if err != nil {
		return fmt.Errorf("openai speech: %w", err)
	}
	return nil
}
