package voice

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Result is the outcome of a speech operation. Failures are values with
// OK=false; the codec never panics a request.
type Result struct {
	OK          bool   `json:"ok"`
	Text        string `json:"text,omitempty"`
	AudioBase64 string `json:"audio_base64,omitempty"`
	VoiceID     string `json:"voice_id,omitempty"`
	Error       string `json:"error,omitempty"`
}

type Voice struct {
	VoiceID string `json:"voice_id"`
	Name    string `json:"name"`
}

// Service is the speech codec contract consumed by the chat layer.
type Service interface {
	SpeechToText(audioBase64 string) Result
	TextToSpeech(text, voiceID string) Result
	Voices() ([]Voice, error)
}

const DefaultVoiceID = "JBFqnCBsd6RMkjVDRZzb"

// Client talks to an ElevenLabs-compatible speech API.
type Client struct {
	endpoint string
	key      string
	httpc    *http.Client
}

func New(endpoint, key string) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		key:      key,
		httpc:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) SpeechToText(audioBase64 string) Result {
	audio, err := base64.StdEncoding.DecodeString(audioBase64)
	if err != nil {
		return Result{Error: "invalid base64 audio data"}
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "audio.webm")
	if err == nil {
		_, err = fw.Write(audio)
	}
	if err == nil {
		err = mw.WriteField("model_id", "scribe_v1")
	}
	if err == nil {
		err = mw.Close()
	}
	if err != nil {
		return Result{Error: err.Error()}
	}

	req, err := http.NewRequest("POST", c.endpoint+"/v1/speech-to-text", &body)
	if err != nil {
		return Result{Error: err.Error()}
	}
	req.Header.Set("xi-api-key", c.key)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Result{Error: err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Result{Error: fmt.Sprintf("speech-to-text failed with status %d", resp.StatusCode)}
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{Error: err.Error()}
	}
	return Result{OK: true, Text: out.Text}
}

func (c *Client) TextToSpeech(text, voiceID string) Result {
	if voiceID == "" {
		voiceID = DefaultVoiceID
	}
	payload := map[string]any{"text": text, "model_id": "eleven_turbo_v2"}
	b, _ := json.Marshal(payload)

	req, err := http.NewRequest("POST", c.endpoint+"/v1/text-to-speech/"+voiceID, bytes.NewReader(b))
	if err != nil {
		return Result{Error: err.Error()}
	}
	req.Header.Set("xi-api-key", c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Result{Error: err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Result{Error: fmt.Sprintf("text-to-speech failed with status %d", resp.StatusCode)}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Error: err.Error()}
	}
	return Result{OK: true, AudioBase64: base64.StdEncoding.EncodeToString(audio), VoiceID: voiceID}
}

func (c *Client) Voices() ([]Voice, error) {
	req, err := http.NewRequest("GET", c.endpoint+"/v1/voices", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", c.key)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out struct {
		Voices []Voice `json:"voices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out.Voices, nil
}
