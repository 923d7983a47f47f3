package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"campus/pkg/voice"
)

type VoiceCtrl struct{ svc voice.Service }

func New(svc voice.Service) *VoiceCtrl { return &VoiceCtrl{svc} }

type sttReq struct {
	AudioBase64 string `json:"audio_base64"`
}

type ttsReq struct {
	Text    string `json:"text"`
	VoiceID string `json:"voice_id"`
}

func (h *VoiceCtrl) VoiceToText(c echo.Context) error {
	var req sttReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.AudioBase64 == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "audio_base64 is required"})
	}
	res := h.svc.SpeechToText(req.AudioBase64)
	if !res.OK {
		return c.JSON(http.StatusBadRequest, res)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *VoiceCtrl) TextToSpeech(c echo.Context) error {
	var req ttsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.Text == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "text is required"})
	}
	res := h.svc.TextToSpeech(req.Text, req.VoiceID)
	if !res.OK {
		return c.JSON(http.StatusBadRequest, res)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *VoiceCtrl) Voices(c echo.Context) error {
	voices, err := h.svc.Voices()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"voices": voices})
}
