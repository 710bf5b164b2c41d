package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"unicode/utf8"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/mindfulme/internal/chat"
	"github.com/mindfulme/internal/view"
)

const (
	// ExportTrigger 告诉前端跳转到 /download_logs
	ExportTrigger = "export_trigger"

	msgNoInput = "I didn't receive your message."

	transcriptSessionKey = "transcript"
	// cookie 会话容量有限，只保留最近几条并截断长文本
	maxTranscriptEntries = 6
	maxTranscriptRunes   = 300
)

type transcriptEntry struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ShowChat 渲染聊天页面，并回显会话中最近的对话
func (a *API) ShowChat(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":      "MindfulMe",
		"greeting":   chat.Greeting(),
		"transcript": loadTranscript(c),
	})
}

// GetResponse 处理聊天消息，返回 {"response": text}
func (a *API) GetResponse(c *gin.Context) {
	msg := c.PostForm("msg")
	if msg == "" {
		c.JSON(http.StatusOK, gin.H{"response": msgNoInput})
		return
	}

	reply, err := a.dispatcher.Respond(c.Request.Context(), msg)
	a.metrics.observeIntent(string(reply.Intent), err)
	if err != nil {
		log.Printf("[chat] request=%s intent=%s: %v", requestID(c), reply.Intent, err)
		c.JSON(http.StatusInternalServerError, gin.H{"response": reply.Text})
		return
	}

	if reply.Intent == chat.IntentExport {
		c.JSON(http.StatusOK, gin.H{"response": ExportTrigger})
		return
	}

	appendTranscript(c, transcriptEntry{Role: "user", Text: msg}, transcriptEntry{Role: "bot", Text: reply.Text})

	c.JSON(http.StatusOK, gin.H{
		"response": reply.Text,
		"html":     view.RenderReply(reply.Text),
	})
}

func loadTranscript(c *gin.Context) []transcriptEntry {
	session := sessions.Default(c)
	raw, ok := session.Get(transcriptSessionKey).(string)
	if !ok || raw == "" {
		return nil
	}

	var entries []transcriptEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil
	}
	return entries
}

func appendTranscript(c *gin.Context, entries ...transcriptEntry) {
	transcript := loadTranscript(c)
	for _, entry := range entries {
		entry.Text = truncateRunes(entry.Text, maxTranscriptRunes)
		transcript = append(transcript, entry)
	}
	if len(transcript) > maxTranscriptEntries {
		transcript = transcript[len(transcript)-maxTranscriptEntries:]
	}

	encoded, err := json.Marshal(transcript)
	if err != nil {
		return
	}

	session := sessions.Default(c)
	session.Set(transcriptSessionKey, string(encoded))
	if err := session.Save(); err != nil {
		log.Printf("[chat] request=%s save transcript: %v", requestID(c), err)
	}
}

func truncateRunes(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit]) + "…"
}
