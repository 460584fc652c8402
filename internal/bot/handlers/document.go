package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/vaidya-health/internal/bot/state"
	"github.com/vladimiradmaev/vaidya-health/internal/logger"
	"github.com/vladimiradmaev/vaidya-health/internal/services"
)

// maxDocumentSize bounds both the declared and the downloaded file size
const maxDocumentSize = 10 << 20

var errDocumentTooLarge = errors.New("document exceeds size limit")

// DocumentHandler turns an uploaded file into a report. The caption is the
// report text; plain-text files without a caption are analyzed directly.
type DocumentHandler struct {
	api          BotAPI
	deps         Dependencies
	stateManager state.StateManager
	httpClient   *http.Client
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(api BotAPI, deps Dependencies, stateManager state.StateManager) *DocumentHandler {
	return &DocumentHandler{
		api:          api,
		deps:         deps,
		stateManager: stateManager,
		httpClient:   &http.Client{Timeout: 60 * time.Second},
	}
}

// Handle processes a document message
func (h *DocumentHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	doc := message.Document
	h.stateManager.SetUserState(message.From.ID, state.None)

	if doc.FileSize > maxDocumentSize {
		return sendText(h.api, chatID, "⚠️ The file is larger than 10 MB. Please send a smaller file.")
	}

	isText := isTextDocument(doc.MimeType)
	uploads := h.deps.ReportSvc.UploadsEnabled()
	if !uploads && !isText {
		return sendText(h.api, chatID, "📎 File storage is not configured. Paste the report text with /report instead.")
	}

	content := strings.TrimSpace(message.Caption)
	if content == "" && !isText {
		return sendText(h.api, chatID, "📝 Please send the file again with a caption describing the report. The caption is what gets analyzed.")
	}

	url, err := h.api.GetFileDirectURL(doc.FileID)
	if err != nil {
		return fmt.Errorf("failed to get file: %w", err)
	}

	data, err := h.download(ctx, url)
	if err != nil {
		logger.Error("Failed to download document", "file_id", doc.FileID, "error", err)
		if errors.Is(err, errDocumentTooLarge) {
			return sendText(h.api, chatID, "⚠️ The file is larger than 10 MB. Please send a smaller file.")
		}
		return sendText(h.api, chatID, "❌ Could not download the file from Telegram. Please try again.")
	}

	if content == "" {
		content = strings.ToValidUTF8(string(data), "")
	}

	var upload *services.Upload
	if uploads {
		upload = &services.Upload{
			FileName:    doc.FileName,
			ContentType: doc.MimeType,
			Data:        data,
		}
	}

	return submitReportWithFile(ctx, h.api, h.deps, chatID, titleFromFileName(doc.FileName), content, upload)
}

func (h *DocumentHandler) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d downloading file", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) > maxDocumentSize {
		return nil, errDocumentTooLarge
	}
	return data, nil
}

func isTextDocument(mimeType string) bool {
	return strings.HasPrefix(mimeType, "text/")
}
