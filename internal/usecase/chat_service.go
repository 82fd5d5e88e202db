package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bellavista/orderbot/internal/domain"
)

// ChatRequest is one inbound user message
type ChatRequest struct {
	Message   string            `json:"message"`
	SessionID string            `json:"session_id,omitempty"`
	CartItems []domain.CartLine `json:"cart_items,omitempty"`
}

// ChatResponse is the reply sent back to the client
type ChatResponse struct {
	Response     string              `json:"response"`
	ActionData   domain.ActionRecord `json:"action_data"`
	SessionID    string              `json:"session_id"`
	Success      bool                `json:"success"`
	FallbackMode bool                `json:"fallback_mode"`
	DataSource   string              `json:"data_source"`
}

// ChatServiceConfig holds configuration for the chat service
type ChatServiceConfig struct {
	Now      func() time.Time
	Logger   *zap.Logger
	Recorder Recorder
}

// ChatService runs one message through snapshot -> extractor -> responder -> session
type ChatService struct {
	provider  *CatalogProvider
	extractor *Extractor
	responder *Responder
	sessions  *SessionStore
	now       func() time.Time
	logger    *zap.Logger
	recorder  Recorder
}

// NewChatService creates a new chat service with dependencies
func NewChatService(
	provider *CatalogProvider,
	extractor *Extractor,
	responder *Responder,
	sessions *SessionStore,
	config ChatServiceConfig,
) *ChatService {
	now := config.Now
	if now == nil {
		now = time.Now
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ChatService{
		provider:  provider,
		extractor: extractor,
		responder: responder,
		sessions:  sessions,
		now:       now,
		logger:    logger,
		recorder:  recorderOrNop(config.Recorder),
	}
}

// Handle answers a chat message. An empty session id gets a fresh one.
// Session storage failures are logged and never fail the reply.
func (s *ChatService) Handle(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	if req == nil || strings.TrimSpace(req.Message) == "" {
		return nil, domain.ErrInvalidRequest
	}

	start := s.now()
	defer func() { s.recorder.ChatDuration(s.now().Sub(start)) }()

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	snap := s.provider.Get(ctx, start)
	record := s.extractor.Extract(req.Message, snap, req.CartItems)
	reply := s.responder.Respond(req.Message, record, req.CartItems)

	if reply.Action.Kind() == domain.ActionClearChat {
		if err := s.sessions.Clear(ctx, sessionID); err != nil {
			s.logger.Warn("failed to clear session", zap.String("session_id", sessionID), zap.Error(err))
		}
	} else {
		err := s.sessions.Append(ctx, sessionID,
			Turn{Role: "user", Content: req.Message, Timestamp: start},
			Turn{Role: "assistant", Content: reply.Text, Action: string(reply.Action.Kind()), Timestamp: s.now()},
		)
		if err != nil {
			s.logger.Warn("failed to store session turn", zap.String("session_id", sessionID), zap.Error(err))
		}
	}

	s.logger.Info("chat handled",
		zap.String("session_id", sessionID),
		zap.String("action", string(reply.Action.Kind())),
		zap.String("data_source", snap.Source()),
	)

	return &ChatResponse{
		Response:     reply.Text,
		ActionData:   reply.Action,
		SessionID:    sessionID,
		Success:      true,
		FallbackMode: true,
		DataSource:   snap.Source(),
	}, nil
}

// ClearSession drops the stored history of a session
func (s *ChatService) ClearSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domain.ErrInvalidRequest
	}
	return s.sessions.Clear(ctx, sessionID)
}

// History returns the stored turns of a session
func (s *ChatService) History(ctx context.Context, sessionID string) ([]Turn, error) {
	if sessionID == "" {
		return nil, domain.ErrInvalidRequest
	}
	return s.sessions.History(ctx, sessionID)
}

// MenuInfo summarizes the current catalog snapshot
type MenuInfo struct {
	Items       []string  `json:"menu_items"`
	Categories  []string  `json:"categories"`
	TotalItems  int       `json:"total_items"`
	DataSource  string    `json:"data_source"`
	LastUpdated time.Time `json:"last_updated"`
}

// Menu returns the snapshot summary served by the menu endpoint
func (s *ChatService) Menu(ctx context.Context) MenuInfo {
	snap := s.provider.Get(ctx, s.now())
	return menuInfo(snap)
}

// RefreshMenu forces a catalog fetch and returns the resulting summary
func (s *ChatService) RefreshMenu(ctx context.Context) (MenuInfo, error) {
	snap, err := s.provider.Refresh(ctx, s.now())
	return menuInfo(snap), err
}

func menuInfo(snap domain.Snapshot) MenuInfo {
	names := snap.AvailableNames()
	return MenuInfo{
		Items:       names,
		Categories:  snap.Categories(),
		TotalItems:  len(names),
		DataSource:  snap.Source(),
		LastUpdated: snap.FetchedAt,
	}
}
