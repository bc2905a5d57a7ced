package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fredluz/Cupido/internal/domain"
	"github.com/fredluz/Cupido/internal/pkg/logger"
	"github.com/fredluz/Cupido/internal/repository"
	"github.com/fredluz/Cupido/internal/usecase/reveal"
	"github.com/google/uuid"
)

// MaxListLimit caps how many 1:1 messages one list call returns. Clients
// wanting older history rely on the thread summary instead.
const MaxListLimit = 200

// IcebreakerGenerator produces opener suggestions for a fresh thread.
// Optional; a nil generator disables the feature.
type IcebreakerGenerator interface {
	GenerateIcebreakers(ctx context.Context, a, b *domain.Profile, compatibility int) ([]string, error)
}

type UseCase struct {
	threadRepo  repository.ThreadRepository
	messageRepo repository.MessageRepository
	edgeRepo    repository.MatchEdgeRepository
	profileRepo repository.ProfileRepository
	reveal      *reveal.UseCase
	icebreakers IcebreakerGenerator
	log         *logger.Logger
}

func NewUseCase(
	threadRepo repository.ThreadRepository,
	messageRepo repository.MessageRepository,
	edgeRepo repository.MatchEdgeRepository,
	profileRepo repository.ProfileRepository,
	revealUC *reveal.UseCase,
	icebreakers IcebreakerGenerator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		threadRepo:  threadRepo,
		messageRepo: messageRepo,
		edgeRepo:    edgeRepo,
		profileRepo: profileRepo,
		reveal:      revealUC,
		icebreakers: icebreakers,
		log:         log.With("usecase", "chat"),
	}
}

// ThreadSummary is a participant-facing view of a thread. Display names are
// only populated while reveal is enabled; otherwise the aliases stand in.
type ThreadSummary struct {
	ThreadID           string     `json:"thread_id"`
	UserAID            string     `json:"user_a_id"`
	UserBID            string     `json:"user_b_id"`
	OtherUserID        string     `json:"other_user_id"`
	CreatedAt          time.Time  `json:"created_at"`
	RevealedAt         *time.Time `json:"revealed_at"`
	MyAlias            string     `json:"my_alias"`
	OtherAlias         string     `json:"other_alias"`
	RevealEnabled      bool       `json:"reveal_enabled"`
	MyDisplayName      string     `json:"my_display_name"`
	OtherDisplayName   string     `json:"other_display_name"`
	Icebreakers        []string   `json:"icebreakers,omitempty"`
	LastMessageAt      *time.Time `json:"last_message_at"`
	LastMessagePreview *string    `json:"last_message_preview"`
}

// MessageResponse decorates a stored message with the sender's alias and,
// when reveal is enabled, their real display name.
type MessageResponse struct {
	ID                int64     `json:"id"`
	ThreadID          string    `json:"thread_id"`
	SenderUserID      string    `json:"sender_user_id"`
	SenderAlias       string    `json:"sender_alias"`
	SenderDisplayName string    `json:"sender_display_name"`
	RevealEnabled     bool      `json:"reveal_enabled"`
	Body              string    `json:"body"`
	CreatedAt         time.Time `json:"created_at"`
}

// CreateThreadIfMutual opens the 1:1 thread for the pair, gated on the
// persisted mutual-top-3 edge at this moment. Creation is idempotent: an
// existing thread is returned unchanged, and once a thread exists it stays
// accessible even if the pair later drops out of each other's top-3. The
// gate therefore only applies when no thread exists yet.
func (uc *UseCase) CreateThreadIfMutual(ctx context.Context, userID, matchUserID string) (*ThreadSummary, error) {
	matchUserID = strings.TrimSpace(matchUserID)
	if matchUserID == "" || matchUserID == userID {
		return nil, domain.ErrInvalidRequest
	}

	existing, err := uc.threadRepo.GetByUsers(ctx, userID, matchUserID)
	if err == nil {
		return uc.summarize(ctx, userID, &domain.ThreadWithLastMessage{ChatThread: *existing},
			uc.reveal.Enabled(ctx), map[string]string{})
	}
	if err != domain.ErrThreadNotFound {
		return nil, fmt.Errorf("failed to look up thread: %w", err)
	}

	edge, err := uc.edgeRepo.GetByUsers(ctx, userID, matchUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check match edge: %w", err)
	}
	if edge == nil || !edge.MutualTop3 {
		return nil, domain.ErrNotMutualTop3
	}

	userAID, userBID := domain.NormalizePair(userID, matchUserID)
	threadID := uuid.NewString()
	thread := &domain.ChatThread{
		ID:      threadID,
		UserAID: userAID,
		UserBID: userBID,
		AliasA:  domain.ThreadAlias(threadID, userAID),
		AliasB:  domain.ThreadAlias(threadID, userBID),
	}

	result, created, err := uc.threadRepo.GetOrCreate(ctx, thread)
	if err != nil {
		return nil, fmt.Errorf("failed to create thread: %w", err)
	}

	if created && uc.icebreakers != nil {
		go uc.suggestIcebreakers(result, edge.Score)
	}

	return uc.summarize(ctx, userID, &domain.ThreadWithLastMessage{ChatThread: *result},
		uc.reveal.Enabled(ctx), map[string]string{})
}

// ListMyThreads reads the reveal flag once and shares a name memo across the
// whole listing, so the cost stays flat no matter how many threads the
// participant has.
func (uc *UseCase) ListMyThreads(ctx context.Context, userID string) ([]*ThreadSummary, error) {
	threads, err := uc.threadRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}

	revealEnabled := uc.reveal.Enabled(ctx)
	names := map[string]string{}

	summaries := make([]*ThreadSummary, 0, len(threads))
	for _, thread := range threads {
		summary, err := uc.summarize(ctx, userID, thread, revealEnabled, names)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (uc *UseCase) ListMessages(ctx context.Context, userID, threadID string, limit int) ([]*MessageResponse, error) {
	thread, err := uc.accessibleThread(ctx, userID, threadID)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}
	messages, err := uc.messageRepo.ListByThread(ctx, thread.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	revealEnabled := uc.reveal.Enabled(ctx)
	names := uc.displayNames(ctx, thread, revealEnabled, map[string]string{})

	responses := make([]*MessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, uc.decorate(thread, message, revealEnabled, names))
	}
	return responses, nil
}

func (uc *UseCase) SendMessage(ctx context.Context, userID, threadID, body string) (*MessageResponse, error) {
	thread, err := uc.accessibleThread(ctx, userID, threadID)
	if err != nil {
		return nil, err
	}

	body = strings.TrimSpace(body)
	if body == "" || len(body) > domain.MaxMessageLength {
		return nil, domain.ErrInvalidRequest
	}

	message := &domain.Message{
		ThreadID:     thread.ID,
		SenderUserID: userID,
		Body:         body,
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	revealEnabled := uc.reveal.Enabled(ctx)
	return uc.decorate(thread, message, revealEnabled, uc.displayNames(ctx, thread, revealEnabled, map[string]string{})), nil
}

// accessibleThread loads a thread and verifies the caller is one of its two
// members. A missing thread is indistinguishable from an inaccessible one.
func (uc *UseCase) accessibleThread(ctx context.Context, userID, threadID string) (*domain.ChatThread, error) {
	threadID = strings.TrimSpace(threadID)
	if threadID == "" {
		return nil, domain.ErrInvalidRequest
	}

	thread, err := uc.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		if err == domain.ErrThreadNotFound {
			return nil, domain.ErrThreadNotAccessible
		}
		return nil, fmt.Errorf("failed to load thread: %w", err)
	}
	if !thread.HasUser(userID) {
		return nil, domain.ErrThreadNotAccessible
	}
	return thread, nil
}

// displayNames resolves real names for both members when reveal is on,
// memoizing lookups in names so a listing reads each profile at most once.
// Missing profiles fall back to the alias rather than failing the read.
func (uc *UseCase) displayNames(ctx context.Context, thread *domain.ChatThread, revealEnabled bool, names map[string]string) map[string]string {
	if !revealEnabled {
		return names
	}
	for _, memberID := range []string{thread.UserAID, thread.UserBID} {
		if _, ok := names[memberID]; ok {
			continue
		}
		profile, err := uc.profileRepo.GetByUserID(ctx, memberID)
		if err != nil {
			uc.log.Warn("failed to resolve display name", "user_id", memberID, "error", err)
			names[memberID] = ""
			continue
		}
		names[memberID] = profile.UserName
	}
	return names
}

func (uc *UseCase) decorate(thread *domain.ChatThread, message *domain.Message, revealEnabled bool, names map[string]string) *MessageResponse {
	alias := thread.AliasOf(message.SenderUserID)
	displayName := alias
	if revealEnabled {
		if name, ok := names[message.SenderUserID]; ok && name != "" {
			displayName = name
		}
	}
	return &MessageResponse{
		ID:                message.ID,
		ThreadID:          message.ThreadID,
		SenderUserID:      message.SenderUserID,
		SenderAlias:       alias,
		SenderDisplayName: displayName,
		RevealEnabled:     revealEnabled,
		Body:              message.Body,
		CreatedAt:         message.CreatedAt,
	}
}

func (uc *UseCase) summarize(ctx context.Context, userID string, thread *domain.ThreadWithLastMessage, revealEnabled bool, names map[string]string) (*ThreadSummary, error) {
	otherUserID, ok := thread.OtherUser(userID)
	if !ok {
		return nil, domain.ErrThreadNotAccessible
	}

	names = uc.displayNames(ctx, &thread.ChatThread, revealEnabled, names)

	myAlias := thread.AliasOf(userID)
	otherAlias := thread.AliasOf(otherUserID)
	myDisplayName := myAlias
	otherDisplayName := otherAlias
	if revealEnabled {
		if name, ok := names[userID]; ok && name != "" {
			myDisplayName = name
		}
		if name, ok := names[otherUserID]; ok && name != "" {
			otherDisplayName = name
		}
	}

	return &ThreadSummary{
		ThreadID:           thread.ID,
		UserAID:            thread.UserAID,
		UserBID:            thread.UserBID,
		OtherUserID:        otherUserID,
		CreatedAt:          thread.CreatedAt,
		RevealedAt:         thread.RevealedAt,
		MyAlias:            myAlias,
		OtherAlias:         otherAlias,
		RevealEnabled:      revealEnabled,
		MyDisplayName:      myDisplayName,
		OtherDisplayName:   otherDisplayName,
		Icebreakers:        thread.Icebreakers,
		LastMessageAt:      thread.LastMessageAt,
		LastMessagePreview: thread.LastMessagePreview,
	}, nil
}

// suggestIcebreakers runs after thread creation, off the request path.
// Best-effort: failures only log.
func (uc *UseCase) suggestIcebreakers(thread *domain.ChatThread, compatibility int) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	profileA, err := uc.profileRepo.GetByUserID(ctx, thread.UserAID)
	if err != nil {
		uc.log.Warn("skipping icebreakers, profile missing", "user_id", thread.UserAID, "error", err)
		return
	}
	profileB, err := uc.profileRepo.GetByUserID(ctx, thread.UserBID)
	if err != nil {
		uc.log.Warn("skipping icebreakers, profile missing", "user_id", thread.UserBID, "error", err)
		return
	}

	suggestions, err := uc.icebreakers.GenerateIcebreakers(ctx, profileA, profileB, compatibility)
	if err != nil {
		uc.log.Warn("icebreaker generation failed", "thread_id", thread.ID, "error", err)
		return
	}
	if len(suggestions) == 0 {
		return
	}

	if err := uc.threadRepo.UpdateIcebreakers(ctx, thread.ID, suggestions); err != nil {
		uc.log.Warn("failed to store icebreakers", "thread_id", thread.ID, "error", err)
	}
}
