package group

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fredluz/Cupido/internal/domain"
	"github.com/fredluz/Cupido/internal/pkg/logger"
	"github.com/fredluz/Cupido/internal/repository"
	"github.com/fredluz/Cupido/internal/usecase/reveal"
)

// MaxListLimit caps how many group messages one list call returns.
const MaxListLimit = 100

type UseCase struct {
	groupRepo   repository.GroupRepository
	profileRepo repository.ProfileRepository
	messageRepo repository.MessageRepository
	reveal      *reveal.UseCase
	log         *logger.Logger
}

func NewUseCase(
	groupRepo repository.GroupRepository,
	profileRepo repository.ProfileRepository,
	messageRepo repository.MessageRepository,
	revealUC *reveal.UseCase,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		groupRepo:   groupRepo,
		profileRepo: profileRepo,
		messageRepo: messageRepo,
		reveal:      revealUC,
		log:         log.With("usecase", "group"),
	}
}

// GroupSummary is a participant's view of their current tribe.
type GroupSummary struct {
	GroupKey         domain.Category `json:"group_key"`
	GroupLabel       string          `json:"group_label"`
	GroupDescription string          `json:"group_description"`
	GroupThreadID    string          `json:"group_thread_id"`
	MemberCount      int             `json:"member_count"`
	RevealEnabled    bool            `json:"reveal_enabled"`
	MyAlias          string          `json:"my_alias"`
	MyDisplayName    string          `json:"my_display_name"`
}

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

// Assign recomputes the participant's tribe from their dominant category and
// (re)attaches them. Runs on every profile write. Reassigning to the same
// tribe keeps the original assignment timestamp; moving tribes transfers
// membership without touching message history.
func (uc *UseCase) Assign(ctx context.Context, profile *domain.Profile) error {
	scores := profile.Scores()
	if scores.IsZero() {
		// No signal yet; leave the participant unassigned.
		return nil
	}

	group, err := uc.groupRepo.GetByKey(ctx, scores.Dominant())
	if err != nil {
		return fmt.Errorf("failed to resolve tribe for dominant category: %w", err)
	}

	member := &domain.GroupMember{
		UserID:   profile.UserID,
		GroupKey: group.Key,
		Alias:    domain.ThreadAlias(group.ThreadID, profile.UserID),
	}
	if err := uc.groupRepo.UpsertMember(ctx, member); err != nil {
		return fmt.Errorf("failed to assign tribe membership: %w", err)
	}
	return nil
}

// MyGroup returns the caller's tribe summary, or ErrNotInGroup before any
// assignment has happened.
func (uc *UseCase) MyGroup(ctx context.Context, userID string) (*GroupSummary, error) {
	member, err := uc.groupRepo.GetMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load membership: %w", err)
	}
	if member == nil {
		return nil, domain.ErrNotInGroup
	}

	group, err := uc.groupRepo.GetByKey(ctx, member.GroupKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load tribe: %w", err)
	}
	count, err := uc.groupRepo.MemberCount(ctx, group.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}

	revealEnabled := uc.reveal.Enabled(ctx)
	displayName := member.Alias
	if revealEnabled {
		if profile, err := uc.profileRepo.GetByUserID(ctx, userID); err == nil {
			displayName = profile.UserName
		}
	}

	return &GroupSummary{
		GroupKey:         group.Key,
		GroupLabel:       group.Label,
		GroupDescription: group.Description,
		GroupThreadID:    group.ThreadID,
		MemberCount:      count,
		RevealEnabled:    revealEnabled,
		MyAlias:          member.Alias,
		MyDisplayName:    displayName,
	}, nil
}

func (uc *UseCase) ListMessages(ctx context.Context, userID, threadID string, limit int) ([]*MessageResponse, error) {
	group, err := uc.accessibleGroupThread(ctx, userID, threadID)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}
	messages, err := uc.messageRepo.ListByThread(ctx, group.ThreadID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list group messages: %w", err)
	}

	revealEnabled := uc.reveal.Enabled(ctx)
	names := map[string]string{}

	responses := make([]*MessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, uc.decorate(ctx, group.ThreadID, message, revealEnabled, names))
	}
	return responses, nil
}

func (uc *UseCase) SendMessage(ctx context.Context, userID, threadID, body string) (*MessageResponse, error) {
	group, err := uc.accessibleGroupThread(ctx, userID, threadID)
	if err != nil {
		return nil, err
	}

	body = strings.TrimSpace(body)
	if body == "" || len(body) > domain.MaxMessageLength {
		return nil, domain.ErrInvalidRequest
	}

	message := &domain.Message{
		ThreadID:     group.ThreadID,
		SenderUserID: userID,
		Body:         body,
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to store group message: %w", err)
	}

	return uc.decorate(ctx, group.ThreadID, message, uc.reveal.Enabled(ctx), map[string]string{}), nil
}

// accessibleGroupThread verifies the thread exists and belongs to the
// caller's current tribe. A participant with no tribe gets ErrNotInGroup;
// a participant from another tribe gets ErrThreadNotAccessible.
func (uc *UseCase) accessibleGroupThread(ctx context.Context, userID, threadID string) (*domain.Group, error) {
	threadID = strings.TrimSpace(threadID)
	if threadID == "" {
		return nil, domain.ErrInvalidRequest
	}

	group, err := uc.groupRepo.GetByThreadID(ctx, threadID)
	if err != nil {
		if err == domain.ErrThreadNotFound {
			return nil, domain.ErrThreadNotAccessible
		}
		return nil, fmt.Errorf("failed to load group thread: %w", err)
	}

	member, err := uc.groupRepo.GetMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load membership: %w", err)
	}
	if member == nil {
		return nil, domain.ErrNotInGroup
	}
	if member.GroupKey != group.Key {
		return nil, domain.ErrThreadNotAccessible
	}
	return group, nil
}

// decorate resolves the sender's alias and display name. The alias is derived
// from (thread, sender), so messages from members who have since moved tribes
// keep a stable pseudonym. names memoizes profile lookups across one listing.
func (uc *UseCase) decorate(ctx context.Context, threadID string, message *domain.Message, revealEnabled bool, names map[string]string) *MessageResponse {
	alias := domain.ThreadAlias(threadID, message.SenderUserID)
	displayName := alias
	if revealEnabled {
		name, ok := names[message.SenderUserID]
		if !ok {
			if profile, err := uc.profileRepo.GetByUserID(ctx, message.SenderUserID); err == nil {
				name = profile.UserName
			}
			names[message.SenderUserID] = name
		}
		if name != "" {
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
