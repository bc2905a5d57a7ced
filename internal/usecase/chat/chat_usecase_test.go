package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fredluz/Cupido/internal/domain"
	"github.com/fredluz/Cupido/internal/pkg/logger"
	"github.com/fredluz/Cupido/internal/usecase/reveal"
)

type fakeThreadRepo struct {
	byID   map[string]*domain.ChatThread
	byPair map[string]*domain.ChatThread
}

func newFakeThreadRepo() *fakeThreadRepo {
	return &fakeThreadRepo{
		byID:   map[string]*domain.ChatThread{},
		byPair: map[string]*domain.ChatThread{},
	}
}

func (f *fakeThreadRepo) GetOrCreate(_ context.Context, thread *domain.ChatThread) (*domain.ChatThread, bool, error) {
	key := thread.UserAID + "|" + thread.UserBID
	if existing, ok := f.byPair[key]; ok {
		return existing, false, nil
	}
	stored := *thread
	stored.CreatedAt = time.Now()
	f.byID[stored.ID] = &stored
	f.byPair[key] = &stored
	return &stored, true, nil
}

func (f *fakeThreadRepo) GetByID(_ context.Context, threadID string) (*domain.ChatThread, error) {
	thread, ok := f.byID[threadID]
	if !ok {
		return nil, domain.ErrThreadNotFound
	}
	return thread, nil
}

func (f *fakeThreadRepo) GetByUsers(_ context.Context, userAID, userBID string) (*domain.ChatThread, error) {
	a, b := domain.NormalizePair(userAID, userBID)
	thread, ok := f.byPair[a+"|"+b]
	if !ok {
		return nil, domain.ErrThreadNotFound
	}
	return thread, nil
}

func (f *fakeThreadRepo) ListByUser(_ context.Context, userID string) ([]*domain.ThreadWithLastMessage, error) {
	var out []*domain.ThreadWithLastMessage
	for _, thread := range f.byID {
		if thread.HasUser(userID) {
			out = append(out, &domain.ThreadWithLastMessage{ChatThread: *thread})
		}
	}
	return out, nil
}

func (f *fakeThreadRepo) UpdateIcebreakers(_ context.Context, threadID string, icebreakers []string) error {
	if thread, ok := f.byID[threadID]; ok {
		thread.Icebreakers = icebreakers
	}
	return nil
}

func (f *fakeThreadRepo) MarkRevealed(_ context.Context, at time.Time) error {
	for _, thread := range f.byID {
		if thread.RevealedAt == nil {
			stamped := at
			thread.RevealedAt = &stamped
		}
	}
	return nil
}

type fakeMessageRepo struct {
	messages []*domain.Message
	nextID   int64
}

func (f *fakeMessageRepo) Create(_ context.Context, message *domain.Message) error {
	f.nextID++
	message.ID = f.nextID
	message.CreatedAt = time.Now()
	stored := *message
	f.messages = append(f.messages, &stored)
	return nil
}

func (f *fakeMessageRepo) ListByThread(_ context.Context, threadID string, limit int) ([]*domain.Message, error) {
	var out []*domain.Message
	for _, m := range f.messages {
		if m.ThreadID == threadID {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

type fakeEdgeRepo struct {
	edges map[string]*domain.MatchEdge
}

func newFakeEdgeRepo() *fakeEdgeRepo {
	return &fakeEdgeRepo{edges: map[string]*domain.MatchEdge{}}
}

func (f *fakeEdgeRepo) UpsertEdges(_ context.Context, edges []*domain.MatchEdge) error {
	for _, e := range edges {
		f.edges[e.UserAID+"|"+e.UserBID] = e
	}
	return nil
}

func (f *fakeEdgeRepo) GetByUsers(_ context.Context, userAID, userBID string) (*domain.MatchEdge, error) {
	a, b := domain.NormalizePair(userAID, userBID)
	return f.edges[a+"|"+b], nil
}

func (f *fakeEdgeRepo) setEdge(a, b string, mutual bool) {
	userAID, userBID := domain.NormalizePair(a, b)
	f.edges[userAID+"|"+userBID] = &domain.MatchEdge{
		UserAID:    userAID,
		UserBID:    userBID,
		Score:      80,
		AInBTop3:   mutual,
		BInATop3:   mutual,
		MutualTop3: mutual,
	}
}

type fakeProfileRepo struct {
	profiles map[string]*domain.Profile
}

func newFakeProfileRepo(names map[string]string) *fakeProfileRepo {
	profiles := map[string]*domain.Profile{}
	for userID, name := range names {
		profiles[userID] = &domain.Profile{UserID: userID, UserName: name}
	}
	return &fakeProfileRepo{profiles: profiles}
}

func (f *fakeProfileRepo) Upsert(_ context.Context, profile *domain.Profile) error {
	f.profiles[profile.UserID] = profile
	return nil
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return profile, nil
}

func (f *fakeProfileRepo) UpdatePhone(_ context.Context, userID, phone string) error {
	if profile, ok := f.profiles[userID]; ok {
		profile.Phone = &phone
		return nil
	}
	return domain.ErrProfileNotFound
}

func (f *fakeProfileRepo) ListAll(_ context.Context) ([]*domain.Profile, error) {
	var out []*domain.Profile
	for _, p := range f.profiles {
		out = append(out, p)
	}
	return out, nil
}

type fakeSettingsRepo struct {
	enabled  bool
	getCalls int
}

func (f *fakeSettingsRepo) Get(_ context.Context) (*domain.AppSettings, error) {
	f.getCalls++
	return &domain.AppSettings{ID: 1, RevealEnabled: f.enabled}, nil
}

func (f *fakeSettingsRepo) SetRevealEnabled(_ context.Context, enabled bool) (*domain.AppSettings, error) {
	f.enabled = enabled
	return &domain.AppSettings{ID: 1, RevealEnabled: enabled}, nil
}

type chatFixture struct {
	uc       *UseCase
	threads  *fakeThreadRepo
	edges    *fakeEdgeRepo
	settings *fakeSettingsRepo
}

func newChatFixture() *chatFixture {
	threads := newFakeThreadRepo()
	edges := newFakeEdgeRepo()
	settings := &fakeSettingsRepo{}
	profiles := newFakeProfileRepo(map[string]string{
		"user-a": "Ana",
		"user-b": "Bruno",
		"user-c": "Carla",
	})
	revealUC := reveal.NewUseCase(settings, threads, nil, logger.NewNop())
	uc := NewUseCase(threads, &fakeMessageRepo{}, edges, profiles, revealUC, nil, logger.NewNop())
	return &chatFixture{uc: uc, threads: threads, edges: edges, settings: settings}
}

func TestCreateThreadRequiresMutualEdge(t *testing.T) {
	fx := newChatFixture()
	ctx := context.Background()

	if _, err := fx.uc.CreateThreadIfMutual(ctx, "user-a", "user-b"); !errors.Is(err, domain.ErrNotMutualTop3) {
		t.Fatalf("no edge: got %v, want ErrNotMutualTop3", err)
	}

	fx.edges.setEdge("user-a", "user-b", false)
	if _, err := fx.uc.CreateThreadIfMutual(ctx, "user-a", "user-b"); !errors.Is(err, domain.ErrNotMutualTop3) {
		t.Fatalf("non-mutual edge: got %v, want ErrNotMutualTop3", err)
	}
}

func TestCreateThreadRejectsSelfAndEmpty(t *testing.T) {
	fx := newChatFixture()
	ctx := context.Background()

	if _, err := fx.uc.CreateThreadIfMutual(ctx, "user-a", "user-a"); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("self: got %v, want ErrInvalidRequest", err)
	}
	if _, err := fx.uc.CreateThreadIfMutual(ctx, "user-a", "  "); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("empty: got %v, want ErrInvalidRequest", err)
	}
}

func TestCreateThreadIdempotent(t *testing.T) {
	fx := newChatFixture()
	ctx := context.Background()
	fx.edges.setEdge("user-a", "user-b", true)

	first, err := fx.uc.CreateThreadIfMutual(ctx, "user-a", "user-b")
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := fx.uc.CreateThreadIfMutual(ctx, "user-b", "user-a")
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if first.ThreadID != second.ThreadID {
		t.Fatalf("expected one thread per pair: %s vs %s", first.ThreadID, second.ThreadID)
	}
	if len(fx.threads.byID) != 1 {
		t.Fatalf("expected 1 stored thread, got %d", len(fx.threads.byID))
	}
}

func TestThreadStaysAccessibleAfterDemotion(t *testing.T) {
	fx := newChatFixture()
	ctx := context.Background()
	fx.edges.setEdge("user-a", "user-b", true)

	thread, err := fx.uc.CreateThreadIfMutual(ctx, "user-a", "user-b")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// The pair drops out of each other's top-3; the open thread survives.
	fx.edges.setEdge("user-a", "user-b", false)

	if _, err := fx.uc.SendMessage(ctx, "user-a", thread.ThreadID, "olá"); err != nil {
		t.Fatalf("send after demotion: %v", err)
	}
	messages, err := fx.uc.ListMessages(ctx, "user-b", thread.ThreadID, 0)
	if err != nil {
		t.Fatalf("list after demotion: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(messages))
	}

	// But no new thread can be opened for another non-mutual pair.
	if _, err := fx.uc.CreateThreadIfMutual(ctx, "user-a", "user-c"); !errors.Is(err, domain.ErrNotMutualTop3) {
		t.Fatalf("new pair: got %v, want ErrNotMutualTop3", err)
	}
}

func TestRepeatCreateAfterDemotionReturnsExistingThread(t *testing.T) {
	fx := newChatFixture()
	ctx := context.Background()
	fx.edges.setEdge("user-a", "user-b", true)

	first, err := fx.uc.CreateThreadIfMutual(ctx, "user-a", "user-b")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// The gate applies only to pairs without a thread; once one exists,
	// repeat create calls return it even after the pair loses eligibility.
	fx.edges.setEdge("user-a", "user-b", false)

	repeat, err := fx.uc.CreateThreadIfMutual(ctx, "user-b", "user-a")
	if err != nil {
		t.Fatalf("repeat create after demotion: %v", err)
	}
	if repeat.ThreadID != first.ThreadID {
		t.Fatalf("expected existing thread %s, got %s", first.ThreadID, repeat.ThreadID)
	}
	if len(fx.threads.byID) != 1 {
		t.Fatalf("expected 1 stored thread, got %d", len(fx.threads.byID))
	}
}

func TestSendMessageValidation(t *testing.T) {
	fx := newChatFixture()
	ctx := context.Background()
	fx.edges.setEdge("user-a", "user-b", true)
	thread, err := fx.uc.CreateThreadIfMutual(ctx, "user-a", "user-b")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := fx.uc.SendMessage(ctx, "user-a", thread.ThreadID, "   "); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("blank body: got %v, want ErrInvalidRequest", err)
	}
	long := strings.Repeat("x", domain.MaxMessageLength+1)
	if _, err := fx.uc.SendMessage(ctx, "user-a", thread.ThreadID, long); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("oversized body: got %v, want ErrInvalidRequest", err)
	}

	messages, err := fx.uc.ListMessages(ctx, "user-a", thread.ThreadID, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("rejected sends must not grow the log, got %d messages", len(messages))
	}
}

func TestThreadAccessDeniedForOutsiders(t *testing.T) {
	fx := newChatFixture()
	ctx := context.Background()
	fx.edges.setEdge("user-a", "user-b", true)
	thread, err := fx.uc.CreateThreadIfMutual(ctx, "user-a", "user-b")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := fx.uc.ListMessages(ctx, "user-c", thread.ThreadID, 0); !errors.Is(err, domain.ErrThreadNotAccessible) {
		t.Fatalf("outsider list: got %v, want ErrThreadNotAccessible", err)
	}
	if _, err := fx.uc.SendMessage(ctx, "user-c", thread.ThreadID, "oi"); !errors.Is(err, domain.ErrThreadNotAccessible) {
		t.Fatalf("outsider send: got %v, want ErrThreadNotAccessible", err)
	}
	if _, err := fx.uc.ListMessages(ctx, "user-a", "missing-thread", 0); !errors.Is(err, domain.ErrThreadNotAccessible) {
		t.Fatalf("missing thread: got %v, want ErrThreadNotAccessible", err)
	}
}

func TestRevealFlipsDisplayNamesAtReadTime(t *testing.T) {
	fx := newChatFixture()
	ctx := context.Background()
	fx.edges.setEdge("user-a", "user-b", true)
	thread, err := fx.uc.CreateThreadIfMutual(ctx, "user-a", "user-b")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := fx.uc.SendMessage(ctx, "user-a", thread.ThreadID, "olá"); err != nil {
		t.Fatalf("send: %v", err)
	}

	hidden, err := fx.uc.ListMessages(ctx, "user-b", thread.ThreadID, 0)
	if err != nil {
		t.Fatalf("list hidden: %v", err)
	}
	if hidden[0].SenderDisplayName != hidden[0].SenderAlias {
		t.Fatalf("pre-reveal display name leaked: %q", hidden[0].SenderDisplayName)
	}
	if !strings.HasPrefix(hidden[0].SenderAlias, "Cupido #") {
		t.Fatalf("unexpected alias: %q", hidden[0].SenderAlias)
	}

	fx.settings.enabled = true

	revealed, err := fx.uc.ListMessages(ctx, "user-b", thread.ThreadID, 0)
	if err != nil {
		t.Fatalf("list revealed: %v", err)
	}
	if revealed[0].SenderDisplayName != "Ana" {
		t.Fatalf("post-reveal: got %q, want Ana", revealed[0].SenderDisplayName)
	}
	if revealed[0].SenderAlias != hidden[0].SenderAlias {
		t.Fatalf("alias changed across reveal: %q vs %q", revealed[0].SenderAlias, hidden[0].SenderAlias)
	}
}

func TestListMyThreadsReadsRevealOnce(t *testing.T) {
	fx := newChatFixture()
	ctx := context.Background()
	fx.edges.setEdge("user-a", "user-b", true)
	fx.edges.setEdge("user-a", "user-c", true)
	if _, err := fx.uc.CreateThreadIfMutual(ctx, "user-a", "user-b"); err != nil {
		t.Fatalf("create b: %v", err)
	}
	if _, err := fx.uc.CreateThreadIfMutual(ctx, "user-a", "user-c"); err != nil {
		t.Fatalf("create c: %v", err)
	}

	fx.settings.getCalls = 0
	summaries, err := fx.uc.ListMyThreads(ctx, "user-a")
	if err != nil {
		t.Fatalf("ListMyThreads: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}
	if fx.settings.getCalls != 1 {
		t.Fatalf("listing read the reveal flag %d times, want 1", fx.settings.getCalls)
	}
}
