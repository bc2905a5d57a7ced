package quiz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fredluz/Cupido/internal/domain"
	"github.com/fredluz/Cupido/internal/pkg/logger"
	"github.com/fredluz/Cupido/internal/usecase/group"
	"github.com/fredluz/Cupido/internal/usecase/match"
	"github.com/fredluz/Cupido/internal/usecase/reveal"
)

type fakeProfileRepo struct {
	profiles []*domain.Profile
}

func (f *fakeProfileRepo) Upsert(_ context.Context, profile *domain.Profile) error {
	for i, p := range f.profiles {
		if p.UserID == profile.UserID {
			f.profiles[i] = profile
			return nil
		}
	}
	f.profiles = append(f.profiles, profile)
	return nil
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (f *fakeProfileRepo) UpdatePhone(_ context.Context, userID, phone string) error {
	for _, p := range f.profiles {
		if p.UserID == userID {
			p.Phone = &phone
			return nil
		}
	}
	return domain.ErrProfileNotFound
}

func (f *fakeProfileRepo) ListAll(_ context.Context) ([]*domain.Profile, error) {
	return append([]*domain.Profile(nil), f.profiles...), nil
}

type fakeEdgeRepo struct {
	edges map[string]*domain.MatchEdge
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

type fakeGroupRepo struct {
	byKey   map[domain.Category]*domain.Group
	members map[string]*domain.GroupMember
}

func newFakeGroupRepo() *fakeGroupRepo {
	f := &fakeGroupRepo{
		byKey:   map[domain.Category]*domain.Group{},
		members: map[string]*domain.GroupMember{},
	}
	for i, key := range domain.Categories {
		f.byKey[key] = &domain.Group{
			Key:      key,
			Label:    "Tribo " + string(key),
			ThreadID: "group-thread-" + string(rune('a'+i)),
		}
	}
	return f
}

func (f *fakeGroupRepo) GetByKey(_ context.Context, key domain.Category) (*domain.Group, error) {
	g, ok := f.byKey[key]
	if !ok {
		return nil, errors.New("unknown group")
	}
	return g, nil
}

func (f *fakeGroupRepo) GetByThreadID(_ context.Context, threadID string) (*domain.Group, error) {
	for _, g := range f.byKey {
		if g.ThreadID == threadID {
			return g, nil
		}
	}
	return nil, domain.ErrThreadNotFound
}

func (f *fakeGroupRepo) GetMember(_ context.Context, userID string) (*domain.GroupMember, error) {
	return f.members[userID], nil
}

func (f *fakeGroupRepo) UpsertMember(_ context.Context, member *domain.GroupMember) error {
	stored := *member
	stored.AssignedAt = time.Now()
	f.members[member.UserID] = &stored
	return nil
}

func (f *fakeGroupRepo) MemberCount(_ context.Context, key domain.Category) (int, error) {
	count := 0
	for _, m := range f.members {
		if m.GroupKey == key {
			count++
		}
	}
	return count, nil
}

type fakeMessageRepo struct{}

func (f *fakeMessageRepo) Create(_ context.Context, _ *domain.Message) error { return nil }
func (f *fakeMessageRepo) ListByThread(_ context.Context, _ string, _ int) ([]*domain.Message, error) {
	return nil, nil
}

type fakeSettingsRepo struct{}

func (f *fakeSettingsRepo) Get(_ context.Context) (*domain.AppSettings, error) {
	return &domain.AppSettings{ID: 1}, nil
}

func (f *fakeSettingsRepo) SetRevealEnabled(_ context.Context, enabled bool) (*domain.AppSettings, error) {
	return &domain.AppSettings{ID: 1, RevealEnabled: enabled}, nil
}

type quizFixture struct {
	uc       *UseCase
	profiles *fakeProfileRepo
	groups   *fakeGroupRepo
	edges    *fakeEdgeRepo
}

func newQuizFixture() *quizFixture {
	profiles := &fakeProfileRepo{}
	edges := &fakeEdgeRepo{edges: map[string]*domain.MatchEdge{}}
	groups := newFakeGroupRepo()
	log := logger.NewNop()

	revealUC := reveal.NewUseCase(&fakeSettingsRepo{}, nil, nil, log)
	matchUC := match.NewUseCase(profiles, edges, nil, log)
	groupUC := group.NewUseCase(groups, profiles, &fakeMessageRepo{}, revealUC, log)
	return &quizFixture{
		uc:       NewUseCase(profiles, matchUC, groupUC, log),
		profiles: profiles,
		groups:   groups,
		edges:    edges,
	}
}

func submission(name string, answers ...string) *SubmitRequest {
	req := &SubmitRequest{
		UserName:   name,
		Gender:     "f",
		LookingFor: "mf",
		CourseCode: "LEIC",
		StudyYear:  "year_2",
	}
	for i := range answers {
		req.Answers = append(req.Answers, &answers[i])
	}
	return req
}

func TestSubmitStoresScoresAndAssignsTribe(t *testing.T) {
	fx := newQuizFixture()
	ctx := context.Background()

	resp, err := fx.uc.Submit(ctx, "user-1", submission("Ana",
		"romantic", "romantic", "romantic", "chill", "chill", "social", "ambitious"))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if resp.Profile.Romantic != 6 || resp.Profile.Chill != 4 || resp.Profile.Social != 2 || resp.Profile.Ambitious != 2 {
		t.Fatalf("unexpected scores: %+v", resp.Profile)
	}
	if len(resp.TopMatches) != 0 {
		t.Fatalf("lone participant should have no matches, got %d", len(resp.TopMatches))
	}

	member := fx.groups.members["user-1"]
	if member == nil || member.GroupKey != domain.CategoryRomantic {
		t.Fatalf("expected romantic tribe, got %+v", member)
	}
}

func TestSubmitSecondParticipantGetsMatches(t *testing.T) {
	fx := newQuizFixture()
	ctx := context.Background()

	if _, err := fx.uc.Submit(ctx, "user-1", submission("Ana",
		"romantic", "romantic", "romantic", "romantic", "romantic", "romantic", "romantic")); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	resp, err := fx.uc.Submit(ctx, "user-2", submission("Bia",
		"romantic", "romantic", "romantic", "romantic", "romantic", "romantic", "chill"))
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}

	if len(resp.TopMatches) != 1 {
		t.Fatalf("got %d matches, want 1", len(resp.TopMatches))
	}
	if resp.TopMatches[0].UserID != "user-1" || !resp.TopMatches[0].IsMutualTop3 {
		t.Fatalf("unexpected match: %+v", resp.TopMatches[0])
	}

	edge, err := fx.edges.GetByUsers(ctx, "user-1", "user-2")
	if err != nil || edge == nil || !edge.MutualTop3 {
		t.Fatalf("expected mutual edge, got %+v (%v)", edge, err)
	}
}

func TestSubmitResubmissionMovesTribe(t *testing.T) {
	fx := newQuizFixture()
	ctx := context.Background()

	if _, err := fx.uc.Submit(ctx, "user-1", submission("Ana",
		"romantic", "romantic", "romantic", "romantic", "romantic", "romantic", "romantic")); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := fx.uc.Submit(ctx, "user-1", submission("Ana",
		"ambitious", "ambitious", "ambitious", "ambitious", "ambitious", "ambitious", "ambitious")); err != nil {
		t.Fatalf("resubmit: %v", err)
	}

	member := fx.groups.members["user-1"]
	if member == nil || member.GroupKey != domain.CategoryAmbitious {
		t.Fatalf("expected ambitious tribe after resubmit, got %+v", member)
	}
	if len(fx.profiles.profiles) != 1 {
		t.Fatalf("resubmit must not duplicate profile, got %d", len(fx.profiles.profiles))
	}
}

func TestSubmitValidation(t *testing.T) {
	fx := newQuizFixture()
	ctx := context.Background()

	cases := []struct {
		name string
		req  *SubmitRequest
	}{
		{"blank name", submission("   ", "romantic", "romantic", "romantic", "romantic", "romantic", "romantic", "romantic")},
		{"too few answers", submission("Ana", "romantic", "romantic")},
		{"unknown category", submission("Ana", "romantic", "romantic", "romantic", "romantic", "romantic", "romantic", "mysterious")},
	}
	for _, tc := range cases {
		if _, err := fx.uc.Submit(ctx, "user-1", tc.req); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Fatalf("%s: got %v, want ErrInvalidRequest", tc.name, err)
		}
	}

	nilAnswer := submission("Ana", "romantic", "romantic", "romantic", "romantic", "romantic", "romantic", "romantic")
	nilAnswer.Answers[3] = nil
	if _, err := fx.uc.Submit(ctx, "user-1", nilAnswer); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("nil answer: got %v, want ErrInvalidRequest", err)
	}
}

func TestUpdateContactHandle(t *testing.T) {
	fx := newQuizFixture()
	ctx := context.Background()

	if _, err := fx.uc.Submit(ctx, "user-1", submission("Ana",
		"romantic", "romantic", "romantic", "romantic", "romantic", "romantic", "romantic")); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := fx.uc.UpdateContactHandle(ctx, "user-1", "  "); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("blank handle: got %v, want ErrInvalidRequest", err)
	}
	if err := fx.uc.UpdateContactHandle(ctx, "user-1", "@ana.ig"); err != nil {
		t.Fatalf("update: %v", err)
	}

	profile, err := fx.uc.GetMyProfile(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetMyProfile: %v", err)
	}
	if profile.ContactHandle() != "@ana.ig" {
		t.Fatalf("got %q, want @ana.ig", profile.ContactHandle())
	}
}
