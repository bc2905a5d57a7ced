package quiz

import (
	"context"
	"fmt"
	"strings"

	"github.com/fredluz/Cupido/internal/domain"
	"github.com/fredluz/Cupido/internal/pkg/logger"
	"github.com/fredluz/Cupido/internal/repository"
	"github.com/fredluz/Cupido/internal/usecase/group"
	"github.com/fredluz/Cupido/internal/usecase/match"
)

type UseCase struct {
	profileRepo repository.ProfileRepository
	matchUC     *match.UseCase
	groupUC     *group.UseCase
	log         *logger.Logger
}

func NewUseCase(
	profileRepo repository.ProfileRepository,
	matchUC *match.UseCase,
	groupUC *group.UseCase,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		profileRepo: profileRepo,
		matchUC:     matchUC,
		groupUC:     groupUC,
		log:         log.With("usecase", "quiz"),
	}
}

// SubmitRequest is a full quiz submission. Answers are ordered one per
// question; each entry names the category the chosen answer scores into.
// Entries are pointers so a resubmitting client can send explicit nulls,
// but a complete submission requires every answer present.
type SubmitRequest struct {
	UserName   string    `json:"user_name" binding:"required"`
	Phone      string    `json:"phone"`
	Gender     string    `json:"gender" binding:"required,oneof=m f"`
	LookingFor string    `json:"looking_for" binding:"required,oneof=m f mf"`
	CourseCode string    `json:"course_code" binding:"required"`
	StudyYear  string    `json:"study_year" binding:"required,oneof=year_1 year_2 year_3"`
	Answers    []*string `json:"answers" binding:"required,len=7,dive,required,quizcategory"`
}

// SubmitResponse mirrors the original submit-and-refresh flow: the stored
// profile plus the caller's fresh top matches in one round trip.
type SubmitResponse struct {
	Profile    *domain.Profile      `json:"profile"`
	TopMatches []*match.RankedMatch `json:"top_matches"`
}

// Submit scores the answers, upserts the profile and triggers the match and
// tribe recomputations that hang off every profile write.
func (uc *UseCase) Submit(ctx context.Context, userID string, req *SubmitRequest) (*SubmitResponse, error) {
	userName := strings.TrimSpace(req.UserName)
	if userName == "" {
		return nil, domain.ErrInvalidRequest
	}
	if len(req.Answers) != domain.QuestionCount {
		return nil, domain.ErrInvalidRequest
	}
	for _, answer := range req.Answers {
		if answer == nil || !domain.ValidCategory(*answer) {
			return nil, domain.ErrInvalidRequest
		}
	}

	profile := &domain.Profile{
		UserID:     userID,
		UserName:   userName,
		Gender:     domain.Gender(req.Gender),
		LookingFor: domain.Preference(req.LookingFor),
		CourseCode: strings.TrimSpace(req.CourseCode),
		StudyYear:  req.StudyYear,
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		profile.Phone = &phone
	}
	profile.SetScores(domain.ScoresFromAnswers(req.Answers))

	if err := uc.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}

	if err := uc.groupUC.Assign(ctx, profile); err != nil {
		// The profile write already succeeded; surface the failure rather
		// than leaving the caller to discover a missing tribe later.
		return nil, err
	}

	topMatches, err := uc.matchUC.Refresh(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &SubmitResponse{Profile: profile, TopMatches: topMatches}, nil
}

func (uc *UseCase) GetMyProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return uc.profileRepo.GetByUserID(ctx, userID)
}

// UpdateContactHandle edits the participant's contact handle without
// touching scores or triggering any recomputation.
func (uc *UseCase) UpdateContactHandle(ctx context.Context, userID, handle string) error {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return domain.ErrInvalidRequest
	}
	return uc.profileRepo.UpdatePhone(ctx, userID, handle)
}
