package match

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/fredluz/Cupido/internal/domain"
	"github.com/fredluz/Cupido/internal/pkg/logger"
	"github.com/fredluz/Cupido/internal/repository"
	"github.com/redis/go-redis/v9"
)

// TopN is how many ranked candidates a participant sees. The mutual-top-3
// rule that gates 1:1 chat creation is defined over this window.
const TopN = 3

const (
	cacheKeyPrefix = "cupido:matches:"
	cacheTTL       = 15 * time.Second
)

type UseCase struct {
	profileRepo repository.ProfileRepository
	edgeRepo    repository.MatchEdgeRepository
	cache       *redis.Client
	log         *logger.Logger
}

func NewUseCase(
	profileRepo repository.ProfileRepository,
	edgeRepo repository.MatchEdgeRepository,
	cache *redis.Client,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		profileRepo: profileRepo,
		edgeRepo:    edgeRepo,
		cache:       cache,
		log:         log.With("usecase", "match"),
	}
}

// RankedMatch is one entry of a participant's top-3.
type RankedMatch struct {
	UserID        string            `json:"user_id"`
	UserName      string            `json:"user_name"`
	Phone         string            `json:"phone"`
	Gender        domain.Gender     `json:"gender"`
	LookingFor    domain.Preference `json:"looking_for"`
	Compatibility int               `json:"compatibility"`
	IsMutualTop3  bool              `json:"is_mutual_top3"`
	Rank          int               `json:"rank"`
}

// ComputeMatches returns the caller's current top-3. Results are cached
// briefly in redis to keep frequent client polling cheap; a cache miss
// triggers a full refresh of the caller's match edges.
func (uc *UseCase) ComputeMatches(ctx context.Context, userID string) ([]*RankedMatch, error) {
	if cached := uc.readCache(ctx, userID); cached != nil {
		return cached, nil
	}
	return uc.Refresh(ctx, userID)
}

// Refresh recomputes the caller's ranking against the whole pool, persists
// the per-pair top-3 flags and returns the fresh top-3. It runs on every
// profile write and on every cache miss; eligibility of counterparts is
// re-evaluated each time, so mutual flags can flip in both directions.
func (uc *UseCase) Refresh(ctx context.Context, userID string) ([]*RankedMatch, error) {
	profiles, err := uc.profileRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	var me *domain.Profile
	for _, p := range profiles {
		if p.UserID == userID {
			me = p
			break
		}
	}
	if me == nil {
		return nil, domain.ErrProfileNotFound
	}

	eligible := eligibleFor(me, profiles)
	ranking := rank(me, eligible)
	myTop3 := topSet(ranking)

	// Persist an edge for every evaluated pair. The counterpart's side needs
	// their own ranking; the pool is event-sized, so recomputing it inline
	// beats maintaining an incremental index.
	edges := make([]*domain.MatchEdge, 0, len(ranking))
	mutual := make(map[string]bool, len(ranking))
	for _, entry := range ranking {
		counterpartTop3 := topSet(rank(entry.profile, eligibleFor(entry.profile, profiles)))
		meInTheirs := counterpartTop3[me.UserID]
		theirsInMine := myTop3[entry.profile.UserID]
		mutual[entry.profile.UserID] = meInTheirs && theirsInMine

		userAID, userBID := domain.NormalizePair(me.UserID, entry.profile.UserID)
		edge := &domain.MatchEdge{
			UserAID: userAID,
			UserBID: userBID,
			Score:   entry.score,
		}
		// a_in_b_top3 means: does B's top-3 contain A?
		if userAID == me.UserID {
			edge.AInBTop3 = meInTheirs
			edge.BInATop3 = theirsInMine
		} else {
			edge.AInBTop3 = theirsInMine
			edge.BInATop3 = meInTheirs
		}
		edge.MutualTop3 = edge.AInBTop3 && edge.BInATop3
		edges = append(edges, edge)
	}

	if err := uc.edgeRepo.UpsertEdges(ctx, edges); err != nil {
		return nil, fmt.Errorf("failed to persist match edges: %w", err)
	}

	results := make([]*RankedMatch, 0, TopN)
	for i, entry := range ranking {
		if i >= TopN {
			break
		}
		results = append(results, &RankedMatch{
			UserID:        entry.profile.UserID,
			UserName:      entry.profile.UserName,
			Phone:         entry.profile.ContactHandle(),
			Gender:        entry.profile.Gender,
			LookingFor:    entry.profile.LookingFor,
			Compatibility: entry.score,
			IsMutualTop3:  mutual[entry.profile.UserID],
			Rank:          i + 1,
		})
	}

	uc.writeCache(ctx, userID, results)
	uc.invalidateCounterparts(ctx, ranking)

	return results, nil
}

type rankedEntry struct {
	profile *domain.Profile
	score   int
}

// eligibleFor filters the pool down to candidates with mutual
// gender/preference interest, excluding the participant themselves.
// Discovery order is preserved so ranking stays deterministic.
func eligibleFor(me *domain.Profile, pool []*domain.Profile) []*domain.Profile {
	eligible := make([]*domain.Profile, 0, len(pool))
	for _, candidate := range pool {
		if candidate.UserID == me.UserID {
			continue
		}
		if !domain.MutuallyInterested(me, candidate) {
			continue
		}
		eligible = append(eligible, candidate)
	}
	return eligible
}

// rank scores every eligible candidate and sorts descending. The sort is
// stable, so ties keep discovery order.
func rank(me *domain.Profile, eligible []*domain.Profile) []rankedEntry {
	myScores := me.Scores()
	entries := make([]rankedEntry, 0, len(eligible))
	for _, candidate := range eligible {
		entries = append(entries, rankedEntry{
			profile: candidate,
			score:   domain.Compatibility(myScores, candidate.Scores()),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].score > entries[j].score
	})
	return entries
}

func topSet(ranking []rankedEntry) map[string]bool {
	top := make(map[string]bool, TopN)
	for i, entry := range ranking {
		if i >= TopN {
			break
		}
		top[entry.profile.UserID] = true
	}
	return top
}

func (uc *UseCase) readCache(ctx context.Context, userID string) []*RankedMatch {
	if uc.cache == nil {
		return nil
	}
	raw, err := uc.cache.Get(ctx, cacheKeyPrefix+userID).Bytes()
	if err != nil {
		return nil
	}
	var results []*RankedMatch
	if err := json.Unmarshal(raw, &results); err != nil {
		uc.log.Warn("dropping bad match cache entry", "user_id", userID, "error", err)
		return nil
	}
	return results
}

func (uc *UseCase) writeCache(ctx context.Context, userID string, results []*RankedMatch) {
	if uc.cache == nil {
		return
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, cacheKeyPrefix+userID, raw, cacheTTL).Err(); err != nil {
		uc.log.Warn("failed to cache matches", "user_id", userID, "error", err)
	}
}

// invalidateCounterparts drops cached rankings of everyone the refresh may
// have demoted or promoted.
func (uc *UseCase) invalidateCounterparts(ctx context.Context, ranking []rankedEntry) {
	if uc.cache == nil || len(ranking) == 0 {
		return
	}
	keys := make([]string, 0, len(ranking))
	for _, entry := range ranking {
		keys = append(keys, cacheKeyPrefix+entry.profile.UserID)
	}
	if err := uc.cache.Del(ctx, keys...).Err(); err != nil {
		uc.log.Warn("failed to invalidate match caches", "error", err)
	}
}
