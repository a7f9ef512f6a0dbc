package history

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	trendingWindow = 24 * time.Hour
	trendingLimit  = 3
	recommendLimit = 10
	mineLimit      = 20

	scoreProfileMatch      = 10
	scoreStrengthsMatch    = 5
	scoreImprovementsMatch = 3
	scorePerLike           = 2
	scorePerSave           = 3
	recencyBonusMax        = 10
)

// ErrForbidden is returned when a caller touches someone else's record.
var ErrForbidden = errors.New("record belongs to another user")

// Service contains the sharing and feed logic.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

// NewService constructs a Service backed by the given repo.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: func() time.Time { return time.Now().UTC() }}
}

// Share publishes an analysis result to the feed.
func (s *Service) Share(ctx context.Context, record SharedRecord) (SharedRecord, error) {
	if record.OwnerID == "" {
		return SharedRecord{}, errors.New("ownerId is required")
	}
	record.ID = uuid.NewString()
	record.Likes = 0
	record.Saves = 0
	record.CreatedAt = s.Now()
	if record.Result != nil {
		if record.StudentProfile == "" {
			record.StudentProfile = record.Result.StudentProfile
		}
		if record.CareerDirection == "" {
			record.CareerDirection = record.Result.CareerDirection
		}
		if record.OverallScore == 0 {
			record.OverallScore = record.Result.OverallScore
		}
		if len(record.Strengths) == 0 {
			record.Strengths = record.Result.Strengths
		}
		if len(record.Improvements) == 0 {
			record.Improvements = record.Result.Improvements
		}
	}
	if err := s.Repo.Create(ctx, record); err != nil {
		return SharedRecord{}, err
	}
	return record, nil
}

// Viewable lists public records plus the viewer's private ones.
func (s *Service) Viewable(ctx context.Context, viewerID string) ([]SharedRecord, error) {
	return s.Repo.ListViewable(ctx, viewerID)
}

// Trending returns the three most liked public records of the last day.
func (s *Service) Trending(ctx context.Context) ([]SharedRecord, error) {
	records, err := s.Repo.ListPublicSince(ctx, s.Now().Add(-trendingWindow))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Likes > records[j].Likes
	})
	if len(records) > trendingLimit {
		records = records[:trendingLimit]
	}
	return records, nil
}

// Recommended scores the viewable feed against the query and returns the
// best matches.
func (s *Service) Recommended(ctx context.Context, viewerID, query string) ([]SharedRecord, error) {
	records, err := s.Repo.ListViewable(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	scores := make(map[string]int, len(records))
	for _, record := range records {
		scores[record.ID] = s.score(record, query, now)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return scores[records[i].ID] > scores[records[j].ID]
	})
	if len(records) > recommendLimit {
		records = records[:recommendLimit]
	}
	return records, nil
}

func (s *Service) score(record SharedRecord, query string, now time.Time) int {
	score := 0
	q := strings.ToLower(strings.TrimSpace(query))
	if q != "" {
		if strings.Contains(strings.ToLower(record.StudentProfile), q) ||
			strings.Contains(strings.ToLower(record.CareerDirection), q) {
			score += scoreProfileMatch
		}
		if containsFold(record.Strengths, q) {
			score += scoreStrengthsMatch
		}
		if containsFold(record.Improvements, q) {
			score += scoreImprovementsMatch
		}
	}
	score += record.Likes * scorePerLike
	score += record.Saves * scorePerSave
	days := int(now.Sub(record.CreatedAt).Hours() / 24)
	if bonus := recencyBonusMax - days; bonus > 0 {
		score += bonus
	}
	return score
}

func containsFold(items []string, q string) bool {
	for _, item := range items {
		if strings.Contains(strings.ToLower(item), q) {
			return true
		}
	}
	return false
}

// Mine lists the caller's own history, deduplicated and capped.
func (s *Service) Mine(ctx context.Context, ownerID string) ([]SharedRecord, error) {
	records, err := s.Repo.ListByOwner(ctx, ownerID, mineLimit)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(records))
	out := records[:0]
	for _, record := range records {
		if _, ok := seen[record.ID]; ok {
			continue
		}
		seen[record.ID] = struct{}{}
		out = append(out, record)
	}
	return out, nil
}

// Like bumps the like counter and returns the new value.
func (s *Service) Like(ctx context.Context, recordID string) (int, error) {
	return s.Repo.IncrementLikes(ctx, recordID)
}

// Save bumps the save counter and returns the new value.
func (s *Service) Save(ctx context.Context, recordID string) (int, error) {
	return s.Repo.IncrementSaves(ctx, recordID)
}

// Delete removes a record after verifying ownership.
func (s *Service) Delete(ctx context.Context, recordID, callerID string) error {
	record, err := s.Repo.GetByID(ctx, recordID)
	if err != nil {
		return err
	}
	if record.OwnerID != callerID {
		return ErrForbidden
	}
	return s.Repo.Delete(ctx, recordID)
}
