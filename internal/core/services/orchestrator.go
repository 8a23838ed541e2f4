package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/harmonia-labs/moodcraft/internal/core/domain"
	"github.com/harmonia-labs/moodcraft/internal/core/mood"
	"github.com/harmonia-labs/moodcraft/internal/core/plan"
	"github.com/harmonia-labs/moodcraft/internal/core/ports"
	"github.com/harmonia-labs/moodcraft/internal/core/rank"
)

const (
	// DefaultLimit is the playlist size when the caller passes zero.
	DefaultLimit = 20
	// MaxLimit caps how many tracks one generation call may request.
	MaxLimit = 100
)

// EnergyAnalyzer schedules background preview analysis for a saved playlist.
// A nil analyzer disables the backfill.
type EnergyAnalyzer interface {
	Submit(playlistID string, tracks []domain.TrackRecord) bool
}

// GenerateParams is the full input surface of one generation call. Vibe is
// the only required field.
type GenerateParams struct {
	Vibe            string
	Mood            string
	Activity        string
	GenreOrLanguage string
	ExcludeExplicit bool
	Limit           int
	// QuizAnswers holds Likert answers keyed by question number; empty skips
	// the quiz signal entirely.
	QuizAnswers map[int]string
	FocusYes    *bool
	// Seed fixes the random streams for reproducible plans; zero means
	// time-seeded.
	Seed int64
	// UsedIDs excludes tracks already consumed by earlier builds.
	UsedIDs []string
	// Budget overrides the retrieval wall clock; zero uses the default.
	Budget time.Duration
}

// GenerateResult is the generation output before any save.
type GenerateResult struct {
	Mood        domain.FusedMood
	Plan        plan.Plan
	Tracks      []domain.RankedTrack
	Description string
}

// Orchestrator wires the mood, planning, retrieval and ranking stages behind
// one service surface. Classifier and Describer are optional; Catalog and
// Repository are not.
type Orchestrator struct {
	Catalog    ports.CatalogProvider
	Repository ports.PlaylistRepository
	Classifier ports.MoodClassifier
	Describer  ports.Describer
	Planner    plan.Planner
	Analyzer   EnergyAnalyzer
	Now        func() time.Time
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o *Orchestrator) classifier() ports.MoodClassifier {
	if o.Classifier != nil {
		return o.Classifier
	}
	return mood.LexiconClassifier{}
}

// TextClassifier exposes the configured classifier (or the lexicon default)
// so transports can run standalone text classification through the same port.
func (o *Orchestrator) TextClassifier() ports.MoodClassifier {
	return o.classifier()
}

// ResolveMood fuses the text signal with the optional Likert quiz. An
// explicit mood short-circuits classification entirely.
func (o *Orchestrator) ResolveMood(params GenerateParams) domain.FusedMood {
	if m := strings.ToLower(strings.TrimSpace(params.Mood)); m != "" {
		return domain.FusedMood{
			Label:        m,
			Confidence:   1,
			Distribution: domain.MoodDistribution{m: 1},
		}
	}
	_, _, dist := o.classifier().ClassifyText(params.Vibe)
	// A bare focus answer still counts as quiz participation: it must be able
	// to trigger the focus override even without Likert answers.
	if len(params.QuizAnswers) == 0 && params.FocusYes == nil {
		fused := mood.Fuse(mood.Signal{Dist: dist, Weight: 1})
		return fused
	}
	quiz := mood.EvaluateLikertQuiz(params.QuizAnswers, params.FocusYes)
	return mood.FuseWithQuiz(dist, quiz, mood.WeightTextOnly, mood.WeightQuizOnly)
}

// Generate runs the full pipeline: mood resolution, query planning, tiered
// retrieval, ranking and description. Retrieval shortfalls produce a shorter
// playlist, never an error.
func (o *Orchestrator) Generate(ctx context.Context, params GenerateParams) (GenerateResult, error) {
	if strings.TrimSpace(params.Vibe) == "" {
		return GenerateResult{}, domain.ErrEmptyVibe
	}
	if params.Limit == 0 {
		params.Limit = DefaultLimit
	}
	if params.Limit < 1 || params.Limit > MaxLimit {
		return GenerateResult{}, fmt.Errorf("%w: %d", domain.ErrInvalidLimit, params.Limit)
	}

	fused := o.ResolveMood(params)
	p := o.Planner.Build(plan.Request{
		Vibe:            params.Vibe,
		Mood:            fused.Label,
		Activity:        params.Activity,
		GenreOrLanguage: params.GenreOrLanguage,
		Seed:            params.Seed,
	})
	log.Printf("DEBUG generate: mood=%s conf=%.2f queries=%d markets=%v lang=%q genres=%v",
		fused.Label, fused.Confidence, len(p.Queries), p.Markets, p.Language, p.Genres)

	rc := NewRetrievalContext(params.UsedIDs, params.Seed, params.Budget)
	retriever := Retriever{Catalog: o.Catalog}
	// Over-fetch so ranking has room to discard weak candidates.
	candidates := retriever.Retrieve(ctx, p, params.Limit*3, rc)
	log.Printf("DEBUG generate: retrieved %d candidates for target %d", len(candidates), params.Limit)

	engine := rank.Engine{Features: o.Catalog}
	ranked := engine.Rank(ctx, candidates, rank.Request{
		Mood:            fused.Label,
		Activity:        params.Activity,
		VibeText:        params.Vibe,
		Genres:          p.Genres,
		ExcludeExplicit: params.ExcludeExplicit,
		ArtistGenres:    rc.ArtistGenres(),
		Rng:             plan.NewRng(params.Seed),
	})
	if len(ranked) > params.Limit {
		ranked = ranked[:params.Limit]
	}

	return GenerateResult{
		Mood:        fused,
		Plan:        p,
		Tracks:      ranked,
		Description: o.describe(ctx, fused.Label, params.Activity, ranked),
	}, nil
}

// describe asks the configured describer, falling back to static copy on any
// failure so generation never blocks on the description service.
func (o *Orchestrator) describe(ctx context.Context, moodLabel, activity string, tracks []domain.RankedTrack) string {
	if o.Describer != nil {
		desc, err := o.Describer.Describe(ctx, moodLabel, activity, tracks)
		if err == nil && strings.TrimSpace(desc) != "" {
			return strings.TrimSpace(desc)
		}
		if err != nil {
			log.Printf("WARN describe: falling back to static copy: %v", err)
		}
	}
	return FallbackDescription(moodLabel, activity)
}

// FallbackDescription is the static copy used when no describer is configured
// or the call fails.
func FallbackDescription(moodLabel, activity string) string {
	setting := strings.TrimSpace(activity)
	if setting == "" {
		setting = "any moment"
	}
	if strings.TrimSpace(moodLabel) == "" {
		moodLabel = "custom"
	}
	return fmt.Sprintf("A %s playlist tailored for %s, mixing tracks matched to your vibe.", moodLabel, setting)
}

// Save persists a generated playlist and schedules preview energy analysis
// when an analyzer is wired.
func (o *Orchestrator) Save(ctx context.Context, title string, req domain.PlaylistRequest, result GenerateResult) (domain.SavedPlaylist, error) {
	p := domain.NewSavedPlaylist(title, req, result.Tracks, result.Description, o.now())
	if err := o.Repository.Save(ctx, p); err != nil {
		return domain.SavedPlaylist{}, fmt.Errorf("save playlist: %w", err)
	}
	if o.Analyzer != nil {
		if !o.Analyzer.Submit(p.ID, p.Tracks) {
			log.Printf("WARN save: analyzer queue full, skipping energy backfill for %s", p.ID)
		}
	}
	return p, nil
}

// List returns stored playlist summaries, newest first.
func (o *Orchestrator) List(ctx context.Context) ([]domain.PlaylistSummary, error) {
	return o.Repository.List(ctx)
}

// Load fetches one stored playlist by id.
func (o *Orchestrator) Load(ctx context.Context, id string) (domain.SavedPlaylist, error) {
	return o.Repository.Load(ctx, id)
}

// Delete removes one stored playlist, reporting whether it existed.
func (o *Orchestrator) Delete(ctx context.Context, id string) (bool, error) {
	return o.Repository.Delete(ctx, id)
}
