package analysis

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/yourusername/octagon-edge/internal/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// stubFighterRepo implements repository.FighterRepository
type stubFighterRepo struct {
	profiles map[string]*models.FighterProfile
	err      error
}

func (s *stubFighterRepo) Upsert(ctx context.Context, fighter *models.FighterProfile) error {
	return nil
}

func (s *stubFighterRepo) GetByName(ctx context.Context, name string) (*models.FighterProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	if profile, ok := s.profiles[name]; ok {
		return profile, nil
	}
	return nil, models.ErrNotFound
}

func (s *stubFighterRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.FighterProfile, error) {
	return nil, models.ErrNotFound
}

func (s *stubFighterRepo) GetStale(ctx context.Context, olderThan time.Duration, limit int) ([]*models.FighterProfile, error) {
	return nil, nil
}

func (s *stubFighterRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

// stubFightRepo implements repository.FightRepository
type stubFightRepo struct {
	records []*models.FightRecord
	err     error
}

func (s *stubFightRepo) Insert(ctx context.Context, record *models.FightRecord) error { return nil }

func (s *stubFightRepo) InsertBatch(ctx context.Context, records []*models.FightRecord) error {
	return nil
}

func (s *stubFightRepo) GetHistory(ctx context.Context, fighter string) ([]*models.FightRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	var history []*models.FightRecord
	for _, record := range s.records {
		if _, _, ok := record.OpponentOf(fighter); ok {
			history = append(history, record)
		}
	}
	return history, nil
}

func (s *stubFightRepo) GetWinsAndLosses(ctx context.Context, fighter string) (wins, losses []*models.FightRecord, err error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	for _, record := range s.records {
		_, result, ok := record.OpponentOf(fighter)
		if !ok {
			continue
		}
		if result == models.ResultWin {
			wins = append(wins, record)
		} else {
			losses = append(losses, record)
		}
	}
	return wins, losses, nil
}

func (s *stubFightRepo) GetRecordsSince(ctx context.Context, since time.Time, limit int) ([]*models.FightRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func win(winner, loser, method string, year int) *models.FightRecord {
	return &models.FightRecord{
		ID:     uuid.New(),
		Winner: winner,
		Loser:  loser,
		Method: method,
		Date:   time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func statsProfile(name string, slpm, tdAvg, subAvg float64) *models.FighterProfile {
	return &models.FighterProfile{
		ID:     uuid.New(),
		Name:   name,
		Stance: models.StanceOrthodox,
		SLPM:   slpm,
		TDAvg:  tdAvg,
		SubAvg: subAvg,
	}
}

func TestClassifyFromStatsCascade(t *testing.T) {
	tests := []struct {
		name                string
		slpm, tdAvg, subAvg float64
		want                models.StyleLabel
	}{
		{"high volume low takedowns", 4.0, 0.5, 0.2, models.StyleStriker},
		{"submission threat", 2.0, 0.5, 1.5, models.StyleSubmissionGrappler},
		{"heavy takedowns", 2.0, 2.8, 0.2, models.StyleSubmissionGrappler},
		{"control wrestler", 2.0, 2.2, 0.2, models.StyleControlGrappler},
		{"volume plus wrestling", 3.2, 1.8, 0.2, models.StyleMixed},
		{"no standout stat", 2.0, 0.5, 0.2, models.StyleBalanced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fighters := &stubFighterRepo{profiles: map[string]*models.FighterProfile{
				"X": statsProfile("X", tt.slpm, tt.tdAvg, tt.subAvg),
			}}
			classifier := NewStyleClassifier(fighters, &stubFightRepo{}, nil, testLogger())

			assert.Equal(t, tt.want, classifier.Classify(context.Background(), "X"))
		})
	}
}

func TestClassifyFromMethodHistory(t *testing.T) {
	t.Run("knockout artist", func(t *testing.T) {
		fighters := &stubFighterRepo{profiles: map[string]*models.FighterProfile{
			"X": statsProfile("X", 4.5, 0.5, 0.2),
		}}
		fights := &stubFightRepo{records: []*models.FightRecord{
			win("X", "A", "KO (punches)", 2024),
			win("X", "B", "TKO (elbows)", 2023),
			win("X", "C", "KO (head kick)", 2022),
			win("X", "D", "Decision (unanimous)", 2021),
		}}
		classifier := NewStyleClassifier(fighters, fights, nil, testLogger())

		assert.Equal(t, models.StyleStriker, classifier.Classify(context.Background(), "X"))
	})

	t.Run("submission hunter", func(t *testing.T) {
		fighters := &stubFighterRepo{profiles: map[string]*models.FighterProfile{
			"X": statsProfile("X", 2.0, 2.0, 0.8),
		}}
		fights := &stubFightRepo{records: []*models.FightRecord{
			win("X", "A", "Submission (rear naked choke)", 2024),
			win("X", "B", "Submission (armbar)", 2023),
			win("X", "C", "Decision (split)", 2022),
			win("X", "D", "Decision (unanimous)", 2021),
		}}
		classifier := NewStyleClassifier(fighters, fights, nil, testLogger())

		assert.Equal(t, models.StyleSubmissionGrappler, classifier.Classify(context.Background(), "X"))
	})

	t.Run("grinding wrestler", func(t *testing.T) {
		fighters := &stubFighterRepo{profiles: map[string]*models.FighterProfile{
			"X": statsProfile("X", 2.5, 2.5, 0.2),
		}}
		fights := &stubFightRepo{records: []*models.FightRecord{
			win("X", "A", "Decision (unanimous)", 2024),
			win("X", "B", "Decision (unanimous)", 2023),
			win("X", "C", "Decision (majority)", 2022),
			win("X", "D", "KO (punches)", 2021),
		}}
		classifier := NewStyleClassifier(fighters, fights, nil, testLogger())

		assert.Equal(t, models.StyleControlGrappler, classifier.Classify(context.Background(), "X"))
	})

	t.Run("unclassifiable methods fall back to stats", func(t *testing.T) {
		fighters := &stubFighterRepo{profiles: map[string]*models.FighterProfile{
			"X": statsProfile("X", 4.0, 0.5, 0.2),
		}}
		fights := &stubFightRepo{records: []*models.FightRecord{
			win("X", "A", "DQ (fence grab)", 2024),
		}}
		classifier := NewStyleClassifier(fighters, fights, nil, testLogger())

		assert.Equal(t, models.StyleStriker, classifier.Classify(context.Background(), "X"))
	})
}

func TestClassifyNeverFails(t *testing.T) {
	t.Run("missing profile", func(t *testing.T) {
		classifier := NewStyleClassifier(
			&stubFighterRepo{profiles: map[string]*models.FighterProfile{}},
			&stubFightRepo{}, nil, testLogger())

		assert.Equal(t, models.StyleUnknown, classifier.Classify(context.Background(), "Nobody"))
	})

	t.Run("repository error", func(t *testing.T) {
		classifier := NewStyleClassifier(
			&stubFighterRepo{err: errors.New("connection refused")},
			&stubFightRepo{}, nil, testLogger())

		assert.Equal(t, models.StyleUnknown, classifier.Classify(context.Background(), "X"))
	})

	t.Run("history error uses stat heuristic", func(t *testing.T) {
		fighters := &stubFighterRepo{profiles: map[string]*models.FighterProfile{
			"X": statsProfile("X", 4.0, 0.5, 0.2),
		}}
		classifier := NewStyleClassifier(fighters,
			&stubFightRepo{err: errors.New("timeout")}, nil, testLogger())

		assert.Equal(t, models.StyleStriker, classifier.Classify(context.Background(), "X"))
	})
}

func TestClassifyDeterministic(t *testing.T) {
	fighters := &stubFighterRepo{profiles: map[string]*models.FighterProfile{
		"X": statsProfile("X", 4.5, 0.5, 0.2),
	}}
	fights := &stubFightRepo{records: []*models.FightRecord{
		win("X", "A", "KO (punches)", 2024),
		win("X", "B", "Decision (unanimous)", 2023),
	}}
	classifier := NewStyleClassifier(fighters, fights, nil, testLogger())

	first := classifier.Classify(context.Background(), "X")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, classifier.Classify(context.Background(), "X"))
	}
}
