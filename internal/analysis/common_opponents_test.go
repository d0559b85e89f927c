package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/octagon-edge/internal/models"
)

func newTestAnalyzer(fighters *stubFighterRepo, fights *stubFightRepo) *CommonOpponentAnalyzer {
	classifier := NewStyleClassifier(fighters, fights, nil, testLogger())
	analyzer := NewCommonOpponentAnalyzer(fights, classifier, testLogger())
	analyzer.now = func() time.Time {
		return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return analyzer
}

func TestAnalyzeSharedOpponents(t *testing.T) {
	fights := &stubFightRepo{records: []*models.FightRecord{
		win("Ana", "Carl", "Decision (unanimous)", 2024),
		win("Ana", "Dana", "KO (punches)", 2023),
		win("Eddie", "Ana", "Submission (armbar)", 2022),
		win("Bea", "Carl", "Decision (split)", 2024),
		win("Dana", "Bea", "KO (punches)", 2023),
		win("Eddie", "Bea", "Decision (unanimous)", 2022),
		win("Ana", "Solo", "KO (punches)", 2021),
	}}
	analyzer := newTestAnalyzer(&stubFighterRepo{}, fights)

	report := analyzer.Analyze(context.Background(), "Ana", "Bea")
	require.NotNil(t, report)

	assert.Len(t, report.SharedOpponents, 3)
	assert.Equal(t, 2, report.Fighter1Wins)
	assert.Equal(t, 1, report.Fighter2Wins)
	assert.Equal(t, "Ana", report.ComparativeAdvantage)

	require.NotEmpty(t, report.Insights)
	assert.Contains(t, report.Insights[0], "Ana has performed better")
	assert.Contains(t, report.Insights[0], "2-1 in shared matchups")

	// The 2024 meetings are both newest and closest together, so Carl
	// must sort ahead of the older shared opponents.
	assert.Equal(t, "Carl", report.SharedOpponents[0].Name)
	for _, shared := range report.SharedOpponents {
		assert.Greater(t, shared.RecencyScore, 0.0)
		assert.LessOrEqual(t, shared.RecencyScore, 1.0)
	}
}

func TestAnalyzeRematchUsesMostRecentMeeting(t *testing.T) {
	fights := &stubFightRepo{records: []*models.FightRecord{
		win("Carl", "Ana", "KO (punches)", 2020),
		win("Ana", "Carl", "Decision (unanimous)", 2024),
		win("Bea", "Carl", "Submission (guillotine)", 2023),
	}}
	analyzer := newTestAnalyzer(&stubFighterRepo{}, fights)

	report := analyzer.Analyze(context.Background(), "Ana", "Bea")
	require.Len(t, report.SharedOpponents, 1)

	shared := report.SharedOpponents[0]
	assert.Equal(t, "Carl", shared.Name)
	assert.Equal(t, models.ResultWin, shared.Fighter1Result)
	assert.Equal(t, 2024, shared.Fighter1Date.Year())
	assert.Equal(t, models.ResultWin, shared.Fighter2Result)
}

func TestAnalyzeDegradesToEmptyReport(t *testing.T) {
	fights := &stubFightRepo{err: errors.New("connection reset")}
	analyzer := newTestAnalyzer(&stubFighterRepo{}, fights)

	report := analyzer.Analyze(context.Background(), "Ana", "Bea")
	require.NotNil(t, report)

	assert.Equal(t, "Ana", report.Fighter1)
	assert.Equal(t, "Bea", report.Fighter2)
	assert.NotNil(t, report.SharedOpponents)
	assert.Empty(t, report.SharedOpponents)
	assert.Zero(t, report.Fighter1Wins)
	assert.Zero(t, report.Fighter2Wins)
	assert.Empty(t, report.ComparativeAdvantage)
	assert.Empty(t, report.Insights)
}

func TestAnalyzeStyleMatchup(t *testing.T) {
	fighters := &stubFighterRepo{profiles: map[string]*models.FighterProfile{
		"Ana": statsProfile("Ana", 4.5, 0.5, 0.2),
		"Bea": statsProfile("Bea", 2.0, 0.5, 0.2),
	}}
	// Kong and Kroc win predominantly by knockout, so they form the pool
	// of opponents similar to Ana. Bea is 2-0 against that pool.
	fights := &stubFightRepo{records: []*models.FightRecord{
		win("Kong", "P1", "KO (punches)", 2020),
		win("Kong", "P2", "TKO (strikes)", 2021),
		win("Kroc", "P3", "KO (head kick)", 2020),
		win("Kroc", "P4", "KO (punches)", 2021),
		win("Bea", "Kong", "Decision (unanimous)", 2023),
		win("Bea", "Kroc", "Decision (unanimous)", 2024),
	}}
	analyzer := newTestAnalyzer(fighters, fights)

	report := analyzer.Analyze(context.Background(), "Ana", "Bea")
	require.NotNil(t, report.StyleMatchup)

	sm := report.StyleMatchup
	assert.Equal(t, models.StyleStriker, sm.Fighter1Style)
	assert.Equal(t, models.StyleBalanced, sm.Fighter2Style)
	assert.Equal(t, models.RatingUnknown, sm.Fighter1Rating)
	assert.Equal(t, models.RatingExcellent, sm.Fighter2Rating)
	assert.Equal(t, "2-0", sm.Fighter2PoolRecord)
	assert.Equal(t, "Bea", sm.StylisticAdvantage)

	require.NotEmpty(t, report.Insights)
	assert.Contains(t, report.Insights[len(report.Insights)-1], "stylistic edge")
}

func TestOpponentsNewestFirst(t *testing.T) {
	fights := &stubFightRepo{records: []*models.FightRecord{
		win("Ana", "Old", "Decision (unanimous)", 2019),
		win("New", "Ana", "KO (punches)", 2024),
		win("Ana", "Mid", "Submission (armbar)", 2022),
	}}
	analyzer := newTestAnalyzer(&stubFighterRepo{}, fights)

	meetings, err := analyzer.Opponents(context.Background(), "Ana")
	require.NoError(t, err)
	require.Len(t, meetings, 3)

	assert.Equal(t, "New", meetings[0].Opponent)
	assert.Equal(t, models.ResultLoss, meetings[0].Result)
	assert.Equal(t, "Mid", meetings[1].Opponent)
	assert.Equal(t, "Old", meetings[2].Opponent)
	assert.Equal(t, models.ResultWin, meetings[2].Result)
}
