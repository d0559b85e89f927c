package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/octagon-edge/internal/models"
	"github.com/yourusername/octagon-edge/internal/repository"
)

const (
	similarPoolSize    = 5
	similarPoolMinWins = 2
	poolScanLimit      = 2000
	maxInsights        = 5
)

// CommonOpponentAnalyzer finds opponents shared between two fighters and
// derives comparative and stylistic verdicts from them.
type CommonOpponentAnalyzer struct {
	fights repository.FightRepository
	styles *StyleClassifier
	logger *logrus.Logger
	now    func() time.Time
}

// NewCommonOpponentAnalyzer creates a common-opponent analyzer
func NewCommonOpponentAnalyzer(fights repository.FightRepository, styles *StyleClassifier, logger *logrus.Logger) *CommonOpponentAnalyzer {
	return &CommonOpponentAnalyzer{
		fights: fights,
		styles: styles,
		logger: logger,
		now:    time.Now,
	}
}

// Opponents returns every historical meeting for the fighter, win side and
// loss side combined, newest first.
func (a *CommonOpponentAnalyzer) Opponents(ctx context.Context, fighter string) ([]models.OpponentMeeting, error) {
	wins, losses, err := a.fights.GetWinsAndLosses(ctx, fighter)
	if err != nil {
		return nil, fmt.Errorf("failed to load history for %s: %w", fighter, err)
	}

	meetings := make([]models.OpponentMeeting, 0, len(wins)+len(losses))
	for _, record := range wins {
		meetings = append(meetings, models.OpponentMeeting{
			Opponent: record.Loser,
			Method:   record.Method,
			Date:     record.Date,
			Result:   models.ResultWin,
		})
	}
	for _, record := range losses {
		meetings = append(meetings, models.OpponentMeeting{
			Opponent: record.Winner,
			Method:   record.Method,
			Date:     record.Date,
			Result:   models.ResultLoss,
		})
	}

	sort.Slice(meetings, func(i, j int) bool {
		return meetings[i].Date.After(meetings[j].Date)
	})
	return meetings, nil
}

// findCommon intersects two opponent lists by opponent name. When a
// fighter met the same opponent more than once, the most recent meeting
// (first in the date-descending list) wins.
func findCommon(m1, m2 []models.OpponentMeeting) map[string][2]models.OpponentMeeting {
	first := make(map[string]models.OpponentMeeting, len(m1))
	for _, m := range m1 {
		key := strings.ToLower(m.Opponent)
		if _, seen := first[key]; !seen {
			first[key] = m
		}
	}

	common := make(map[string][2]models.OpponentMeeting)
	for _, m := range m2 {
		key := strings.ToLower(m.Opponent)
		if other, ok := first[key]; ok {
			if _, seen := common[key]; !seen {
				common[key] = [2]models.OpponentMeeting{other, m}
			}
		}
	}
	return common
}

// Analyze builds the full common-opponent report for an ordered pair.
// It never propagates internal failures: any error yields the empty
// report shape with zero counts.
func (a *CommonOpponentAnalyzer) Analyze(ctx context.Context, fighter1, fighter2 string) *models.CommonOpponentReport {
	report := models.EmptyCommonOpponentReport(fighter1, fighter2)

	var (
		wg     sync.WaitGroup
		m1, m2 []models.OpponentMeeting
		e1, e2 error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		m1, e1 = a.Opponents(ctx, fighter1)
	}()
	go func() {
		defer wg.Done()
		m2, e2 = a.Opponents(ctx, fighter2)
	}()
	wg.Wait()

	if e1 != nil || e2 != nil {
		a.logger.WithFields(logrus.Fields{
			"fighter1": fighter1,
			"fighter2": fighter2,
		}).Warn("Common opponent analysis degraded: history unavailable")
		return report
	}

	now := a.now()
	for _, pair := range findCommon(m1, m2) {
		shared := models.SharedOpponent{
			Name:           pair[0].Opponent,
			Fighter1Result: pair[0].Result,
			Fighter1Method: pair[0].Method,
			Fighter1Date:   pair[0].Date,
			Fighter2Result: pair[1].Result,
			Fighter2Method: pair[1].Method,
			Fighter2Date:   pair[1].Date,
			RecencyScore:   RecencyScore(laterOf(pair[0].Date, pair[1].Date), now),
			RelevanceScore: RelevanceScore(pair[0].Date, pair[1].Date),
		}
		report.SharedOpponents = append(report.SharedOpponents, shared)

		if shared.Fighter1Result == models.ResultWin {
			report.Fighter1Wins++
		}
		if shared.Fighter2Result == models.ResultWin {
			report.Fighter2Wins++
		}
	}

	sort.Slice(report.SharedOpponents, func(i, j int) bool {
		si := report.SharedOpponents[i]
		sj := report.SharedOpponents[j]
		return si.RecencyScore+si.RelevanceScore > sj.RecencyScore+sj.RelevanceScore
	})

	switch {
	case report.Fighter1Wins > report.Fighter2Wins:
		report.ComparativeAdvantage = fighter1
	case report.Fighter2Wins > report.Fighter1Wins:
		report.ComparativeAdvantage = fighter2
	}

	report.StyleMatchup = a.similarStyleAnalysis(ctx, fighter1, fighter2)
	report.Insights = a.generateInsights(report)
	return report
}

// similarStyleAnalysis grades each subject against a pool of fighters who
// win the way the other subject does. A nil result means styles could not
// be established.
func (a *CommonOpponentAnalyzer) similarStyleAnalysis(ctx context.Context, fighter1, fighter2 string) *models.StyleMatchupReport {
	style1 := a.styles.Classify(ctx, fighter1)
	style2 := a.styles.Classify(ctx, fighter2)
	if style1 == models.StyleUnknown && style2 == models.StyleUnknown {
		return nil
	}

	report := &models.StyleMatchupReport{
		Fighter1Style:  style1,
		Fighter2Style:  style2,
		Fighter1Rating: models.RatingUnknown,
		Fighter2Rating: models.RatingUnknown,
	}

	// Each subject is graded against fighters similar to the opponent.
	pool1 := a.similarStylePool(ctx, style2, fighter1, fighter2)
	pool2 := a.similarStylePool(ctx, style1, fighter2, fighter1)

	report.Fighter1Rating, report.Fighter1PoolRecord = a.rateAgainstPool(ctx, fighter1, pool1)
	report.Fighter2Rating, report.Fighter2PoolRecord = a.rateAgainstPool(ctx, fighter2, pool2)

	switch {
	case report.Fighter1Rating.Ordinal() > report.Fighter2Rating.Ordinal():
		report.StylisticAdvantage = fighter1
	case report.Fighter2Rating.Ordinal() > report.Fighter1Rating.Ordinal():
		report.StylisticAdvantage = fighter2
	}
	return report
}

// similarStylePool finds up to similarPoolSize fighters who predominantly
// win by the method correlated with the given style, each with at least
// similarPoolMinWins such wins, excluding both subjects.
func (a *CommonOpponentAnalyzer) similarStylePool(ctx context.Context, style models.StyleLabel, exclude1, exclude2 string) []string {
	method, ok := style.PreferredMethod()
	if !ok {
		return nil
	}

	records, err := a.fights.GetRecordsSince(ctx, time.Time{}, poolScanLimit)
	if err != nil {
		a.logger.WithError(err).Debug("Similar-style pool unavailable")
		return nil
	}

	methodWins := make(map[string]int)
	totalWins := make(map[string]int)
	for _, record := range records {
		winner := record.Winner
		if strings.EqualFold(winner, exclude1) || strings.EqualFold(winner, exclude2) {
			continue
		}
		totalWins[winner]++
		if models.ClassifyMethod(record.Method, a.styles.rules) == method {
			methodWins[winner]++
		}
	}

	candidates := make([]string, 0, len(methodWins))
	for winner, count := range methodWins {
		if count >= similarPoolMinWins && float64(count) > float64(totalWins[winner])/2 {
			candidates = append(candidates, winner)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if methodWins[candidates[i]] != methodWins[candidates[j]] {
			return methodWins[candidates[i]] > methodWins[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})

	if len(candidates) > similarPoolSize {
		candidates = candidates[:similarPoolSize]
	}
	return candidates
}

// rateAgainstPool computes the subject's record against the pool members
func (a *CommonOpponentAnalyzer) rateAgainstPool(ctx context.Context, fighter string, pool []string) (models.PerformanceRating, string) {
	if len(pool) == 0 {
		return models.RatingUnknown, "0-0"
	}

	meetings, err := a.Opponents(ctx, fighter)
	if err != nil {
		return models.RatingUnknown, "0-0"
	}

	poolSet := make(map[string]struct{}, len(pool))
	for _, name := range pool {
		poolSet[strings.ToLower(name)] = struct{}{}
	}

	wins, losses := 0, 0
	for _, meeting := range meetings {
		if _, ok := poolSet[strings.ToLower(meeting.Opponent)]; !ok {
			continue
		}
		if meeting.Result == models.ResultWin {
			wins++
		} else {
			losses++
		}
	}

	record := fmt.Sprintf("%d-%d", wins, losses)
	total := wins + losses
	if total == 0 {
		return models.RatingUnknown, record
	}

	winRate := float64(wins) / float64(total) * 100
	switch {
	case winRate >= 75:
		return models.RatingExcellent, record
	case winRate >= 60:
		return models.RatingGood, record
	case winRate >= 40:
		return models.RatingAverage, record
	default:
		return models.RatingPoor, record
	}
}

// generateInsights renders the strongest findings as short sentences
func (a *CommonOpponentAnalyzer) generateInsights(report *models.CommonOpponentReport) []string {
	insights := make([]string, 0, maxInsights)

	if report.ComparativeAdvantage != "" {
		insights = append(insights, fmt.Sprintf(
			"%s has performed better against common opposition (%d-%d in shared matchups)",
			report.ComparativeAdvantage, report.Fighter1Wins, report.Fighter2Wins))
	} else if len(report.SharedOpponents) > 0 {
		insights = append(insights, fmt.Sprintf(
			"Even record against %d common opponents", len(report.SharedOpponents)))
	}

	for _, shared := range report.SharedOpponents {
		if len(insights) >= maxInsights-1 {
			break
		}
		insights = append(insights, fmt.Sprintf(
			"vs %s: %s went %s (%s), %s went %s (%s)",
			shared.Name,
			report.Fighter1, strings.ToLower(string(shared.Fighter1Result)), shared.Fighter1Method,
			report.Fighter2, strings.ToLower(string(shared.Fighter2Result)), shared.Fighter2Method))
	}

	if sm := report.StyleMatchup; sm != nil && sm.StylisticAdvantage != "" && len(insights) < maxInsights {
		insights = append(insights, fmt.Sprintf(
			"%s holds a stylistic edge based on results against similar opposition (%s vs %s)",
			sm.StylisticAdvantage, sm.Fighter1Rating, sm.Fighter2Rating))
	}

	return insights
}
