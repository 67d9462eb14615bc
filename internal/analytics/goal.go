package analytics

import "strings"

// DefaultGoal is assumed when a student has no stated objective.
const DefaultGoal = "Melhora geral da saúde"

// GoalPolarity is the parsed intent of a student's free-text goal with
// respect to body weight.
type GoalPolarity string

const (
	GoalNeutral    GoalPolarity = "neutral"
	GoalLoseWeight GoalPolarity = "lose_weight"
	GoalGainMass   GoalPolarity = "gain_mass"
)

// Keyword tables for goal intent matching. Goals are free text written by
// trainers in Portuguese; there is no structured taxonomy, so classification
// is substring matching over the lowercased goal.
var (
	lossKeywords = []string{"emagre", "perder peso", "diminuir peso"}
	gainKeywords = []string{"ganhar peso", "aumentar peso"}
)

// ClassifyGoal parses a free-text goal into a weight polarity. It is the
// single shared classifier used by both trend classification and insight
// generation.
func ClassifyGoal(goal string) GoalPolarity {
	g := strings.ToLower(goal)

	for _, kw := range lossKeywords {
		if strings.Contains(g, kw) {
			return GoalLoseWeight
		}
	}
	if strings.Contains(g, "peso") && strings.Contains(g, "perder") {
		return GoalLoseWeight
	}

	for _, kw := range gainKeywords {
		if strings.Contains(g, kw) {
			return GoalGainMass
		}
	}
	if strings.Contains(g, "massa") && (strings.Contains(g, "ganhar") || strings.Contains(g, "aumentar")) {
		return GoalGainMass
	}

	return GoalNeutral
}
