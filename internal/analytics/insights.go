package analytics

import (
	"fmt"
	"math"
)

// Insight list bounds. Lists are padded with generic sentences up to the
// minimum so a report never shows an empty section, and capped at the
// maximum to keep it scannable.
const (
	minInsights = 3
	maxInsights = 5
)

// Insights is the qualitative bundle of an analysis: what got better, what
// got worse, and what to do about it.
type Insights struct {
	Positives       []string `json:"positives"`
	Negatives       []string `json:"negatives"`
	Recommendations []string `json:"recommendations"`
}

var (
	positiveFillers = []string{
		"Continue com a consistência nos treinos e na rotina atual.",
		"A regularidade das avaliações permite acompanhar a evolução de perto.",
		"Manter os hábitos atuais contribui para resultados sustentáveis.",
	}
	negativeFillers = []string{
		"Nenhum ponto crítico identificado nesta avaliação.",
		"Nenhuma métrica adicional requer atenção imediata.",
		"Os demais indicadores permanecem dentro do esperado.",
	}
	recommendationFillers = []string{
		"Mantenha a regularidade dos treinos e priorize uma boa noite de sono.",
		"Hidrate-se bem ao longo do dia e priorize alimentos in natura.",
		"Agende a próxima avaliação física em 4 a 6 semanas.",
	}
)

// GenerateInsights turns the per-metric analyses into ranked observations
// and goal-aware recommendations. Metrics are visited in the fixed tracked
// order, so identical inputs always produce identical output.
func GenerateInsights(trends map[Metric]MetricTrend, goal GoalPolarity) Insights {
	var positives, negatives, recommendations []string

	for _, m := range TrackedMetrics {
		trend, ok := trends[m]
		if !ok {
			continue
		}
		switch trend.Trend {
		case TrendImproving:
			positives = append(positives, positiveSentence(trend))
		case TrendWorsening:
			negatives = append(negatives, negativeSentence(trend))
			recommendations = append(recommendations, metricRecommendations(m)...)
		}
	}

	switch goal {
	case GoalLoseWeight:
		recommendations = append(recommendations,
			"Para o objetivo de perda de peso, mantenha um déficit calórico moderado e consistente.")
	case GoalGainMass:
		recommendations = append(recommendations,
			"Para o objetivo de ganho de massa, mantenha um superávit calórico leve com foco em proteínas.")
	}

	return Insights{
		Positives:       bound(positives, positiveFillers),
		Negatives:       bound(negatives, negativeFillers),
		Recommendations: bound(recommendations, recommendationFillers),
	}
}

func positiveSentence(t MetricTrend) string {
	if t.PreviousValue == nil {
		return fmt.Sprintf("%s apresentou evolução positiva desde a última avaliação.", t.Label)
	}
	return fmt.Sprintf("%s melhorou %.1f %s desde a última avaliação (%.1f → %.1f).",
		t.Label, math.Abs(t.Delta), t.Unit, *t.PreviousValue, t.CurrentValue)
}

func negativeSentence(t MetricTrend) string {
	if t.PreviousValue == nil {
		return fmt.Sprintf("%s piorou em relação à última avaliação; atenção recomendada.", t.Label)
	}
	return fmt.Sprintf("%s piorou %.1f %s em relação à última avaliação (%.1f → %.1f).",
		t.Label, math.Abs(t.Delta), t.Unit, *t.PreviousValue, t.CurrentValue)
}

func metricRecommendations(m Metric) []string {
	switch m {
	case MetricBodyFat:
		return []string{
			"Revise a ingestão calórica diária; um pequeno déficit ajuda a reduzir o percentual de gordura.",
			"Inclua 2 a 3 sessões semanais de exercício cardiovascular de intensidade moderada.",
		}
	case MetricMuscleMass:
		return []string{
			"Aumente o volume de treino de força, priorizando exercícios compostos.",
			"Garanta a ingestão adequada de proteínas (1,6 a 2,2 g por kg de peso corporal).",
		}
	case MetricRestingHR:
		return []string{
			"Adicione treino aeróbico de base para melhorar o condicionamento cardiovascular.",
			"Avalie fatores de estresse e qualidade do sono; ambos elevam a frequência de repouso.",
		}
	default:
		return nil
	}
}

// bound pads a list with fillers up to the minimum length, then caps it.
func bound(items, fillers []string) []string {
	for i := 0; len(items) < minInsights && i < len(fillers); i++ {
		items = append(items, fillers[i])
	}
	if len(items) > maxInsights {
		items = items[:maxInsights]
	}
	return items
}
