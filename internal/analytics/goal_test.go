package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyGoal(t *testing.T) {
	tests := []struct {
		name string
		goal string
		want GoalPolarity
	}{
		{"emagrecer keyword", "Quero emagrecer até o verão", GoalLoseWeight},
		{"perder peso phrase", "Perder peso e ganhar condicionamento", GoalLoseWeight},
		{"diminuir peso phrase", "diminuir peso gradualmente", GoalLoseWeight},
		{"peso and perder split", "Meta: perder uns quilos de peso", GoalLoseWeight},
		{"ganhar peso phrase", "Preciso ganhar peso com saúde", GoalGainMass},
		{"aumentar peso phrase", "aumentar peso magro", GoalGainMass},
		{"ganhar massa", "Ganhar massa muscular", GoalGainMass},
		{"aumentar massa", "Aumentar a massa magra", GoalGainMass},
		{"uppercase input", "QUERO EMAGRECER", GoalLoseWeight},
		{"generic health goal", "Melhora geral da saúde", GoalNeutral},
		{"conditioning goal", "Melhorar o condicionamento físico", GoalNeutral},
		{"empty goal", "", GoalNeutral},
		{"massa without verb", "Manter a massa atual", GoalNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyGoal(tt.goal))
		})
	}
}

func TestClassifyGoal_LossWinsOverGain(t *testing.T) {
	// Loss keywords are checked first, so an ambiguous goal naming both
	// directions resolves to weight loss.
	assert.Equal(t, GoalLoseWeight, ClassifyGoal("emagrecer e ganhar massa muscular"))
}
