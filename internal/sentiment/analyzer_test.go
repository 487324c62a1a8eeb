package sentiment

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze_Polarity(t *testing.T) {
	tests := []struct {
		name string
		text string
		sign int
	}{
		{"positive", "Great team, excellent benefits", 1},
		{"negative", "Terrible management and toxic culture", -1},
		{"neutral", "Python developer with AWS", 0},
		{"negated positive", "The codebase is not good", -1},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Analyze(tt.text).Compound
			switch tt.sign {
			case 1:
				assert.Greater(t, c, 0.0)
			case -1:
				assert.Less(t, c, 0.0)
			default:
				assert.Equal(t, 0.0, c)
			}
			assert.GreaterOrEqual(t, c, -1.0)
			assert.LessOrEqual(t, c, 1.0)
		})
	}
}

func TestAnalyze_BoostersAndEmphasis(t *testing.T) {
	plain := Analyze("The role is good").Compound
	boosted := Analyze("The role is very good").Compound
	exclaimed := Analyze("The role is good!!").Compound
	softened := Analyze("The role is slightly good").Compound

	assert.Greater(t, boosted, plain)
	assert.Greater(t, exclaimed, plain)
	assert.Less(t, softened, plain)
}

func TestAnalyze_ContrastWeightsClauseAfterBut(t *testing.T) {
	c := Analyze("The pay is good but the hours are terrible").Compound
	assert.Less(t, c, 0.0)
}

func TestAnalyze_JobPostingTone(t *testing.T) {
	posting := Analyze("Seeking a hardworking, enthusiastic engineer to join our vibrant team")
	assert.Greater(t, posting.Compound, 0.5)
	assert.Greater(t, posting.Positive, posting.Negative)

	// no lexicon words, so the resume line reads as neutral
	resume := Analyze("I built reliable, scalable systems and mentored junior engineers")
	assert.InDelta(t, 0.0, resume.Compound, 1e-9)
}

func TestAnalyze_ConcurrentUse(t *testing.T) {
	want := Analyze("Great team, excellent benefits").Compound

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, Analyze("Great team, excellent benefits").Compound)
		}()
	}
	wg.Wait()
}

func TestAnalyze_ProportionsSumToOne(t *testing.T) {
	s := Analyze("Great team but stressful deadlines and long meetings")
	assert.InDelta(t, 1.0, s.Positive+s.Negative+s.Neutral, 1e-9)
}

func TestCompatibility(t *testing.T) {
	pos := "Excellent, friendly and supportive team"
	neg := "Awful, toxic and stressful environment"

	assert.Equal(t, 1.0, Compatibility(pos, pos))
	assert.Equal(t, 1.0, Compatibility("", ""))
	assert.Less(t, Compatibility(pos, neg), Compatibility(pos, "Good team"))
	assert.Equal(t, Compatibility(pos, neg), Compatibility(neg, pos))

	c := Compatibility(pos, neg)
	assert.GreaterOrEqual(t, c, 0.0)
	assert.LessOrEqual(t, c, 1.0)
}

func TestCompoundCompatibility(t *testing.T) {
	assert.Equal(t, 0.0, CompoundCompatibility(1, -1))
	assert.Equal(t, 0.5, CompoundCompatibility(0.5, -0.5))
	assert.Equal(t, 1.0, CompoundCompatibility(0.3, 0.3))
}
