package quiz

import "fmt"

// Tier — качественная оценка результата.
type Tier string

const (
	TierPerfect          Tier = "perfect"
	TierGood             Tier = "good"
	TierFair             Tier = "fair"
	TierNeedsImprovement Tier = "needs_improvement"
)

// Пороги уровней, проверяются сверху вниз.
const (
	goodThreshold = 0.75
	fairThreshold = 0.50
)

// Summary — итог попытки.
type Summary struct {
	Correct int
	Total   int
	Ratio   float64
	Tier    Tier
	Message string
	Emoji   string
}

// Percent возвращает долю правильных ответов в процентах, округлённую до целого.
func (s Summary) Percent() int {
	return int(s.Ratio*100 + 0.5)
}

var tierCopy = map[Tier]struct{ message, emoji string }{
	TierPerfect:          {"¡Perfecto! Sos un experto del sueño", "🌟"},
	TierGood:             {"¡Muy bien! Conocés bastante sobre el sueño", "✨"},
	TierFair:             {"No está mal, pero podés aprender más", "💤"},
	TierNeedsImprovement: {"Parece que necesitás dormir más para recordar", "😴"},
}

// Summarize переводит счёт в уровень и сообщение.
func Summarize(correct, total int) (Summary, error) {
	if total <= 0 {
		return Summary{}, fmt.Errorf("%w: total must be positive, got %d", ErrInvalidInput, total)
	}

	if correct < 0 || correct > total {
		return Summary{}, fmt.Errorf("%w: correct count %d is out of range [0, %d]", ErrInvalidInput, correct, total)
	}

	ratio := float64(correct) / float64(total)

	tier := TierNeedsImprovement
	switch {
	case correct == total:
		tier = TierPerfect
	case ratio >= goodThreshold:
		tier = TierGood
	case ratio >= fairThreshold:
		tier = TierFair
	}

	return Summary{
		Correct: correct,
		Total:   total,
		Ratio:   ratio,
		Tier:    tier,
		Message: tierCopy[tier].message,
		Emoji:   tierCopy[tier].emoji,
	}, nil
}
