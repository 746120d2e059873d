package coach

import "fmt"

const systemPrompt = `You are a certified fitness coach. Write clear, practical, ` +
	`safe guidance for the person described. Plain text, short sections, no markdown tables.`

func planPrompt(kind PlanKind, p Profile) string {
	base := fmt.Sprintf(
		"Person: %s, age %d, gender %s, height %.0f cm, weight %.1f kg. Goal: %s. Experience level: %s.",
		p.Name, p.Age, orUnspecified(p.Gender), p.HeightCm, p.WeightKg,
		orUnspecified(p.Goal), orUnspecified(p.Level),
	)

	switch kind {
	case PlanWorkout:
		return base + " Write a 7-day workout plan with exercises, sets, reps and rest days."
	case PlanNutrition:
		return base + " Write a daily nutrition guide with meal ideas and approximate portions."
	case PlanRecovery:
		return base + " Write recovery guidance: sleep, stretching, mobility and rest-day habits."
	default:
		return base
	}
}

func orUnspecified(s string) string {
	if s == "" {
		return "unspecified"
	}
	return s
}
