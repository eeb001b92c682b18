package app

import "quiz-host/internal/domain"

// ResolveQuestions returns the questions that apply to the given round, topic
// and team. It has no side effects.
func ResolveQuestions(rounds []domain.Round, roundIndex int, topic, team string) []domain.Question {
	if roundIndex < 0 || roundIndex >= len(rounds) {
		return nil
	}
	round := rounds[roundIndex]

	switch round.Type {
	case domain.RoundTopic:
		for _, t := range round.Topics {
			if t.Name != topic {
				continue
			}
			if override, ok := teamOverride(t.TeamQuestions, team); ok {
				return override
			}
			return t.Questions
		}
		return nil
	case domain.RoundMultimedia:
		if override, ok := teamOverride(round.TeamQuestions, team); ok {
			return filterMedia(override, topic)
		}
		return filterMedia(round.Questions, topic)
	default:
		return round.Questions
	}
}

// teamOverride reports a team-specific list. An explicit empty list still
// counts as an override; a null entry does not.
func teamOverride(overrides map[string][]domain.Question, team string) ([]domain.Question, bool) {
	list, ok := overrides[team]
	if !ok || list == nil {
		return nil, false
	}
	return list, true
}

func filterMedia(questions []domain.Question, topic string) []domain.Question {
	var keep func(domain.Question) bool
	switch topic {
	case domain.TopicAudio:
		keep = func(q domain.Question) bool { return q.Audio != "" }
	case domain.TopicImage:
		keep = func(q domain.Question) bool { return q.Image != "" }
	default:
		return questions
	}

	out := make([]domain.Question, 0, len(questions))
	for _, q := range questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}
