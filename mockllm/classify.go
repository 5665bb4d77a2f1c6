package mockllm

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"agentverse/mockllm/template"
)

var foldCase = cases.Lower(language.Und)

// DetectTopic classifies a task description into one of the nine
// topic categories. It is a total function: a task with no keyword
// matches in any category resolves to TopicGeneral.
func DetectTopic(task string) template.Topic {
	text := foldCase.String(task)
	best := template.TopicGeneral
	bestScore := 0
	for _, topic := range template.Topics {
		keywords, ok := topicKeywords[topic]
		if !ok {
			// general carries no keyword set and is the fallback.
			continue
		}
		if score := countMatches(text, keywords); score > bestScore {
			bestScore = score
			best = topic
		}
	}
	return best
}

// DetectPersonaStyle classifies free-text persona description into
// one of the five persona styles. An empty persona, or one with no
// keyword matches in any style, resolves to StyleNeutral.
func DetectPersonaStyle(persona string) template.Style {
	if strings.TrimSpace(persona) == "" {
		return template.StyleNeutral
	}
	text := foldCase.String(persona)
	best := template.StyleNeutral
	bestScore := 0
	for _, style := range template.Styles {
		keywords, ok := personaKeywords[style]
		if !ok {
			// neutral carries no keyword set and is the fallback.
			continue
		}
		if score := countMatches(text, keywords); score > bestScore {
			bestScore = score
			best = style
		}
	}
	return best
}

// countMatches counts how many distinct keywords occur as a substring
// of text. Each keyword contributes at most once regardless of how
// many times it occurs.
func countMatches(text string, keywords []string) int {
	score := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			score++
		}
	}
	return score
}
