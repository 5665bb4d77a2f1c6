package mockllm

import (
	"fmt"
	"strings"

	"agentverse/mockllm/template"
)

// NormalizeIndex folds an arbitrary (possibly negative) pick index
// into the valid range [0, n). Negative inputs wrap rather than
// panic or clamp, per spec.
func NormalizeIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}

// GenerateRealisticResult composes a persona- and topic-appropriate
// result string, then applies the goal-injection postcondition: if
// goal is non-empty and the chosen template does not already quote it
// verbatim, a mission-alignment sentence is appended.
func GenerateRealisticResult(name, role, task, goal, persona string, pickIndex int) string {
	topic := DetectTopic(task)
	style := DetectPersonaStyle(persona)
	s := pickTemplate(template.ResultTemplates, template.ResultBuckets, topic, style, pickIndex, name, role, task)
	return injectGoal(s, name, goal)
}

// GenerateRealisticQuestion is the clarifying-question analogue of
// GenerateRealisticResult. Questions do not carry the goal-injection
// postcondition — spec.md defines that law only for results.
func GenerateRealisticQuestion(name, role, task, goal, persona string, pickIndex int) string {
	topic := DetectTopic(task)
	style := DetectPersonaStyle(persona)
	return pickTemplate(template.QuestionTemplates, template.QuestionBuckets, topic, style, pickIndex, name, role, task)
}

// GenerateGenericResult produces a topic-agnostic result string for
// agents not using realistic generation. Its only contract is:
// non-empty, contains name.
func GenerateGenericResult(name, role, task string, pickIndex int) string {
	list := template.GenericResultTemplates
	i := NormalizeIndex(pickIndex, len(list))
	return template.Render(list[i], name, role, task)
}

// GenerateGenericQuestion is the generic-mode analogue of
// GenerateGenericResult.
func GenerateGenericQuestion(name, role, task string, pickIndex int) string {
	list := template.GenericQuestionTemplates
	i := NormalizeIndex(pickIndex, len(list))
	return template.Render(list[i], name, role, task)
}

func pickTemplate(
	templates map[template.Topic][]string,
	buckets map[template.Topic]map[template.Style][]int,
	topic template.Topic,
	style template.Style,
	pickIndex int,
	name, role, task string,
) string {
	list := templates[topic]
	bucket := buckets[topic][style]
	j := NormalizeIndex(pickIndex, len(bucket))
	templateIndex := bucket[j]
	return template.Render(list[templateIndex], name, role, task)
}

// injectGoal enforces the goal-injection postcondition described in
// spec.md §4.2 item 6: a non-empty goal must appear verbatim in the
// returned string.
func injectGoal(s, name, goal string) string {
	if goal == "" || strings.Contains(s, goal) {
		return s
	}
	return fmt.Sprintf("%s This keeps %s squarely aligned with the mission: \"%s\".", s, name, goal)
}
