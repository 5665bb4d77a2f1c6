package template

// GenericResultTemplates is the topic-agnostic fallback pool used
// when the mock LLM service is not in realistic-generation mode (no
// goal, no persona, no override). Its only contract is: non-empty,
// contains the agent name.
var GenericResultTemplates = []string{
	"{name} has completed the assigned task.",
	"Task finished. — {name}",
	"{name} reports the work is done.",
	"Done. {name} signing off on this one.",
	"{name} finished up: {task}.",
}

// GenericQuestionTemplates is the generic-mode analogue of
// GenericResultTemplates.
var GenericQuestionTemplates = []string{
	"{name} has a question before continuing — could you clarify the request?",
	"{name} needs more detail to proceed. Can you elaborate?",
	"Quick question from {name}: what's the priority here?",
	"{name} is not sure how to proceed without more context.",
}
