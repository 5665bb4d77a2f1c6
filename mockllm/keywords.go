package mockllm

import "agentverse/mockllm/template"

// topicKeywords holds the keyword set each non-general topic scores
// task text against. general has no keyword set; it is the fallback
// when every other topic scores zero.
var topicKeywords = map[template.Topic][]string{
	template.TopicExploration: {
		"explore", "exploration", "map", "scout", "survey", "territory",
		"terrain", "discover", "venture", "unknown", "chart",
	},
	template.TopicConstruction: {
		"build", "construct", "construction", "repair", "assemble",
		"fortify", "structure", "base", "wall", "foundation",
	},
	template.TopicIntelligence: {
		"spy", "intel", "intelligence", "surveil", "surveillance",
		"recon", "observe", "monitor", "track", "watch",
	},
	template.TopicDefense: {
		"defend", "defense", "guard", "protect", "shield", "fortress",
		"patrol", "secure", "threat", "attack",
	},
	template.TopicCoding: {
		"code", "coding", "debug", "program", "script", "function",
		"algorithm", "compile", "refactor", "bug",
	},
	template.TopicResearch: {
		"research", "analyze", "study", "investigate", "experiment",
		"data", "hypothesis", "findings",
	},
	template.TopicCommunication: {
		"message", "negotiate", "relay", "broadcast", "diplomat",
		"report", "announce", "communicate", "notify",
	},
	template.TopicPlanning: {
		"plan", "strategy", "schedule", "coordinate", "organize",
		"roadmap", "prioritize", "planning",
	},
}

// personaKeywords holds the keyword set each non-neutral persona style
// scores persona text against. neutral has no keyword set; it is the
// fallback for an absent/empty persona or a zero score across the
// board.
var personaKeywords = map[template.Style][]string{
	template.StyleBold: {
		"bold", "brave", "daring", "fearless", "aggressive", "confident",
		"audacious",
	},
	template.StyleMethodical: {
		"methodical", "careful", "precise", "systematic", "meticulous",
		"analytical", "deliberate",
	},
	template.StyleSwift: {
		"swift", "fast", "quick", "speedy", "agile", "rapid", "nimble",
	},
	template.StyleSteadfast: {
		"steadfast", "reliable", "loyal", "dependable", "resolute",
		"steady", "unwavering",
	},
}
