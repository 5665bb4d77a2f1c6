package template

import "strings"

// Render substitutes {name}, {role}, and {task} placeholders in a
// template string. It is the only place template text touches
// run-specific data; the templates themselves stay pure string
// constants so tests can iterate them without a generator.
func Render(tmpl, name, role, task string) string {
	r := strings.NewReplacer(
		"{name}", name,
		"{role}", role,
		"{task}", task,
	)
	return r.Replace(tmpl)
}

// ResultTemplates holds, for every topic, the ordered array of result
// strings the generator can pick from. general carries five; every
// other topic carries five as well, per spec.
var ResultTemplates = map[Topic][]string{
	TopicExploration: {
		"Mapping operation complete. {name} has fully charted the target sector — bold and unflinching, exactly the kind of terrain run {role}s live for.",
		"Submitting a thorough field report, {name}: every waypoint across the \"{task}\" sector logged with the methodical precision expected of a {role}.",
		"{name} sprints back from the unknown having explored swiftly, scouting the full perimeter of \"{task}\" well ahead of schedule.",
		"True to form, {name} held the line on the expedition, a steadfast {role} charting every inch of unfamiliar ground during \"{task}\".",
		"{name}, acting as {role}, completed the exploration task: {task}.",
	},
	TopicConstruction: {
		"{name} broke ground without hesitation and drove \"{task}\" to completion — bold work fit for a {role}.",
		"Construction log from {name}: materials, measurements, and load calculations for \"{task}\" all verified to spec, {role}-grade precision throughout.",
		"The build for \"{task}\" went up fast — {name} kept pace as a swift, efficient {role}.",
		"{name} stayed the course on \"{task}\", a steadfast {role} who would not leave a beam unchecked.",
		"{name}, acting as {role}, completed the construction task: {task}.",
	},
	TopicIntelligence: {
		"{name} moved in close and came back with the goods — a bold read on \"{task}\" that most {role}s would not have risked.",
		"Surveillance summary from {name}: every signal from \"{task}\" catalogued and cross-referenced with methodical {role} rigor.",
		"{name} slipped in and out before anyone noticed, a swift {role} closing out \"{task}\" in record time.",
		"{name} held the observation post on \"{task}\" without flinching, the steadfast watch a {role} is known for.",
		"{name}, acting as {role}, completed the intelligence task: {task}.",
	},
	TopicDefense: {
		"{name} met the threat head-on and secured \"{task}\" — the kind of bold stand a {role} is built for.",
		"Defense audit from {name}: every weak point in \"{task}\" identified and reinforced with methodical {role} care.",
		"{name} reinforced the perimeter for \"{task}\" in a flash, a swift {role} leaving nothing exposed.",
		"{name} did not budge from the line on \"{task}\", the steadfast {role} the garrison needed.",
		"{name}, acting as {role}, completed the defense task: {task}.",
	},
	TopicCoding: {
		"{name} shipped it — \"{task}\" is done, bug-free and bold, exactly what a {role} should deliver.",
		"Code review notes from {name}: \"{task}\" refactored, tests passing, every edge case handled with methodical {role} discipline.",
		"{name} banged out \"{task}\" at speed, a swift {role} who does not let a pull request linger.",
		"{name} debugged \"{task}\" down to the last stack trace, the steadfast persistence of a {role} who does not give up.",
		"{name}, acting as {role}, completed the coding task: {task}.",
	},
	TopicResearch: {
		"{name} took a bold swing at \"{task}\" and the hypothesis held — results ready for review.",
		"Research notes from {name}: methodology, data, and findings for \"{task}\" documented with methodical {role} thoroughness.",
		"{name} burned through the literature on \"{task}\" at speed, a swift {role} synthesizing it all same-day.",
		"{name} kept at \"{task}\" through every dead end, the steadfast patience of a {role} paying off.",
		"{name}, acting as {role}, completed the research task: {task}.",
	},
	TopicCommunication: {
		"{name} delivered the message on \"{task}\" without softening a word — bold, direct, {role}-style.",
		"Communication log from {name}: every stakeholder on \"{task}\" briefed with methodical {role} precision.",
		"{name} relayed \"{task}\" to every party in minutes, a swift {role} who does not let word go stale.",
		"{name} kept the channel open on \"{task}\" until everyone was heard, the steadfast presence of a {role}.",
		"{name}, acting as {role}, completed the communication task: {task}.",
	},
	TopicPlanning: {
		"{name} drew up a bold plan for \"{task}\" and committed the team to it on the spot.",
		"Planning dossier from {name}: every contingency for \"{task}\" mapped out with methodical {role} rigor.",
		"{name} turned around a plan for \"{task}\" before the meeting even ended, a swift {role} at work.",
		"{name} refused to let \"{task}\" drift off schedule, the steadfast discipline of a {role}.",
		"{name}, acting as {role}, completed the planning task: {task}.",
	},
	TopicGeneral: {
		"{name} took on \"{task}\" boldly and saw it through without a second thought.",
		"{name} worked through \"{task}\" with the methodical care a {role} is known for.",
		"{name} wrapped up \"{task}\" swiftly, no wasted motion.",
		"{name} stuck with \"{task}\" to the end, steadfast as ever.",
		"{name}, acting as {role}, completed the task: {task}.",
	},
}

// QuestionTemplates holds, for every topic, the ordered array of
// clarifying-question strings. general carries five; every other
// topic carries three, per spec.
var QuestionTemplates = map[Topic][]string{
	TopicExploration: {
		"{name} needs clarification before continuing: which boundary of \"{task}\" should take priority?",
		"Before proceeding, {name} asks: should hazardous terrain encountered during \"{task}\" be avoided entirely?",
		"{name} pauses the expedition to confirm: is a return rendezvous point already established for \"{task}\"?",
	},
	TopicConstruction: {
		"{name} needs a decision before pouring the foundation for \"{task}\": which materials are approved?",
		"Before continuing \"{task}\", {name} asks: is there a hard deadline that should shape the build order?",
		"{name} checks in on \"{task}\": should the existing structure be reinforced or replaced?",
	},
	TopicIntelligence: {
		"{name} needs direction on \"{task}\": should contact be avoided at all costs?",
		"Before proceeding with \"{task}\", {name} asks: is there a specific target to prioritize?",
		"{name} pauses \"{task}\" to confirm: should findings be reported immediately or batched?",
	},
	TopicDefense: {
		"{name} needs clarification on \"{task}\": should the perimeter be held or the line pulled back?",
		"Before continuing \"{task}\", {name} asks: is lethal force authorized if the threat escalates?",
		"{name} checks in on \"{task}\": are reinforcements expected, or should the position hold alone?",
	},
	TopicCoding: {
		"{name} needs a decision on \"{task}\": should backward compatibility be preserved?",
		"Before continuing \"{task}\", {name} asks: is there a preferred testing framework to use?",
		"{name} pauses \"{task}\" to confirm: should this change ship behind a flag?",
	},
	TopicResearch: {
		"{name} needs clarification on \"{task}\": is there a preferred methodology to follow?",
		"Before continuing \"{task}\", {name} asks: should preliminary findings be shared now or held for the final report?",
		"{name} checks in on \"{task}\": is there a sample size constraint to respect?",
	},
	TopicCommunication: {
		"{name} needs a decision on \"{task}\": should the message go out publicly or privately?",
		"Before continuing \"{task}\", {name} asks: is there a tone the recipients expect?",
		"{name} pauses \"{task}\" to confirm: should a response be requested explicitly?",
	},
	TopicPlanning: {
		"{name} needs clarification on \"{task}\": what is the hard deadline to plan around?",
		"Before continuing \"{task}\", {name} asks: should contingencies be built in for every dependency?",
		"{name} checks in on \"{task}\": is the current team roster final?",
	},
	TopicGeneral: {
		"{name} needs a bit more detail before continuing with \"{task}\": could you clarify the priority?",
		"Before proceeding with \"{task}\", {name} asks: is there a deadline to keep in mind?",
		"{name} checks in on \"{task}\": should this be handled alone or with support?",
		"{name} pauses on \"{task}\" to confirm: is the current scope still accurate?",
		"{name} asks about \"{task}\": should progress be reported before it's finished?",
	},
}
