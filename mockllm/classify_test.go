package mockllm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"agentverse/mockllm"
	"agentverse/mockllm/template"
)

func TestDetectTopic(t *testing.T) {
	cases := []struct {
		name string
		task string
		want template.Topic
	}{
		{"exploration", "Map and explore the unknown territory", template.TopicExploration},
		{"construction", "Build and fortify the new base wall", template.TopicConstruction},
		{"intelligence", "Surveil the enemy camp and report intel", template.TopicIntelligence},
		{"defense", "Defend and guard the fortress perimeter", template.TopicDefense},
		{"coding", "Debug the algorithm and refactor the function", template.TopicCoding},
		{"research", "Research and analyze the experiment data", template.TopicResearch},
		{"communication", "Relay the diplomat's message and report back", template.TopicCommunication},
		{"planning", "Draft a strategy and coordinate the schedule", template.TopicPlanning},
		{"general fallback", "Feed the chickens", template.TopicGeneral},
		{"empty", "", template.TopicGeneral},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, mockllm.DetectTopic(tc.task))
		})
	}
}

func TestDetectTopicIsTotal(t *testing.T) {
	inputs := []string{"", "xyzzy plugh", "123456", "🚀🚀🚀", "MAP THE EXPLORE TERRITORY"}
	validTopics := make(map[template.Topic]bool, len(template.Topics))
	for _, topic := range template.Topics {
		validTopics[topic] = true
	}
	for _, in := range inputs {
		got := mockllm.DetectTopic(in)
		assert.True(t, validTopics[got], "DetectTopic(%q) returned invalid topic %q", in, got)
	}
}

func TestDetectPersonaStyle(t *testing.T) {
	cases := []struct {
		name    string
		persona string
		want    template.Style
	}{
		{"bold", "Curious and bold", template.StyleBold},
		{"methodical", "Methodical and reliable", template.StyleMethodical},
		{"swift", "Swift and agile", template.StyleSwift},
		{"steadfast", "Steadfast and unwavering", template.StyleSteadfast},
		{"empty", "", template.StyleNeutral},
		{"no keywords", "Likes long walks on the beach", template.StyleNeutral},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, mockllm.DetectPersonaStyle(tc.persona))
		})
	}
}

func TestDetectPersonaStyleIsTotal(t *testing.T) {
	validStyles := make(map[template.Style]bool, len(template.Styles))
	for _, style := range template.Styles {
		validStyles[style] = true
	}
	for _, in := range []string{"", "???", "Bold yet methodical yet swift"} {
		got := mockllm.DetectPersonaStyle(in)
		assert.True(t, validStyles[got], "DetectPersonaStyle(%q) returned invalid style %q", in, got)
	}
}
