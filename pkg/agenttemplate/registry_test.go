package agenttemplate

import (
	"strings"
	"testing"
)

func TestAll(t *testing.T) {
	all := All()
	if len(all) == 0 {
		t.Fatal("catalog is empty")
	}

	seen := make(map[string]bool, len(all))
	for _, tpl := range all {
		if tpl.ID == "" || tpl.Name == "" || tpl.Category == "" {
			t.Errorf("template %+v missing required fields", tpl)
		}
		if seen[tpl.ID] {
			t.Errorf("duplicate template id %q", tpl.ID)
		}
		seen[tpl.ID] = true
	}

	// Callers must not be able to mutate the catalog through the returned slice.
	all[0].Name = "mutated"
	if All()[0].Name == "mutated" {
		t.Error("All() returned the backing slice")
	}
}

func TestFindByID(t *testing.T) {
	tpl, ok := FindByID("website-faq")
	if !ok {
		t.Fatal("website-faq should exist")
	}
	if tpl.Name != "Website FAQ Chatbot" {
		t.Errorf("Name = %q", tpl.Name)
	}

	if _, ok := FindByID("no-such-template"); ok {
		t.Error("unknown id should not resolve")
	}
}

func TestRenderSystemPrompt(t *testing.T) {
	tests := []struct {
		name         string
		templateName string
		agentName    string
		description  string
		wantContains []string
	}{
		{
			name:         "known template",
			templateName: "Website FAQ Chatbot",
			agentName:    "Shop Helper",
			description:  "Answers questions about the shop",
			wantContains: []string{"Shop Helper", "Answers questions about the shop"},
		},
		{
			name:         "unknown template falls back",
			templateName: "Something Custom",
			agentName:    "My Agent",
			description:  "Does things",
			wantContains: []string{"My Agent", "Does things", "helpful, professional"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderSystemPrompt(tt.templateName, tt.agentName, tt.description)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("prompt missing %q:\n%s", want, got)
				}
			}
		})
	}
}

func TestEveryTemplateHasAPromptBody(t *testing.T) {
	for _, tpl := range All() {
		prompt := RenderSystemPrompt(tpl.Name, "Test Agent", "test description")
		if !strings.Contains(prompt, "Test Agent") {
			t.Errorf("template %q prompt does not include the agent name", tpl.ID)
		}
	}
}
