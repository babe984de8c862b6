package ai

import "testing"

func TestExtractCommand(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		want  string
	}{
		{"bare command", "ls -la", "ls -la"},
		{"fenced bash block", "```bash\nfind . -name '*.log'\n```", "find . -name '*.log'"},
		{"fenced sh block", "```sh\ndf -h\n```", "df -h"},
		{"fence without language", "```\nuptime\n```", "uptime"},
		{"fence with surrounding prose", "Sure:\n```shell\ndu -sh *\n```\nThat sums each entry.", "du -sh *"},
		{"command prefix line", "Command: grep -r TODO src/", "grep -r TODO src/"},
		{"inline backticks", "`cat /etc/hostname`", "cat /etc/hostname"},
		{"quoted command", "\"whoami\"", "whoami"},
		{"doc-style prompt prefix", "$ tail -f /var/log/syslog", "tail -f /var/log/syslog"},
		{"whitespace padding", "  pwd  \n", "pwd"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractCommand(tc.reply); got != tc.want {
				t.Fatalf("ExtractCommand(%q) = %q, want %q", tc.reply, got, tc.want)
			}
		})
	}
}

func TestInferTranslatorKind(t *testing.T) {
	cases := []struct {
		endpoint string
		model    string
		want     translatorKind
	}{
		{"https://api.anthropic.com/v1/messages", "claude-sonnet", kindAnthropic},
		{"https://api.openai.com/v1/chat/completions", "gpt", kindOpenAI},
		{"http://localhost:11434/v1/chat/completions", "codellama", kindOllama},
		{"http://127.0.0.1:11434/api/chat", "anything", kindOllama},
		{"", "mystery", kindUnknown},
	}

	for _, tc := range cases {
		if got := inferTranslatorKind(tc.endpoint, tc.model); got != tc.want {
			t.Errorf("inferTranslatorKind(%q, %q) = %s, want %s", tc.endpoint, tc.model, got, tc.want)
		}
	}
}
