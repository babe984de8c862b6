package ai

import "strings"

// ExtractCommand pulls the shell command out of a backend reply. Backends
// are told to return the bare command, but models still wrap output in code
// fences, backticks, or a "Command:" line, so every layer is stripped.
func ExtractCommand(content string) string {
	if code := extractCodeBlock(content); code != "" {
		return trimDecorations(code)
	}
	if cmd := extractCommandLine(content); cmd != "" {
		return trimDecorations(cmd)
	}
	return trimDecorations(content)
}

func extractCodeBlock(content string) string {
	if !strings.Contains(content, "```") {
		return ""
	}

	start := strings.Index(content, "```")
	suffix := content[start+3:]
	end := strings.Index(suffix, "```")
	if end == -1 {
		return ""
	}

	block := suffix[:end]
	lines := strings.Split(block, "\n")
	if len(lines) > 0 && isFenceLanguage(lines[0]) {
		lines = lines[1:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func isFenceLanguage(line string) bool {
	switch strings.TrimSpace(strings.ToLower(line)) {
	case "sh", "shell", "bash", "zsh", "console":
		return true
	default:
		return false
	}
}

func extractCommandLine(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(line), "command:") {
			return strings.TrimSpace(line[len("command:"):])
		}
	}
	return ""
}

// trimDecorations removes inline backticks, stray quotes, and the "$ "
// prompt prefix models sometimes copy from documentation.
func trimDecorations(command string) string {
	command = strings.TrimSpace(command)
	command = strings.Trim(command, "`\"'")
	command = strings.TrimSpace(command)
	if strings.HasPrefix(command, "$ ") {
		command = strings.TrimSpace(command[2:])
	}
	return command
}
