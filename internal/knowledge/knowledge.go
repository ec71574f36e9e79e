// ABOUTME: Company knowledge loader and system instruction builder
// ABOUTME: Missing knowledge files fall back to a built-in summary of Choco-dev
package knowledge

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Fallback is used when the knowledge file cannot be read
const Fallback = `Tech stack: Python, React Native, Node.js, PostgreSQL
DevOps tools: Docker, Kubernetes, Jenkins, GitLab CI/CD
Main projects: ChocoPOV (point of sale system) and ChocoAPI (partner API)
Environments: Development, Staging, Production
Internal wiki: https://wiki.choco-dev.internal
Code repository: GitLab at https://gitlab.choco-dev.internal`

// Load returns the contents of the knowledge file at path, or Fallback when the
// file is missing, unreadable, or empty.
func Load(path string, logger *zap.Logger) string {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path == "" {
		return Fallback
	}

	data, err := os.ReadFile(path) // #nosec G304 - operator-supplied path
	if err != nil {
		logger.Debug("knowledge file unavailable, using fallback", zap.String("path", path), zap.Error(err))
		return Fallback
	}

	content := strings.TrimSpace(string(data))
	if content == "" {
		logger.Debug("knowledge file empty, using fallback", zap.String("path", path))
		return Fallback
	}
	return content
}

// SystemInstruction builds the assistant persona around the company knowledge
func SystemInstruction(companyKnowledge string) string {
	return fmt.Sprintf(`You are Kit, an AI assistant specialized in DevOps and developer onboarding.
Your tone is friendly, you use chocolate emojis 🍫 and occasionally make chocolate jokes to match the theme of the company Choco-dev.

You help developers who have just joined Choco-dev to:
- Solve Windows and Linux environment setup problems for software development.
- Explain DevOps tools such as Docker, Kubernetes, Jenkins, GitLab CI/CD and Terraform.
- Point to relevant internal and external documentation.
- Offer step-by-step tutorials for configuring environments.
- Explain how the company's automation pipelines work.

IMPORTANT INFORMATION ABOUT CHOCO-DEV:
%s

When you do not know a specific answer about Choco-dev internal processes,
say so and suggest that the developer check the internal wiki or ask someone on their team.`, companyKnowledge)
}
