package respond

import "regexp"

// Secret-bearing fragments that must never reach logs or response bodies.
// The Anthropic pattern runs before the OpenAI one: "sk-ant-..." would
// otherwise be half-masked by the shorter "sk-..." match.
var (
	anthropicKeyPattern = regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`)
	openaiKeyPattern    = regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`)
	bearerTokenPattern  = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._~+/-]+=*`)
	dsnPasswordPattern  = regexp.MustCompile(`://([^:/]+):([^@]+)@`)
)

// SanitizeError masks API keys, bearer tokens, and DSN passwords in the
// error message. Connection errors in particular tend to echo the full
// DATABASE_URL.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = openaiKeyPattern.ReplaceAllString(msg, "sk-****")
	msg = bearerTokenPattern.ReplaceAllString(msg, "Bearer ****")
	msg = dsnPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	return msg
}
