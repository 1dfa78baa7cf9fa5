package validate

import "regexp"

// dangerousPatterns blocks capabilities generated code must never reach:
// OS and filesystem access, process spawning, dynamic evaluation and
// imports, network clients, and deserialization. The scan runs over the
// raw source text after the syntax check passes.
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bos\.`),
	regexp.MustCompile(`\bsys\.`),
	regexp.MustCompile(`\bsubprocess\.`),
	regexp.MustCompile(`\bopen\s*\(`),
	regexp.MustCompile(`\beval\s*\(`),
	regexp.MustCompile(`\bexec\s*\(`),
	regexp.MustCompile(`\bcompile\s*\(`),
	regexp.MustCompile(`\b__import__\s*\(`),
	regexp.MustCompile(`\bimport\s+os\b`),
	regexp.MustCompile(`\bimport\s+sys\b`),
	regexp.MustCompile(`\bimport\s+subprocess\b`),
	regexp.MustCompile(`\bfrom\s+os\b`),
	regexp.MustCompile(`\bfrom\s+sys\b`),
	regexp.MustCompile(`\bfrom\s+subprocess\b`),
	regexp.MustCompile(`\bshutil\.`),
	regexp.MustCompile(`\brequests\.`),
	regexp.MustCompile(`\burllib\.`),
	regexp.MustCompile(`\bsocket\.`),
	regexp.MustCompile(`\bpickle\.`),
}

// scanDangerous returns the source pattern of every denylist entry that
// matches, not just the first, so callers can report the full set.
func scanDangerous(code string) []string {
	var matched []string
	for _, pattern := range dangerousPatterns {
		if pattern.MatchString(code) {
			matched = append(matched, pattern.String())
		}
	}
	return matched
}
