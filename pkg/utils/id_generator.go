package utils

import (
	"strings"

	"github.com/google/uuid"
)

// ReferenceAlphabet is the character set used for idea reference codes.
// Visually confusable characters (0/O, 1/I/L) are excluded.
const ReferenceAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// ReferenceCodeLength is the number of random characters in a reference code
const ReferenceCodeLength = 10

// DefaultReferencePrefix is the project tag placed in front of every idea reference
const DefaultReferencePrefix = "IDEA"

// GenerateID generates a new UUID for record identifiers
func GenerateID() string {
	return uuid.New().String()
}

// GenerateReferenceCode generates a short, human-presentable idea reference
// such as IDEA-7KQ2M9XHTW. The random part is drawn from a v4 UUID so the
// entropy comes from crypto/rand.
func GenerateReferenceCode(prefix string) string {
	if prefix == "" {
		prefix = DefaultReferencePrefix
	}

	var sb strings.Builder
	sb.Grow(len(prefix) + 1 + ReferenceCodeLength)
	sb.WriteString(prefix)
	sb.WriteByte('-')

	a, b := uuid.New(), uuid.New()
	raw := append(a[:], b[:]...)
	n := len(ReferenceAlphabet)
	for i := 0; i < ReferenceCodeLength; i++ {
		// Two bytes per character keeps modulo bias well under 1%.
		v := int(raw[2*i])<<8 | int(raw[2*i+1])
		sb.WriteByte(ReferenceAlphabet[v%n])
	}
	return sb.String()
}

// IsValidReferenceCode checks that id has the expected prefix and alphabet
func IsValidReferenceCode(id, prefix string) bool {
	if prefix == "" {
		prefix = DefaultReferencePrefix
	}
	code, ok := strings.CutPrefix(id, prefix+"-")
	if !ok || len(code) != ReferenceCodeLength {
		return false
	}
	for _, c := range code {
		if !strings.ContainsRune(ReferenceAlphabet, c) {
			return false
		}
	}
	return true
}

// GenerateClassificationID generates a unique classification record ID
func GenerateClassificationID() string {
	return "CLS-" + uuid.New().String()
}

// GenerateEvaluationID generates a unique evaluation record ID
func GenerateEvaluationID() string {
	return "EVAL-" + uuid.New().String()
}

// GenerateWorkflowID generates a unique workflow record ID
func GenerateWorkflowID() string {
	return "WF-" + uuid.New().String()
}

// GenerateAuditID generates a unique audit log ID
func GenerateAuditID() string {
	return "AUDIT-" + uuid.New().String()
}
