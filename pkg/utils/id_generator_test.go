package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReferenceCode_Format(t *testing.T) {
	id := GenerateReferenceCode("")

	assert.True(t, strings.HasPrefix(id, "IDEA-"))
	assert.Len(t, id, len("IDEA-")+ReferenceCodeLength)
	assert.True(t, IsValidReferenceCode(id, ""), "generated code %s should validate", id)
	for _, confusable := range []string{"0", "O", "1", "I", "L"} {
		assert.NotContains(t, strings.TrimPrefix(id, "IDEA-"), confusable)
	}
}

func TestGenerateReferenceCode_CustomPrefix(t *testing.T) {
	id := GenerateReferenceCode("OPS")

	assert.True(t, strings.HasPrefix(id, "OPS-"))
	assert.True(t, IsValidReferenceCode(id, "OPS"))
	assert.False(t, IsValidReferenceCode(id, "IDEA"))
}

func TestGenerateReferenceCode_Uniqueness(t *testing.T) {
	const draws = 10000
	seen := make(map[string]struct{}, draws)
	for i := 0; i < draws; i++ {
		id := GenerateReferenceCode("")
		_, dup := seen[id]
		assert.False(t, dup, "duplicate reference code %s after %d draws", id, i)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, draws)
}

func TestIsValidReferenceCode(t *testing.T) {
	assert.False(t, IsValidReferenceCode("IDEA-SHORT", ""))
	assert.False(t, IsValidReferenceCode("IDEA-0000000000", ""))
	assert.False(t, IsValidReferenceCode("7KQ2M9XHTW", ""))
	assert.True(t, IsValidReferenceCode("IDEA-7KQ2M9XHTW", ""))
}

func TestGenerateRecordIDs(t *testing.T) {
	assert.True(t, strings.HasPrefix(GenerateClassificationID(), "CLS-"))
	assert.True(t, strings.HasPrefix(GenerateEvaluationID(), "EVAL-"))
	assert.True(t, strings.HasPrefix(GenerateWorkflowID(), "WF-"))
	assert.True(t, strings.HasPrefix(GenerateAuditID(), "AUDIT-"))
}
