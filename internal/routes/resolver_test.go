package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		topicID string
		want    string
	}{
		{"constitution", "/documents/constitution"},
		{"declaration", "/documents/declaration"},
		{"bill-of-rights", "/documents/bill-of-rights"},
		{"articles-of-confederation", "/documents/articles-of-confederation"},
		{"federalist-papers", "/documents/federalist-papers"},
		{"legislative", "/topics/legislative"},
		{"nonexistent-id", "/topics/nonexistent-id"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Resolve(tt.topicID), "topic %q", tt.topicID)
	}
}

func TestIsFoundingDocument(t *testing.T) {
	assert.True(t, IsFoundingDocument("constitution"))
	assert.False(t, IsFoundingDocument("legislative"))
	assert.False(t, IsFoundingDocument(""))
}
