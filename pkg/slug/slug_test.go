// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quangdm/revio/pkg/slug"
)

/*
TestFrom verifies the slug pipeline: lowercasing, accent folding, and hyphen
normalization.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Drama", "drama"},
		{"spaces", "Science Fiction", "science-fiction"},
		{"accents", "Cinéma Vérité", "cinema-verite"},
		{"punctuation", "Rock & Roll!", "rock-roll"},
		{"multi_hyphen", "a --- b", "a-b"},
		{"leading_trailing", " trimmed ", "trimmed"},
		{"digits", "Top 10 of 1999", "top-10-of-1999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
