// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reliability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sumergoconicio/openai-pdf-renamer/pkg/types"
)

func TestFieldReliable(t *testing.T) {
	reliable := []string{"J. Smith", "The Great Work", "1998", "None of the Above"}
	for _, v := range reliable {
		assert.True(t, FieldReliable(v), "%q should be reliable", v)
	}

	unreliable := []string{"", "   ", "Unknown", "unknown", "UNKNOWN", "Various", "N/A", "none", " Various "}
	for _, v := range unreliable {
		assert.False(t, FieldReliable(v), "%q should be unreliable", v)
	}
}

func TestUsable(t *testing.T) {
	good := types.GuessResult{Title: "The Great Work", Author: "J. Smith", Year: "1998"}
	assert.True(t, Usable(good, false))
	assert.True(t, Usable(good, true))

	placeholderAuthor := types.GuessResult{Title: "The Great Work", Author: "Various", Year: "2020"}
	assert.False(t, Usable(placeholderAuthor, false), "a placeholder author makes the whole guess unusable")

	placeholderTitle := types.GuessResult{Title: "unknown", Author: "Jane Doe", Year: "2020"}
	assert.False(t, Usable(placeholderTitle, false))

	noYear := types.GuessResult{Title: "The Great Work", Author: "J. Smith", Year: types.Unknown}
	assert.True(t, Usable(noYear, false), "year is optional by default")
	assert.False(t, Usable(noYear, true), "requireYear promotes the year to mandatory")
}
