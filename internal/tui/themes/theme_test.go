package themes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/waste-wise/internal/model"
)

func TestFor(t *testing.T) {
	assert.Equal(t, model.ThemeLight, For(model.ThemeLight).Name)
	assert.Equal(t, model.ThemeDark, For(model.ThemeDark).Name)
	assert.Equal(t, model.ThemeLight, For("").Name)
	assert.NotEqual(t, Light.Primary, Dark.Primary)
}

func TestGetCategoryIcon(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{"Plastic", "🧴"},
		{"  paper ", "📄"},
		{"Metal cans", "🥫"},
		{"E-waste", "🔌"},
		{"Hazardous", "🗑️"},
		{"", "🗑️"},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.want, GetCategoryIcon(tt.category))
		})
	}
}
