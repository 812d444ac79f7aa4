package search

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		assert func(t *testing.T, f Filter)
	}{
		{
			name:  "пустой запрос — пустой фильтр",
			query: "",
			assert: func(t *testing.T, f Filter) {
				assert.Nil(t, f.AgeMin)
				assert.Nil(t, f.AgeMax)
				assert.Empty(t, f.Religions)
				assert.Empty(t, f.Search)
				assert.False(t, f.HasPhoto)
				assert.False(t, f.OnlyNew)
			},
		},
		{
			name:  "списки разбиваются и чистятся",
			query: "religions=Hindu,+Christian+,,Hindu&castes=+Nadar+",
			assert: func(t *testing.T, f Filter) {
				assert.Equal(t, []string{"Hindu", "Christian"}, f.Religions)
				assert.Equal(t, []string{"Nadar"}, f.Castes)
			},
		},
		{
			name:  "возраст разбирается терпимо",
			query: "age_min=25&age_max=abc",
			assert: func(t *testing.T, f Filter) {
				assert.Equal(t, 25, *f.AgeMin)
				assert.Nil(t, f.AgeMax)
			},
		},
		{
			name:  "перевернутый диапазон возраста отбрасывается целиком",
			query: "age_min=40&age_max=30",
			assert: func(t *testing.T, f Filter) {
				assert.Nil(t, f.AgeMin)
				assert.Nil(t, f.AgeMax)
			},
		},
		{
			name:  "возраст зажимается в допустимый диапазон",
			query: "age_min=-5&age_max=500",
			assert: func(t *testing.T, f Filter) {
				assert.Equal(t, 0, *f.AgeMin)
				assert.Equal(t, 150, *f.AgeMax)
			},
		},
		{
			name:  "флаги распознают только true",
			query: "has_photo=true&is_new=yes",
			assert: func(t *testing.T, f Filter) {
				assert.True(t, f.HasPhoto)
				assert.False(t, f.OnlyNew)
			},
		},
		{
			name:  "поисковая строка обрезается",
			query: "search=++chennai++",
			assert: func(t *testing.T, f Filter) {
				assert.Equal(t, "chennai", f.Search)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			tt.assert(t, ParseFilter(values))
		})
	}
}

func TestSplitList_PreservesOrder(t *testing.T) {
	got := splitList("b,a,c,b,a")
	assert.Equal(t, []string{"b", "a", "c"}, got)
}
