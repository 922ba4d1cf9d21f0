package request

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagNameRule(t *testing.T) {
	require.NoError(t, RegisterValidations())
	require.NoError(t, RegisterValidations())

	cases := []struct {
		name  string
		tags  []string
		valid bool
	}{
		{"plain", []string{"go", "web dev"}, true},
		{"none", nil, true},
		{"blank", []string{" "}, false},
		{"colon", []string{"a:b"}, false},
		{"too long", []string{string(make([]byte, maxTagLen+1))}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := Blog{Title: "t", Content: "c", Tags: tc.tags}
			err := binding.Validator.ValidateStruct(&req)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestBlogToDomain(t *testing.T) {
	off := false
	b := (&Blog{Title: "t", Content: "c", Tags: []string{"x"}}).ToDomain()
	assert.True(t, b.CommentsEnabled)

	b = (&Blog{Title: "t", Content: "c", CommentsEnabled: &off}).ToDomain()
	assert.False(t, b.CommentsEnabled)
}

func TestBlogPatchToDomain(t *testing.T) {
	title := "new"
	p := (&BlogPatch{Title: &title}).ToDomain()
	assert.False(t, p.IsEmpty())
	assert.Equal(t, "new", *p.Title)
	assert.True(t, (&BlogPatch{}).ToDomain().IsEmpty())
}
