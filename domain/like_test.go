package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/blog-threads/domain"
)

func TestParseLikeAction(t *testing.T) {
	a, err := domain.ParseLikeAction(1)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionLike, a)
	assert.Equal(t, "LIKE", a.String())

	a, err = domain.ParseLikeAction(0)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionUnlike, a)
	assert.Equal(t, "UNLIKE", a.String())

	for _, v := range []int{-1, 2, 7} {
		_, err := domain.ParseLikeAction(v)
		assert.True(t, errors.Is(err, domain.ErrInvalidValue), "value %d", v)
	}
	assert.Equal(t, "UNKNOWN", domain.LikeAction(5).String())
}
