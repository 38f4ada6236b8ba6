package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/sma-enrollment-intake/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil)
	ctx := context.Background()

	var dest []string
	assert.ErrorIs(t, repo.Get(ctx, "inscripciones:recent:50", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(ctx, "inscripciones:recent:50", []string{"x"}, time.Minute))
	assert.NoError(t, repo.DeleteByPattern(ctx, "inscripciones:*"))
	assert.NoError(t, repo.Close())
}
