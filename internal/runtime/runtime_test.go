package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortID(t *testing.T) {
	assert.Equal(t, "0123456789ab", shortID("0123456789abcdef0123"))
	assert.Equal(t, "abc", shortID("abc"))
}

func TestImageExistsRejectsEmptyName(t *testing.T) {
	_, err := ImageExists(context.Background(), "")
	require.Error(t, err)
}

func TestPullImageRejectsEmptyName(t *testing.T) {
	err := PullImage(context.Background(), "")
	require.Error(t, err)
}
