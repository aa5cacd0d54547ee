package launcher

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Aman-CERP/appdex/internal/errors"
)

func TestOSLauncher_MissingPathReturnsNotFound(t *testing.T) {
	l := NewOSLauncher(nil)

	err := l.Launch(context.Background(), filepath.Join(t.TempDir(), "Ghost.app"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.New(apperrors.ErrCodeLaunchNotFound, "", nil)))
	assert.Equal(t, apperrors.CategoryLaunch, apperrors.GetCategory(err))
}

func TestFunc_AdaptsFunction(t *testing.T) {
	var got string
	l := Func(func(_ context.Context, path string) error {
		got = path
		return nil
	})

	require.NoError(t, l.Launch(context.Background(), "/a/Safari.app"))
	assert.Equal(t, "/a/Safari.app", got)
}
