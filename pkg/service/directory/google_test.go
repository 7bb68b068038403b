package directory_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/skoll/pkg/domain/model"
	"github.com/secmon-lab/skoll/pkg/service/directory"
	"google.golang.org/api/googleapi"
)

func TestMapGoogleError(t *testing.T) {
	t.Run("403 maps to permission denied", func(t *testing.T) {
		err := directory.MapGoogleError(&googleapi.Error{Code: 403}, model.ErrUserNotFound)
		gt.True(t, errors.Is(err, model.ErrPermissionDenied))
	})

	t.Run("401 maps to permission denied", func(t *testing.T) {
		err := directory.MapGoogleError(&googleapi.Error{Code: 401}, model.ErrUserNotFound)
		gt.True(t, errors.Is(err, model.ErrPermissionDenied))
	})

	t.Run("404 maps to the per-call sentinel", func(t *testing.T) {
		err := directory.MapGoogleError(&googleapi.Error{Code: 404}, model.ErrGrantNotFound)
		gt.True(t, errors.Is(err, model.ErrGrantNotFound))

		err = directory.MapGoogleError(&googleapi.Error{Code: 404}, model.ErrUserNotFound)
		gt.True(t, errors.Is(err, model.ErrUserNotFound))
	})

	t.Run("5xx maps to unavailable", func(t *testing.T) {
		err := directory.MapGoogleError(&googleapi.Error{Code: 503}, model.ErrUserNotFound)
		gt.True(t, errors.Is(err, model.ErrDirectoryUnavailable))
	})

	t.Run("429 maps to unavailable", func(t *testing.T) {
		err := directory.MapGoogleError(&googleapi.Error{Code: 429}, model.ErrUserNotFound)
		gt.True(t, errors.Is(err, model.ErrDirectoryUnavailable))
	})

	t.Run("transport error maps to unavailable", func(t *testing.T) {
		err := directory.MapGoogleError(errors.New("connection refused"), model.ErrUserNotFound)
		gt.True(t, errors.Is(err, model.ErrDirectoryUnavailable))
	})

	t.Run("other status keeps the original error", func(t *testing.T) {
		apiErr := &googleapi.Error{Code: 409}
		err := directory.MapGoogleError(apiErr, model.ErrUserNotFound)
		gt.Error(t, err)
		gt.False(t, errors.Is(err, model.ErrDirectoryUnavailable))
		gt.True(t, errors.Is(err, apiErr))
	})
}
