package envelope_test

import (
	"testing"

	"github.com/GriffinCanCode/apiclient/envelope"
	"github.com/GriffinCanCode/apiclient/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observedUnwrapper(t *testing.T) (*envelope.Unwrapper, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	return envelope.NewUnwrapper(zap.New(core)), logs
}

func TestUnwrap(t *testing.T) {
	t.Run("code 200 with data yields data", func(t *testing.T) {
		u, logs := observedUnwrapper(t)

		out, err := u.Unwrap(map[string]any{
			"code": float64(200),
			"data": map[string]any{"x": float64(1)},
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"x": float64(1)}, out)
		assert.Zero(t, logs.Len())
	})

	t.Run("code 200 without data yields true", func(t *testing.T) {
		u, _ := observedUnwrapper(t)

		out, err := u.Unwrap(map[string]any{"code": float64(200)})
		require.NoError(t, err)
		assert.Equal(t, true, out)
	})

	t.Run("absent code is success", func(t *testing.T) {
		u, _ := observedUnwrapper(t)

		out, err := u.Unwrap(map[string]any{"data": "payload"})
		require.NoError(t, err)
		assert.Equal(t, "payload", out)
	})

	t.Run("null data yields true", func(t *testing.T) {
		u, _ := observedUnwrapper(t)

		out, err := u.Unwrap(map[string]any{"code": float64(200), "data": nil})
		require.NoError(t, err)
		assert.Equal(t, true, out)
	})

	t.Run("non-200 code fails without logging", func(t *testing.T) {
		u, logs := observedUnwrapper(t)

		_, err := u.Unwrap(map[string]any{"code": float64(404), "message": "nf"})
		require.Error(t, err)

		var perr *errs.ProtocolError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, 404, perr.Code)
		assert.Equal(t, "nf", perr.Message)
		assert.Zero(t, logs.Len())
	})

	t.Run("code 500 logs exactly once then fails", func(t *testing.T) {
		u, logs := observedUnwrapper(t)

		_, err := u.Unwrap(map[string]any{"code": float64(500), "message": "boom"})
		require.Error(t, err)

		var perr *errs.ProtocolError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, 500, perr.Code)
		assert.Equal(t, "boom", perr.Message)

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		fields := entry.ContextMap()
		assert.Equal(t, int64(500), fields["code"])
		assert.Equal(t, "boom", fields["message"])
	})

	t.Run("untrusted data on failure codes", func(t *testing.T) {
		u, _ := observedUnwrapper(t)

		out, err := u.Unwrap(map[string]any{
			"code": float64(403),
			"data": map[string]any{"leak": true},
		})
		assert.Error(t, err)
		assert.Nil(t, out)
	})
}

func TestFrom(t *testing.T) {
	t.Run("integer codes accepted", func(t *testing.T) {
		for _, raw := range []any{float64(404), int(404), int64(404)} {
			env, err := envelope.From(map[string]any{"code": raw})
			require.NoError(t, err)
			require.NotNil(t, env.Code)
			assert.Equal(t, 404, *env.Code)
		}
	})

	t.Run("fractional code rejected", func(t *testing.T) {
		_, err := envelope.From(map[string]any{"code": float64(200.5)})
		require.Error(t, err)
		assert.Equal(t, errs.KindValidation, errs.Kind(err))
	})

	t.Run("non-numeric code rejected", func(t *testing.T) {
		_, err := envelope.From(map[string]any{"code": "200"})
		require.Error(t, err)

		fields := errs.GetFieldErrors(err)
		require.Len(t, fields, 1)
		assert.Equal(t, "code", fields[0].Field)
	})

	t.Run("non-object body rejected", func(t *testing.T) {
		for _, body := range []any{"text", float64(7), []any{1, 2}, nil, true} {
			_, err := envelope.From(body)
			require.Error(t, err)
			assert.Equal(t, errs.KindValidation, errs.Kind(err), "body %v", body)
		}
	})

	t.Run("message and timestamp carried through", func(t *testing.T) {
		env, err := envelope.From(map[string]any{
			"code":      float64(200),
			"message":   "ok",
			"timestamp": "2024-01-02T03:04:05Z",
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", env.Message)
		assert.Equal(t, "2024-01-02T03:04:05Z", env.Timestamp)
	})
}
