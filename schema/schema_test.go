package schema_test

import (
	"testing"

	"github.com/GriffinCanCode/apiclient/errs"
	"github.com/GriffinCanCode/apiclient/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type account struct {
	ID    int    `json:"id" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

type profile struct {
	Email string `json:"email" validate:"required,email"`
}

type form struct {
	Profile profile `json:"profile"`
}

func TestValidate(t *testing.T) {
	t.Run("conforming struct passes", func(t *testing.T) {
		err := schema.Validate(account{ID: 1, Email: "a@b.co"})
		assert.NoError(t, err)
	})

	t.Run("missing fields reported in declaration order", func(t *testing.T) {
		err := schema.Validate(account{})
		require.Error(t, err)

		fields := errs.GetFieldErrors(err)
		require.Len(t, fields, 2)
		assert.Equal(t, "id", fields[0].Field)
		assert.Equal(t, "This field is required", fields[0].Err)
		assert.Equal(t, "email", fields[1].Field)
	})

	t.Run("translated message for non-required tags", func(t *testing.T) {
		err := schema.Validate(account{ID: 1, Email: "not-an-email"})
		require.Error(t, err)

		fields := errs.GetFieldErrors(err)
		require.Len(t, fields, 1)
		assert.Equal(t, "email", fields[0].Field)
		assert.Contains(t, fields[0].Err, "valid email")
	})

	t.Run("nested struct paths use json names", func(t *testing.T) {
		err := schema.Validate(form{})
		require.Error(t, err)

		fields := errs.GetFieldErrors(err)
		require.Len(t, fields, 1)
		assert.Equal(t, "profile.email", fields[0].Field)
	})

	t.Run("slice elements validated with index prefix", func(t *testing.T) {
		err := schema.Validate([]account{
			{ID: 1, Email: "a@b.co"},
			{ID: 2, Email: "nope"},
		})
		require.Error(t, err)

		fields := errs.GetFieldErrors(err)
		require.Len(t, fields, 1)
		assert.Equal(t, "[1].email", fields[0].Field)
	})

	t.Run("nil elements never mask invalid siblings", func(t *testing.T) {
		err := schema.Validate([]*account{{}, nil})
		require.Error(t, err)

		fields := errs.GetFieldErrors(err)
		require.Len(t, fields, 2)
		assert.Equal(t, "[0].id", fields[0].Field)
		assert.Equal(t, "[0].email", fields[1].Field)
	})

	t.Run("invalid element after nil still reported", func(t *testing.T) {
		err := schema.Validate([]*account{nil, {ID: 1, Email: "nope"}})
		require.Error(t, err)

		fields := errs.GetFieldErrors(err)
		require.Len(t, fields, 1)
		assert.Equal(t, "[1].email", fields[0].Field)
	})

	t.Run("all-nil slice passes", func(t *testing.T) {
		assert.NoError(t, schema.Validate([]*account{nil, nil}))
	})

	t.Run("pointer to struct validated", func(t *testing.T) {
		err := schema.Validate(&account{ID: 1, Email: "bad"})
		assert.Error(t, err)
	})

	t.Run("undeclared shapes pass", func(t *testing.T) {
		assert.NoError(t, schema.Validate(nil))
		assert.NoError(t, schema.Validate((*account)(nil)))
		assert.NoError(t, schema.Validate(map[string]any{"free": "form"}))
		assert.NoError(t, schema.Validate("scalar"))
		assert.NoError(t, schema.Validate([]int{1, 2, 3}))
	})

	t.Run("failures are validation kind", func(t *testing.T) {
		err := schema.Validate(account{})
		assert.Equal(t, errs.KindValidation, errs.Kind(err))
	})
}

func TestBind(t *testing.T) {
	t.Run("map payload binds to struct", func(t *testing.T) {
		out, err := schema.Bind[account](map[string]any{
			"id":    float64(7),
			"email": "a@b.co",
			"name":  "seven",
		})
		require.NoError(t, err)
		assert.Equal(t, account{ID: 7, Email: "a@b.co", Name: "seven"}, out)
	})

	t.Run("raw bytes bind directly", func(t *testing.T) {
		out, err := schema.Bind[account]([]byte(`{"id":1,"email":"a@b.co"}`))
		require.NoError(t, err)
		assert.Equal(t, 1, out.ID)
	})

	t.Run("conforming data survives unchanged", func(t *testing.T) {
		in := account{ID: 3, Email: "x@y.zz", Name: "keep"}
		out, err := schema.Bind[account](in)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("shape mismatch is a field error", func(t *testing.T) {
		_, err := schema.Bind[account](map[string]any{"id": "not a number"})
		require.Error(t, err)
		assert.True(t, errs.IsFieldErrors(err))
	})

	t.Run("bound value still validated", func(t *testing.T) {
		_, err := schema.Bind[account](map[string]any{"id": float64(1)})
		require.Error(t, err)

		fields := errs.GetFieldErrors(err)
		require.Len(t, fields, 1)
		assert.Equal(t, "email", fields[0].Field)
	})

	t.Run("slice payload binds per element", func(t *testing.T) {
		out, err := schema.Bind[[]account]([]byte(`[{"id":1,"email":"a@b.co"},{"id":2,"email":"b@c.dd"}]`))
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, 2, out[1].ID)
	})

	t.Run("null elements never mask invalid ones", func(t *testing.T) {
		_, err := schema.Bind[[]*account]([]byte(`[{},null]`))
		require.Error(t, err)
		assert.Equal(t, errs.KindValidation, errs.Kind(err))

		fields := errs.GetFieldErrors(err)
		require.Len(t, fields, 2)
		assert.Equal(t, "[0].id", fields[0].Field)
	})

	t.Run("boolean payload cannot bind to struct", func(t *testing.T) {
		_, err := schema.Bind[account](true)
		require.Error(t, err)
		assert.Equal(t, errs.KindValidation, errs.Kind(err))
	})
}
