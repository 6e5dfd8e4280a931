package action

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/compozy/actionschema/pkg/logger"
)

const listIssuesAction = `name: listIssues
spec:
  input:
    parameters:
      - name: repo
        required: true
        schema: {type: string}
  output:
    responses:
      - success: true
        schema:
          type: array
          items: {type: object}
`

const pingAction = `name: ping
spec:
  input: {}
`

func testContext(t *testing.T) context.Context {
	return logger.ContextWithLogger(t.Context(), logger.NewForTests())
}

func TestNewService(t *testing.T) {
	t.Run("Should fill unset options from defaults", func(t *testing.T) {
		svc, err := NewService(afero.NewMemMapFs(), Options{Root: "/project", Pretty: true})

		require.NoError(t, err)
		opts := svc.opts
		assert.Equal(t, "/project", opts.Root)
		assert.Equal(t, DefaultIncludes, opts.Include)
		assert.Equal(t, "/project/schemas", opts.OutputDir)
		assert.Equal(t, FormatJSON, opts.Format)
		assert.True(t, opts.Pretty)
	})

	t.Run("Should keep explicit options", func(t *testing.T) {
		svc, err := NewService(afero.NewMemMapFs(), Options{
			Root:      "/project",
			Include:   []string{"actions/*.yaml"},
			OutputDir: "/generated",
			Format:    FormatYAML,
		})

		require.NoError(t, err)
		opts := svc.opts
		assert.Equal(t, []string{"actions/*.yaml"}, opts.Include)
		assert.Equal(t, "/generated", opts.OutputDir)
		assert.Equal(t, FormatYAML, opts.Format)
	})
}

func TestService_Run(t *testing.T) {
	t.Run("Should generate one file per action", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		writeFiles(t, fs, map[string]string{
			"/project/github/list_issues.action.yaml": listIssuesAction,
			"/project/misc/ping.action.yaml":          pingAction,
		})
		svc, err := NewService(fs, Options{Root: "/project", Check: true})
		require.NoError(t, err)

		results, err := svc.Run(testContext(t))

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "listIssues", results[0].Name)
		assert.Equal(t, "/project/github/list_issues.action.yaml", results[0].Source)
		assert.Equal(t, "/project/schemas/listissues.json", results[0].Target)
		assert.Equal(t, "ping", results[1].Name)
		assert.Nil(t, results[1].Schemas.Input)
		assert.Nil(t, results[1].Schemas.Output)

		data, err := afero.ReadFile(fs, results[0].Target)
		require.NoError(t, err)
		assert.Equal(t, "listIssuesInput", gjson.GetBytes(data, "input.title").String())
		assert.Equal(t, "listIssuesOutput", gjson.GetBytes(data, "output.title").String())
		assert.Equal(t, "array", gjson.GetBytes(data, "output.type").String())

		data, err = afero.ReadFile(fs, results[1].Target)
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, string(data))
	})

	t.Run("Should return no results when nothing matches", func(t *testing.T) {
		svc, err := NewService(afero.NewMemMapFs(), Options{Root: "/project"})
		require.NoError(t, err)

		results, err := svc.Run(testContext(t))

		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("Should reject two actions writing the same file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		writeFiles(t, fs, map[string]string{
			"/project/a.action.yaml": pingAction,
			"/project/b.action.yaml": pingAction,
		})
		svc, err := NewService(fs, Options{Root: "/project"})
		require.NoError(t, err)

		_, err = svc.Run(testContext(t))

		assert.True(t, IsCode(err, ErrCodeDuplicateAction))
		exists, statErr := afero.DirExists(fs, "/project/schemas")
		require.NoError(t, statErr)
		assert.False(t, exists)
	})

	t.Run("Should report names without usable characters as invalid rather than duplicate", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		writeFiles(t, fs, map[string]string{
			"/project/a.action.yaml": "name: \"!!!\"\nspec:\n  input: {}\n",
			"/project/b.action.yaml": "name: \"???\"\nspec:\n  input: {}\n",
		})
		svc, err := NewService(fs, Options{Root: "/project"})
		require.NoError(t, err)

		_, err = svc.Run(testContext(t))

		var actionErr *Error
		require.ErrorAs(t, err, &actionErr)
		assert.Equal(t, ErrCodeInvalidSpec, actionErr.Code)
		assert.Equal(t, "!!!", actionErr.Action)
		assert.Equal(t, "Name", actionErr.Field)
	})

	t.Run("Should report an empty name as invalid", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		writeFiles(t, fs, map[string]string{
			"/project/a.action.yaml": "name: \"\"\nspec:\n  input: {}\n",
			"/project/b.action.yaml": "name: \"\"\nspec:\n  input: {}\n",
		})
		svc, err := NewService(fs, Options{Root: "/project"})
		require.NoError(t, err)

		_, err = svc.Run(testContext(t))

		assert.True(t, IsCode(err, ErrCodeInvalidSpec))
		assert.False(t, IsCode(err, ErrCodeDuplicateAction))
	})

	t.Run("Should stop on an invalid action", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		writeFiles(t, fs, map[string]string{
			"/project/broken.action.yaml": "name: broken\nspec:\n  output:\n    responses:\n      - success: true\n",
		})
		svc, err := NewService(fs, Options{Root: "/project"})
		require.NoError(t, err)

		_, err = svc.Run(testContext(t))

		var actionErr *Error
		require.ErrorAs(t, err, &actionErr)
		assert.Equal(t, ErrCodeInvalidSpec, actionErr.Code)
		assert.Equal(t, "broken", actionErr.Action)
	})

	t.Run("Should report schemas that do not compile when checking", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		writeFiles(t, fs, map[string]string{
			"/project/odd.action.yaml": "name: odd\nspec:\n  output:\n    responses:\n      - success: true\n        schema: {type: 42}\n",
		})
		svc, err := NewService(fs, Options{Root: "/project", Check: true})
		require.NoError(t, err)

		_, err = svc.Run(testContext(t))

		var actionErr *Error
		require.ErrorAs(t, err, &actionErr)
		assert.Equal(t, ErrCodeCheckFailed, actionErr.Code)
		assert.Equal(t, "output", actionErr.Field)
	})

	t.Run("Should honour a cancelled context", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		writeFiles(t, fs, map[string]string{"/project/ping.action.yaml": pingAction})
		svc, err := NewService(fs, Options{Root: "/project"})
		require.NoError(t, err)
		ctx, cancel := context.WithCancel(testContext(t))
		cancel()

		_, err = svc.Run(ctx)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
