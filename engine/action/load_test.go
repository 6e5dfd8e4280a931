package action

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Should load a YAML action file", func(t *testing.T) {
		path := filepath.Join("testdata", "get_issue.action.yaml")

		config, err := Load(afero.NewOsFs(), path)

		require.NoError(t, err)
		assert.Equal(t, "getIssue", config.Name)
		assert.Equal(t, path, config.FilePath())
		require.Len(t, config.Spec.Input.Parameters, 3)
		assert.Equal(t, "owner", config.Spec.Input.Parameters[0].Name)
		assert.True(t, config.Spec.Input.Parameters[0].Required)
		assert.Nil(t, config.Spec.Input.Body)
		require.NotNil(t, config.Spec.Output)
		require.Len(t, config.Spec.Output.Responses, 2)
		assert.True(t, config.Spec.Output.Responses[0].Success)
		assert.False(t, config.Spec.Output.Responses[1].Success)
	})

	t.Run("Should load a JSON action file with an allOf body", func(t *testing.T) {
		config, err := Load(afero.NewOsFs(), filepath.Join("testdata", "create_issue.action.json"))

		require.NoError(t, err)
		assert.Equal(t, "createIssue", config.Name)
		require.NotNil(t, config.Spec.Input.Body)
		fragments, ok := config.Spec.Input.Body.AllOf()
		require.True(t, ok)
		assert.Len(t, fragments, 2)
	})

	t.Run("Should return a load error for a missing file", func(t *testing.T) {
		_, err := Load(afero.NewMemMapFs(), "/missing.action.yaml")

		require.Error(t, err)
		assert.True(t, IsCode(err, ErrCodeLoadFailed))
		assert.Contains(t, err.Error(), "/missing.action.yaml")
	})

	t.Run("Should return a load error for a malformed document", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/bad.action.yaml", []byte("name: [unterminated"), 0o644))

		_, err := Load(fs, "/bad.action.yaml")

		require.Error(t, err)
		assert.True(t, IsCode(err, ErrCodeLoadFailed))
	})
}

func TestConfig_Schemas(t *testing.T) {
	t.Run("Should derive schemas from a loaded action", func(t *testing.T) {
		config, err := Load(afero.NewOsFs(), filepath.Join("testdata", "get_issue.action.yaml"))
		require.NoError(t, err)

		schemas, err := config.Schemas(t.Context())

		require.NoError(t, err)
		require.NotNil(t, schemas.Input)
		assert.Equal(t, "getIssueInput", schemas.Input.Title())
		assert.Equal(t, []string{"owner", "repo", "issue_number"}, schemas.Input.Required())
		issueNumber := schemas.Input.Properties()["issue_number"]
		assert.NotContains(t, issueNumber, "description")
		require.NotNil(t, schemas.Output)
		assert.Equal(t, "getIssueOutput", schemas.Output.Title())
		assert.Equal(t, "object", (*schemas.Output)["type"])
		assert.Nil(t, (*schemas.Output)["oneOf"])
	})

	t.Run("Should derive a union and collapsed body from a JSON action", func(t *testing.T) {
		config, err := Load(afero.NewOsFs(), filepath.Join("testdata", "create_issue.action.json"))
		require.NoError(t, err)

		schemas, err := config.Schemas(t.Context())

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"title", "body", "labels", "repo"}, keys(schemas.Input.Properties()))
		assert.Equal(t, []string{"title", "repo"}, schemas.Input.Required())
		assert.Equal(t, "Output", (*schemas.Output)["$id"])
		assert.Len(t, (*schemas.Output)["oneOf"], 2)
	})

	t.Run("Should reject an action without name", func(t *testing.T) {
		config, err := Decode([]byte("spec:\n  input: {}\n"))
		require.NoError(t, err)

		_, err = config.Schemas(t.Context())

		var actionErr *Error
		require.ErrorAs(t, err, &actionErr)
		assert.Equal(t, ErrCodeInvalidSpec, actionErr.Code)
		assert.Equal(t, "Name", actionErr.Field)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("Should reject a name that yields an empty file name", func(t *testing.T) {
		config := &Config{Name: "!!!"}

		err := config.Validate(t.Context())

		var actionErr *Error
		require.ErrorAs(t, err, &actionErr)
		assert.Equal(t, ErrCodeInvalidSpec, actionErr.Code)
		assert.Equal(t, "Name", actionErr.Field)
		assert.ErrorContains(t, err, "empty file name")
	})

	t.Run("Should check struct rules before the file name", func(t *testing.T) {
		config := &Config{Spec: Spec{Output: &Output{Responses: []Response{{Success: true}}}}}

		err := config.Validate(t.Context())

		var actionErr *Error
		require.ErrorAs(t, err, &actionErr)
		assert.Equal(t, "Name", actionErr.Field)
		assert.ErrorContains(t, err, `failed on "required" rule`)
	})

	t.Run("Should report spec fields with their path from the action", func(t *testing.T) {
		config := &Config{Name: "broken", Spec: Spec{Output: &Output{Responses: []Response{{Success: true}}}}}

		err := config.Validate(t.Context())

		var actionErr *Error
		require.ErrorAs(t, err, &actionErr)
		assert.Equal(t, "Spec.Output.Responses[0].Schema", actionErr.Field)
	})

	t.Run("Should accept a valid action", func(t *testing.T) {
		config := &Config{Name: "Get Issue"}

		assert.NoError(t, config.Validate(t.Context()))
	})
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
