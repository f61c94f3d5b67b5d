package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const testSchema = `
fields:
  - name: id
    kind: uuid
    primary: true
    required: true
  - name: title
    kind: string
    required: true
    validators:
      - min_length: 3
  - name: homepage
    validators: [url]
  - name: tags
    list: true
    validators: [string]
`

const validRecords = `
- id: 0b6f5f0e-5d6c-4d1a-9a55-0b8d2d6f3c11
  title: Hello
  homepage: https://bücher.de/path
  tags: [go, yaml]
- id: 7c9e6679-7425-40de-944b-e07fc1f90ae7
  title: World
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "fields.yaml", testSchema)
	validPath := writeFile(t, dir, "ok.yaml", validRecords)

	t.Run("all records valid", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(t.Context(), []string{"--schema", schemaPath, "--data", validPath}, &stdout, &stderr)

		assert.Equal(t, exitOK, code, stderr.String())
		assert.Contains(t, stdout.String(), "record 0: ok (4 columns, id=0b6f5f0e-5d6c-4d1a-9a55-0b8d2d6f3c11)")
		assert.Contains(t, stdout.String(), "record 1: ok (4 columns, id=7c9e6679-7425-40de-944b-e07fc1f90ae7)")
		assert.Contains(t, stderr.String(), "check finished")
		assert.Contains(t, stderr.String(), "records.total=2")
		assert.Contains(t, stderr.String(), "records.failed=0")
	})

	t.Run("invalid records are reported", func(t *testing.T) {
		data := writeFile(t, dir, "bad.yaml", `
- title: Hi
  homepage: not a url
- id: 7c9e6679-7425-40de-944b-e07fc1f90ae7
  title: Fine title
  tags: [go, 42]
- id: 7c9e6679-7425-40de-944b-e07fc1f90ae7
  title: Fine title
  color: red
`)
		var stdout, stderr bytes.Buffer
		code := run(t.Context(), []string{"--schema", schemaPath, "--data", data}, &stdout, &stderr)

		assert.Equal(t, exitInvalid, code)
		out := stdout.String()
		assert.Contains(t, out, "record 0: FAIL")
		assert.Contains(t, out, "id: Value <id> is required.")
		assert.Contains(t, out, "title: Ensure this value has length of at least 3 (it has length 2).")
		assert.Contains(t, out, "homepage: Enter a valid URL")
		assert.Contains(t, out, "record 1: FAIL")
		assert.Contains(t, out, "tags: Not a valid string: <42>")
		assert.Contains(t, out, "record 2: FAIL")
		assert.Contains(t, out, "color: unknown field")
	})

	t.Run("unknown names are reported with missing values", func(t *testing.T) {
		data := writeFile(t, dir, "mixed.yaml", "- title: Fine title\n  color: red\n")
		var stdout, stderr bytes.Buffer
		code := run(t.Context(), []string{"--schema", schemaPath, "--data", data}, &stdout, &stderr)

		assert.Equal(t, exitInvalid, code)
		out := stdout.String()
		assert.Contains(t, out, "color: unknown field")
		assert.Contains(t, out, "id: Value <id> is required.")
	})

	t.Run("rejected writes are reported once", func(t *testing.T) {
		listSchema := writeFile(t, dir, "list.yaml", "fields:\n  - name: tags\n    list: true\n    required: true\n")
		data := writeFile(t, dir, "twice.yaml", "- tags: 7\n")
		var stdout, stderr bytes.Buffer
		code := run(t.Context(), []string{"--schema", listSchema, "--data", data}, &stdout, &stderr)

		assert.Equal(t, exitInvalid, code)
		assert.Equal(t, 1, bytes.Count(stdout.Bytes(), []byte("  tags: ")), stdout.String())
		assert.Contains(t, stdout.String(), "must be iterable")
	})

	t.Run("bson output", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(t.Context(), []string{"--schema", schemaPath, "--data", validPath, "--output", "bson"}, &stdout, &stderr)
		require.Equal(t, exitOK, code, stderr.String())

		var docs []bson.M
		for _, line := range strings.Split(stdout.String(), "\n") {
			if !strings.HasPrefix(line, "  {") {
				continue
			}
			var m bson.M
			require.NoError(t, bson.UnmarshalExtJSON([]byte(strings.TrimSpace(line)), false, &m))
			docs = append(docs, m)
		}
		require.Len(t, docs, 2)
		assert.Equal(t, "0b6f5f0e-5d6c-4d1a-9a55-0b8d2d6f3c11", docs[0]["_id"])
		assert.Equal(t, "Hello", docs[0]["title"])
		assert.Equal(t, bson.A{"go", "yaml"}, docs[0]["tags"])
		assert.NotContains(t, docs[0], "id", "primary is stored as _id")
		assert.Nil(t, docs[1]["homepage"])
	})

	t.Run("sql output", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(t.Context(), []string{"--schema", schemaPath, "--data", validPath, "--output", "sql", "--table", "app.articles"}, &stdout, &stderr)

		require.Equal(t, exitOK, code, stderr.String())
		out := stdout.String()
		assert.Contains(t, out, `INSERT INTO "app"."articles" ("id", "title", "homepage", "tags") VALUES (@id, @title, @homepage, @tags)`)
		assert.Contains(t, out, "@title = Hello")
		assert.Contains(t, out, "@tags = [go yaml]")
	})

	t.Run("unknown output format", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(t.Context(), []string{"--schema", schemaPath, "--data", validPath, "--output", "xml"}, &stdout, &stderr)
		assert.Equal(t, exitUsage, code)
		assert.Contains(t, stderr.String(), `unknown output format "xml"`)
	})

	t.Run("missing flags", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(t.Context(), []string{"--data", "x.yaml"}, &stdout, &stderr)
		assert.Equal(t, exitUsage, code)
		assert.Contains(t, stderr.String(), "both --schema and --data are required")
	})

	t.Run("undefined flag", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(t.Context(), []string{"--nope"}, &stdout, &stderr)
		assert.Equal(t, exitUsage, code)
	})

	t.Run("invalid schema", func(t *testing.T) {
		bad := writeFile(t, dir, "bad-schema.yaml", "fields:\n  - name: a\n    kind: decimal\n")
		data := writeFile(t, dir, "empty.yaml", "[]\n")
		var stdout, stderr bytes.Buffer
		code := run(t.Context(), []string{"--schema", bad, "--data", data}, &stdout, &stderr)
		assert.Equal(t, exitUsage, code)
		assert.Contains(t, stderr.String(), "invalid schema")
	})

	t.Run("missing data file", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(t.Context(), []string{"--schema", schemaPath, "--data", filepath.Join(dir, "nope.yaml")}, &stdout, &stderr)
		assert.Equal(t, exitUsage, code)
		assert.Contains(t, stderr.String(), "load records")
	})

	t.Run("missing env file", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(t.Context(), []string{"--env", filepath.Join(dir, "nope.env"), "--schema", schemaPath, "--data", "x"}, &stdout, &stderr)
		assert.Equal(t, exitUsage, code)
	})
}
