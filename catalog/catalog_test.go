package catalog_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/refined"
	"github.com/reoring/refined/catalog"
)

func loadAccounts(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.LoadFile("testdata/accounts.yaml")
	require.NoError(t, err)
	return c
}

func lookup(t *testing.T, c *catalog.Catalog, name string) *catalog.Entry {
	t.Helper()
	e, ok := c.Lookup(name)
	require.True(t, ok, "missing entry %s", name)
	return e
}

func TestLoad_Names(t *testing.T) {
	c := loadAccounts(t)
	assert.Equal(t, []string{"Username", "Handle", "Email", "Age", "Score", "Plan", "Account", "Team"}, c.Names())

	assert.Equal(t, "opaque", lookup(t, c, "Username").Kind)
	assert.Equal(t, "transparent", lookup(t, c, "Age").Kind)
	assert.Equal(t, catalog.KindRecord, lookup(t, c, "Account").Kind)
	assert.Equal(t, catalog.KindPrimitive, lookup(t, c, "int").Kind)

	_, ok := c.Lookup("Nope")
	assert.False(t, ok)
}

func TestEntry_Plain(t *testing.T) {
	c := loadAccounts(t)
	age := lookup(t, c, "Age").Plain

	v, err := age.Decode("42")
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, "42", age.Encode(v))

	_, err = age.Decode("200")
	require.Error(t, err)
	assert.ErrorIs(t, err, refined.ErrValidation)
	assert.Equal(t, "Value must be between 0 and 150", err.Error())

	_, err = age.Decode("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, refined.ErrParse)

	_, err = lookup(t, c, "Plan").Plain.Decode("enterprise")
	assert.EqualError(t, err, "Value must be one of [free pro]")
}

func TestEntry_NestedMessageOverride(t *testing.T) {
	c := loadAccounts(t)
	handle := lookup(t, c, "Handle").Plain

	_, err := handle.Decode("")
	assert.EqualError(t, err, "String must not be empty")

	_, err = handle.Decode("Alice")
	assert.EqualError(t, err, "Handle must be lowercase")

	_, err = handle.Decode(strings.Repeat("a", 17))
	assert.EqualError(t, err, "Username must be at most 16 characters")
}

func TestEntry_RecordPickler(t *testing.T) {
	c := loadAccounts(t)
	acct := lookup(t, c, "Account")
	in := `{"name":"Alice","email":"alice@example.com","handle":"alice","age":30,"score":4.5}`

	v, err := acct.Pickler.Decode(in)
	require.NoError(t, err)
	o, ok := v.(catalog.Object)
	require.True(t, ok)
	assert.Equal(t, "Alice", o["name"])
	assert.Equal(t, 30, o["age"])
	assert.Equal(t, in, acct.Pickler.Encode(v))
	assert.Empty(t, acct.Validator.Validate(v))

	_, err = acct.Pickler.Decode(`{"name":"Alice","email":"x","handle":"alice","age":300,"score":4.5}`)
	df, ok := refined.AsDecodeFailure(err)
	require.True(t, ok)
	assert.Equal(t, "/email", df.Path)

	_, err = acct.Pickler.Decode(`{"name":"Alice","email":"a@b","handle":"alice","age":1,"score":0,"x":1}`)
	df, ok = refined.AsDecodeFailure(err)
	require.True(t, ok)
	assert.Equal(t, "/x", df.Path)
	assert.Equal(t, refined.CodeUnknownKey, df.Issues()[0].Code)
}

func TestEntry_RecordValidatorUnion(t *testing.T) {
	c := loadAccounts(t)
	acct := lookup(t, c, "Account")
	iss := acct.Validator.Validate(catalog.Object{
		"name":   "Alice",
		"email":  "x",
		"handle": "alice",
		"age":    300,
		"score":  1.0,
	})
	require.Len(t, iss, 2)
	assert.Equal(t, "/email", iss[0].Path)
	assert.Equal(t, "/age", iss[1].Path)
	assert.Equal(t, 300, iss[1].Value)

	iss = acct.Validator.Validate("not a record")
	require.Len(t, iss, 1)
	assert.Equal(t, refined.CodeInvalidType, iss[0].Code)
}

func TestEntry_RecordValidatorMissingAndMistyped(t *testing.T) {
	c := loadAccounts(t)
	acct := lookup(t, c, "Account")

	iss := acct.Validator.Validate(catalog.Object{"name": "Alice"})
	require.Len(t, iss, 4)
	for i, path := range []string{"/email", "/handle", "/age", "/score"} {
		assert.Equal(t, path, iss[i].Path)
		assert.Equal(t, refined.CodeRequired, iss[i].Code)
	}

	iss = acct.Validator.Validate(map[string]any{
		"name":   "Alice",
		"email":  "alice@example.com",
		"handle": "alice",
		"age":    "old",
		"score":  1.0,
	})
	require.Len(t, iss, 1)
	assert.Equal(t, "/age", iss[0].Path)
	assert.Equal(t, refined.CodeInvalidType, iss[0].Code)
	assert.Equal(t, "expected int got string", iss[0].Message)

	iss = lookup(t, c, "Team").Validator.Validate(catalog.Object{"lead": "bob", "active": true})
	require.Len(t, iss, 1)
	assert.Equal(t, "/lead", iss[0].Path)
	assert.Equal(t, refined.CodeInvalidType, iss[0].Code)
}

func TestEntry_NestedRecordPath(t *testing.T) {
	c := loadAccounts(t)
	_, err := lookup(t, c, "Team").Pickler.Decode(`{"lead":{"name":""},"active":true}`)
	df, ok := refined.AsDecodeFailure(err)
	require.True(t, ok)
	assert.Equal(t, "/lead/name", df.Path)
	assert.Equal(t, "String must not be empty", df.Message())
}

func TestEntry_JSONSchema(t *testing.T) {
	c := loadAccounts(t)
	s := lookup(t, c, "Account").Pickler.JSONSchema()
	assert.Equal(t, "object", s.Type)
	assert.Equal(t, "A user account", s.Description)
	assert.Equal(t, false, s.AdditionalProperties)
	assert.Equal(t, []string{"name", "email", "handle", "age", "score"}, s.Required)

	name := s.Properties["name"]
	assert.Equal(t, "Username", name.Title)
	assert.Equal(t, "Login name", name.Description)
	require.NotNil(t, name.MaxLength)
	assert.Equal(t, 16, *name.MaxLength)
	require.Len(t, name.Validations, 2)
	assert.Equal(t, "Username must be at most 16 characters", name.Validations[1].Message)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "unknown rule",
			doc:  "types:\n  - name: A\n    base: string\n    rules:\n      - rule: shiny\n",
			want: catalog.ErrUnknownRule,
		},
		{
			name: "rule on bool",
			doc:  "types:\n  - name: A\n    base: bool\n    rules:\n      - rule: min\n        value: 1\n",
			want: catalog.ErrUnknownRule,
		},
		{
			name: "unknown base",
			doc:  "types:\n  - name: A\n    base: B\n",
			want: catalog.ErrUnknownType,
		},
		{
			name: "cycle",
			doc:  "types:\n  - name: A\n    base: B\n  - name: B\n    base: A\n",
			want: catalog.ErrCycle,
		},
		{
			name: "duplicate",
			doc:  "types:\n  - name: A\n    base: string\nrecords:\n  - name: A\n    fields:\n      - name: x\n        type: string\n",
			want: catalog.ErrDuplicate,
		},
		{
			name: "shadows primitive",
			doc:  "types:\n  - name: int\n    base: string\n",
			want: catalog.ErrDuplicate,
		},
		{
			name: "bad kind",
			doc:  "types:\n  - name: A\n    kind: sealed\n    base: string\n",
			want: catalog.ErrInvalid,
		},
		{
			name: "record base",
			doc:  "types:\n  - name: A\n    base: R\nrecords:\n  - name: R\n    fields:\n      - name: x\n        type: string\n",
			want: catalog.ErrInvalid,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Load(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestLoad_RejectsUnknownYAMLKeys(t *testing.T) {
	_, err := catalog.Load(strings.NewReader("types:\n  - name: A\n    base: string\n    colour: red\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestLoad_Empty(t *testing.T) {
	c, err := catalog.Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, c.Names())
}
