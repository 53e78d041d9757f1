package schema_test

import (
	"regexp"
	"testing"

	"github.com/reoring/refined"
	"github.com/reoring/refined/schema"
)

type (
	usernameTag struct{}
	emailTag    struct{}
	handleTag   struct{}
)

type (
	Username = refined.Wrapped[string, usernameTag]
	Email    = refined.Wrapped[string, emailTag]
	Handle   = refined.Wrapped[Username, handleTag]
	Age      int
	Score    float64
)

var (
	usernameDef = refined.NewtypeOf[usernameTag]("Username", refined.String(), refined.NonEmpty(), refined.MaxLength(16))
	emailDef    = refined.NewtypeOf[emailTag]("Email", refined.String(), refined.Matches(regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)))
	handleDef   = refined.NewtypeOf[handleTag]("Handle", refined.Underlying[Username](usernameDef),
		refined.Rule("lowercase", "Handle must be lowercase", func(u Username) bool { return lowerRe.MatchString(u.Value()) }))
	ageDef   = refined.IntSubtype[Age]("Age", refined.Between(0, 150))
	scoreDef = refined.FloatSubtype[Score]("Score", refined.NonNegative[float64]())

	lowerRe = regexp.MustCompile(`^[a-z0-9_]+$`)
)

type Account struct {
	Name   Username
	Email  Email
	Handle Handle
	Age    Age
	Score  Score
}

var accountValidator = schema.Record[Account]("Account",
	schema.FieldOf[Account, Username]("name", func(a Account) Username { return a.Name }, schema.Derive[Username](usernameDef)),
	schema.FieldOf[Account, Email]("email", func(a Account) Email { return a.Email }, schema.Derive[Email](emailDef)),
	schema.FieldOf[Account, Handle]("handle", func(a Account) Handle { return a.Handle }, schema.Derive[Handle](handleDef)),
	schema.FieldOf[Account, Age]("age", func(a Account) Age { return a.Age }, schema.Derive[Age](ageDef)),
	schema.FieldOf[Account, Score]("score", func(a Account) Score { return a.Score }, schema.Derive[Score](scoreDef)),
)

func validAccount() Account {
	return Account{
		Name:   usernameDef.MustMake("Alice"),
		Email:  emailDef.MustMake("alice@example.com"),
		Handle: handleDef.MustMake(usernameDef.MustMake("alice")),
		Age:    ageDef.MustMake(30),
		Score:  scoreDef.MustMake(4.5),
	}
}

func TestScalar_ValidValueHasNoIssues(t *testing.T) {
	v := schema.Derive[Username](usernameDef)
	if iss := v.Validate(usernameDef.MustMake("hello")); iss != nil {
		t.Fatalf("expected no issues, got %v", iss)
	}
	if !schema.Is[Username](v, usernameDef.MustMake("hello")) {
		t.Fatalf("Is should report valid")
	}
}

func TestScalar_UnsafeValueReportsOneViolation(t *testing.T) {
	v := schema.Derive[Username](usernameDef)
	iss := v.Validate(usernameDef.UnsafeMake(""))
	if len(iss) != 1 {
		t.Fatalf("expected 1 issue, got %v", iss)
	}
	it := iss[0]
	if it.Message != "String must not be empty" || it.Value != "" || it.Path != "/" || it.Code != refined.CodeValidation {
		t.Fatalf("unexpected issue: %+v", it)
	}
}

func TestScalar_NestedInnerPredicateWins(t *testing.T) {
	v := schema.Derive[Handle](handleDef)
	// Upper case and empty: only the inner non-empty failure is reported.
	iss := v.Validate(handleDef.UnsafeMake(usernameDef.UnsafeMake("")))
	if len(iss) != 1 || iss[0].Rule != "nonEmpty" {
		t.Fatalf("expected the inner violation only, got %v", iss)
	}
	iss = v.Validate(handleDef.UnsafeMake(usernameDef.MustMake("Alice")))
	if len(iss) != 1 || iss[0].Message != "Handle must be lowercase" || iss[0].Value != "Alice" {
		t.Fatalf("expected the outer violation with the raw value, got %v", iss)
	}
}

func TestScalar_Description(t *testing.T) {
	v := schema.Derive[Username](usernameDef)
	if got := v.Description(); got != "String must not be empty; String must be at most 16 characters" {
		t.Fatalf("description = %q", got)
	}
}

func TestRecord_AllValid(t *testing.T) {
	if iss := accountValidator.Validate(validAccount()); iss != nil {
		t.Fatalf("expected valid account, got %v", iss)
	}
}

func TestRecord_ReportsUnionInDeclarationOrder(t *testing.T) {
	a := validAccount()
	a.Email = emailDef.UnsafeMake("not-an-email")
	a.Age = ageDef.UnsafeMake(200)

	iss := accountValidator.Validate(a)
	if len(iss) != 2 {
		t.Fatalf("expected 2 issues, got %v", iss)
	}
	if iss[0].Path != "/email" || iss[0].Rule != "pattern" {
		t.Fatalf("unexpected first issue: %+v", iss[0])
	}
	if iss[1].Path != "/age" || iss[1].Message != "Value must be between 0 and 150" || iss[1].Value != 200 {
		t.Fatalf("unexpected second issue: %+v", iss[1])
	}
}

func TestRecord_JSONSchema(t *testing.T) {
	s := accountValidator.JSONSchema()
	if s.Type != "object" || s.Title != "Account" || len(s.Required) != 5 {
		t.Fatalf("unexpected record schema: %+v", s)
	}
	if s.Required[0] != "name" || s.Required[4] != "score" {
		t.Fatalf("required should follow declaration order: %v", s.Required)
	}
	age := s.Properties["age"]
	if age.Type != "integer" || *age.Minimum != 0 || *age.Maximum != 150 {
		t.Fatalf("unexpected age schema: %+v", age)
	}
	handle := s.Properties["handle"]
	if handle.Title != "Handle" || len(handle.Validations) != 3 {
		t.Fatalf("nested schema should carry inner and outer validations: %+v", handle)
	}
}

func TestRecord_DuplicateFieldPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	schema.Record[Account]("Dup",
		schema.FieldOf[Account, Age]("age", func(a Account) Age { return a.Age }, schema.Derive[Age](ageDef)),
		schema.FieldOf[Account, Age]("age", func(a Account) Age { return a.Age }, schema.Derive[Age](ageDef)),
	)
}

func TestSlice_IndexPaths(t *testing.T) {
	v := schema.Slice[Age](schema.Derive[Age](ageDef))
	iss := v.Validate([]Age{1, ageDef.UnsafeMake(-1), 3, ageDef.UnsafeMake(151)})
	if len(iss) != 2 || iss[0].Path != "/1" || iss[1].Path != "/3" {
		t.Fatalf("unexpected issues: %v", iss)
	}
	if s := v.JSONSchema(); s.Type != "array" || s.Items.Title != "Age" {
		t.Fatalf("unexpected slice schema: %+v", s)
	}
}
