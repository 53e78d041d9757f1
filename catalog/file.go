package catalog

// File is the YAML document layout of a catalog.
type File struct {
	Types   []TypeDecl   `yaml:"types"`
	Records []RecordDecl `yaml:"records"`
}

// TypeDecl declares one wrapper definition.
type TypeDecl struct {
	Name        string     `yaml:"name"`
	Kind        string     `yaml:"kind,omitempty"` // opaque (default) | transparent
	Base        string     `yaml:"base"`
	Description string     `yaml:"description,omitempty"`
	Rules       []RuleDecl `yaml:"rules,omitempty"`
}

// RuleDecl selects a builtin predicate. Value is the rule argument: a number
// for length and range rules, a pattern string, a two-element list for
// between, or a list for oneOf. Message overrides the builtin message.
type RuleDecl struct {
	Rule    string `yaml:"rule"`
	Value   any    `yaml:"value,omitempty"`
	Message string `yaml:"message,omitempty"`
}

// RecordDecl declares a composite record.
type RecordDecl struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Strict      bool        `yaml:"strict,omitempty"` // reject unknown keys
	Fields      []FieldDecl `yaml:"fields"`
}

// FieldDecl is one record field. Type names a primitive, a type or a record.
type FieldDecl struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}
