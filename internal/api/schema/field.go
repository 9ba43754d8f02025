package schema

import "github.com/faciam-dev/formfields/pkg/formfield"

type Field struct {
	Name  string          `json:"name"`
	Kind  string          `json:"kind" enum:"domain_excluding_email,pattern_extraction,registered_email_list"`
	Hints formfield.Hints `json:"hints,omitempty"`
}

type CleanRequest struct {
	Value string `json:"value" doc:"Raw user input"`
}

type CleanResult struct {
	Field string `json:"field"`
	// Value is a string for email fields and a list of strings otherwise.
	Value any `json:"value"`
}
