package config

import "github.com/grovetools/staffdesk/schema"

// NewSchemaValidator returns a validator backed by the embedded
// staffdesk.json schema.
func NewSchemaValidator() (*schema.Validator, error) {
	return schema.NewValidator()
}
