package fa3

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/kpalka/fakturaapp/errs"
)

// SchemaValidator is the capability interface the service depends on,
// abstracting the external XSD validator process so it can be mocked in
// tests.
type SchemaValidator interface {
	Validate(ctx context.Context, xmlPath string) error
}

// ExecValidator shells out to an external XML schema validator binary,
// passing the shipped schema and catalog as opaque assets.
type ExecValidator struct {
	BinaryPath  string
	SchemaPath  string
	CatalogPath string
}

// Validate runs the validator against xmlPath and reports a
// FA3_VALIDATION_FAILED error carrying the subprocess's stderr verbatim
// when it exits non-zero.
func (v ExecValidator) Validate(ctx context.Context, xmlPath string) error {
	args := []string{"--noout", "--schema", v.SchemaPath}
	if v.CatalogPath != "" {
		args = append(args, "--catalogs", v.CatalogPath)
	}
	args = append(args, xmlPath)

	cmd := exec.CommandContext(ctx, v.BinaryPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return errs.FA3Failed(stderr.String())
	}
	return nil
}
