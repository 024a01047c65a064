package fa3

import (
	"context"

	"github.com/kpalka/fakturaapp/errs"
)

// Generate builds, marshals, structurally checks, writes and externally
// validates the FA(3) XML for one invoice, in that fixed order.
// On success it returns nil and the file at path is the validated artifact;
// on any failure the file is not left half-written (WriteFile is atomic),
// so a retried call simply starts over.
func Generate(ctx context.Context, in Input, path string, validator SchemaValidator) error {
	doc, err := Build(in)
	if err != nil {
		return errs.Internalf("fa3: build document: %v", err)
	}

	raw, err := Marshal(doc)
	if err != nil {
		return errs.Internalf("fa3: marshal document: %v", err)
	}

	if err := CheckStructure(raw); err != nil {
		return errs.Internalf("fa3: structural check failed: %v", err)
	}

	if err := WriteFile(path, raw); err != nil {
		return errs.IOErrorf(err, "fa3: write xml")
	}

	if validator != nil {
		if err := validator.Validate(ctx, path); err != nil {
			return err
		}
	}
	return nil
}
