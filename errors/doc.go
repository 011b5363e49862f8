/*
Package errors provides semantic error types for the dxfspace library.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound     = errors.New("not found")
	    ErrNotPresent   = errors.New("handle not present in space")
	    ErrStructure    = errors.New("document structure error")
	    ErrInvalidInput = errors.New("invalid input")
	)

Usage:

	// Check error type
	record, err := db.Get("1F")
	if err != nil {
	    if errors.IsNotFound(err) {
	        // Handle not found case
	        return nil, fmt.Errorf("entity %s does not exist", "1F")
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewNotFoundError("record", "1F")
	err := errors.NewInvalidOwnerError("1F", "FFFF")
	err := errors.NewStructureError("entity has no subclass \"AcDbEntity\"")

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
