package identity

import "context"

// CodeEncoder renders a student id as a scannable optical code artifact
// (a PNG on disk in the default implementation) and returns the artifact
// location. The artifact is a side-channel deliverable for printing id
// cards; it is never part of the domain state.
type CodeEncoder interface {
	Encode(ctx context.Context, id int, studentName string) (string, error)
}

// CodeDecoder extracts a student id from a captured image frame. A frame
// with no readable code is not an error: ok is false and the scan loop
// simply moves on to the next frame.
type CodeDecoder interface {
	Decode(ctx context.Context, frame []byte) (id int, ok bool, err error)
}

// NopEncoder ignores encode requests. Used when code generation is disabled.
type NopEncoder struct{}

// Encode implements CodeEncoder.
func (NopEncoder) Encode(context.Context, int, string) (string, error) { return "", nil }
