package normalize

import (
	"context"
	"fmt"
)

// RawSensor normalizes camera raw containers by extracting only the
// unprocessed linear sensor data. Embedded previews and metadata never reach
// the output.
type RawSensor struct {
	dcraw string
}

// NewRawSensor builds the raw-sensor backend over the given dcraw binary.
func NewRawSensor(dcraw string) *RawSensor {
	return &RawSensor{dcraw: dcraw}
}

func (r *RawSensor) Normalize(ctx context.Context, path string) (Payload, error) {
	// -c stdout, -D document mode (no interpolation), -4 linear 16-bit.
	out, err := runCapture(ctx, r.dcraw, "-c", "-D", "-4", path)
	if err != nil {
		return Payload{}, fmt.Errorf("raw sensor extraction failed: %w", err)
	}
	if len(out) == 0 {
		return Payload{}, fmt.Errorf("raw sensor extraction produced no output for %s", path)
	}
	return SinglePayload(out), nil
}
