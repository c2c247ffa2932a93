package signature

import (
	"encoding/base64"
	"time"
)

// MediaType is the encoding of every artifact produced by a Pad.
const MediaType = "image/png"

// Artifact is a serialized signature image.
type Artifact struct {
	PNG        []byte
	Width      int
	Height     int
	CapturedAt time.Time
}

// IsZero reports whether the artifact carries no image.
func (a Artifact) IsZero() bool {
	return len(a.PNG) == 0
}

// DataURI renders the artifact as a data: URI suitable for <img src>.
func (a Artifact) DataURI() string {
	if a.IsZero() {
		return ""
	}
	return "data:" + MediaType + ";base64," + base64.StdEncoding.EncodeToString(a.PNG)
}
