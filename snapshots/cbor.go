package snapshots

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("snapshots: cbor enc mode: %v", err))
	}
	cborEncMode = em
}

// MarshalCBOR encodes deterministically, so equal snapshots give equal bytes.
func MarshalCBOR(s Snapshot) ([]byte, error) {
	if s.Elements == nil {
		s.Elements = []int{}
	}
	return cborEncMode.Marshal(s)
}

func UnmarshalCBOR(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if s.Elements == nil {
		s.Elements = []int{}
	}
	return s, nil
}
