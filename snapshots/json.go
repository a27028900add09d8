package snapshots

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
)

func EncodeJSON(s Snapshot) ([]byte, error) {
	if s.Elements == nil {
		s.Elements = []int{}
	}
	return json.MarshalIndent(s, "", "  ")
}

// DecodeJSON rejects every element that is not an integer in int64 range,
// not only the first.
func DecodeJSON(data []byte) (ret Snapshot, err error) {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return ret, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if !IsSnapshot(value) {
		return ret, ErrInvalid
	}
	list := value.(map[string]any)["elements"].([]any)
	ret.Elements = make([]int, 0, len(list))
	for i, elem := range list {
		f, ok := elem.(float64)
		if !ok || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return Snapshot{}, fmt.Errorf("%w: element %d is %v", ErrInvalid, i, elem)
		}
		ret.Elements = append(ret.Elements, int(f))
	}
	return ret, nil
}

func WriteJSON(w io.Writer, s Snapshot) error {
	data, err := EncodeJSON(s)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func ReadJSON(r io.Reader) (Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Snapshot{}, err
	}
	return DecodeJSON(data)
}
