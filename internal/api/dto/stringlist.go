package dto

import "encoding/json"

// StringList decodes a JSON field that browsers submit in two shapes: a
// single string when one option is selected, an array when several are. It
// normalizes both into a list before anything downstream sees the value.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = StringList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = StringList(many)
	return nil
}
