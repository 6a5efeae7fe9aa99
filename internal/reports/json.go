package reports

import (
	"encoding/json"
)

// FormatJSON formats a summary as indented JSON.
func FormatJSON(s *Summary) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
