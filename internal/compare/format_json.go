package compare

import (
	"encoding/json"

	"github.com/rgehrsitz/itrgo/internal/domain"
)

// JSONFormatter formats a regime comparison as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output for a comparison
func (jf *JSONFormatter) Format(c *domain.RegimeComparison) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = json.Marshal(c)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
