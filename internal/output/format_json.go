package output

import (
	"encoding/json"
)

// JSONFormatter renders the full report as JSON, deal echo included, so the
// output is self-describing for downstream tooling.
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

func (jf *JSONFormatter) Name() string { return "json" }

// Format generates JSON output for the report.
func (jf *JSONFormatter) Format(report *Report) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
