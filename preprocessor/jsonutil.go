package preprocessor

import "strings"

// mustJSONReader adapts a literal JSON schema string to the io.Reader the
// jsonschema compiler's AddResource expects.
func mustJSONReader(s string) *strings.Reader {
	return strings.NewReader(s)
}
