package reporting

import (
	"encoding/json"
	"io"
)

// EncodeJSON writes the report as indented JSON.
func EncodeJSON(w io.Writer, rep *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func WriteJSON(id, outDir string, rep *Report) (string, error) {
	return writeFile(outDir, id+".json", func(w io.Writer) error { return EncodeJSON(w, rep) })
}
