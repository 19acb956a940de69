package gamedata

import (
	"encoding/json"
	"fmt"
)

// Load reads an embedded JSON file into a value of type T.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("read embedded %s: %w", filename, err)
	}
	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("decode %s: %w", filename, err)
	}
	return result, nil
}
