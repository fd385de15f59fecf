package github

import (
	"encoding/json"

	"github.com/entalpic/siesta/pkg/errors"
)

func decode(body []byte, target any) error {
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "github response", err)
	}
	return nil
}
