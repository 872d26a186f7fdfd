package webutil

import (
	"encoding/json"
	"fmt"
	"net/http"

	"mood_diary/internal/model"
)

// DecodeJSONBody はリクエストボディをデコードします。未知のフィールドはエラーにします。
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.ErrInvalidInput
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidInput, err)
	}
	return nil
}
