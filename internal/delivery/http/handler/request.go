package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/mold/v4/modifiers"
	"github.com/gorilla/schema"
)

var (
	formDecoder = newFormDecoder()
	conform     = modifiers.New()
)

// newFormDecoder reads url-encoded fields by the same names the JSON
// bodies use.
func newFormDecoder() *schema.Decoder {
	decoder := schema.NewDecoder()
	decoder.SetAliasTag("json")
	decoder.IgnoreUnknownKeys(true)
	return decoder
}

// decodeRequest fills dst from a JSON or url-encoded form body and applies
// the `mod` tags, so both body types are normalised the same way.
func decodeRequest(r *http.Request, dst interface{}) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return err
		}
		if err := formDecoder.Decode(dst, r.PostForm); err != nil {
			return err
		}
	}

	return conform.Struct(r.Context(), dst)
}
