package httpapp

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/go-playground/form/v4"
	"github.com/goccy/go-json"

	"github.com/cesargomez89/fullstack/internal/constants"
	"github.com/cesargomez89/fullstack/internal/http/dto"
)

var errEmptyBody = errors.New("request body is empty")

var formDecoder = newFormDecoder()

func newFormDecoder() *form.Decoder {
	d := form.NewDecoder()
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		if len(vals) == 0 {
			return dto.YesNo(false), nil
		}
		return dto.ParseYesNo(vals[len(vals)-1]), nil
	}, dto.YesNo(false))
	return d
}

// decodeJSON reads a JSON body of at most DefaultMaxBodyBytes into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, constants.DefaultMaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("malformed JSON: %w", err)
	}
	return nil
}

// decodeBody reads a form post or a JSON body, chosen by Content-Type.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if isFormPost(r) {
		r.Body = http.MaxBytesReader(w, r.Body, constants.DefaultMaxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("malformed form: %w", err)
		}
		if err := formDecoder.Decode(dst, r.PostForm); err != nil {
			return fmt.Errorf("malformed form: %w", err)
		}
		return nil
	}
	return decodeJSON(w, r, dst)
}

func isFormPost(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == constants.MimeTypeForm
}
