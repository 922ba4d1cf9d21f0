package request

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const maxTagLen = 64

var registerOnce sync.Once

// RegisterValidations adds the custom binding rules to gin's validator.
func RegisterValidations() (err error) {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		err = v.RegisterValidation("tagname", validTagName)
	})
	return err
}

// validTagName accepts non-blank tags without ':' of at most maxTagLen runes.
// ':' separates key parts in the embedded store indexes.
func validTagName(fl validator.FieldLevel) bool {
	tag := fl.Field().String()
	if strings.TrimSpace(tag) == "" || strings.Contains(tag, ":") {
		return false
	}
	return utf8.RuneCountInString(tag) <= maxTagLen
}
