package validate

// This package wraps go-playground/validator so struct tags are checked the same way
// everywhere in the application.
//
// e.g. internal/config/config.go
//   type Config struct {
//       VisibleRows int      `yaml:"visible_rows" validate:"min=1,max=50"`
//       Extensions  []string `yaml:"extensions" validate:"required,dive,videoext"`
//   }
//
// The custom videoext tag accepts file extensions such as ".mp4" or ".MKV".

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

//nolint:gochecknoglobals // Shared validator singleton.
var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

// get returns a process-wide singleton of the validator.
func get() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
		_ = validatorInst.RegisterValidation("videoext", isVideoExt)
	})
	return validatorInst
}

// isVideoExt reports whether the field is a bare extension: a leading dot followed by
// at least one character and no path separators or further dots.
func isVideoExt(fl validator.FieldLevel) bool {
	ext := fl.Field().String()
	if len(ext) < 2 || ext[0] != '.' {
		return false
	}
	return !strings.ContainsAny(ext[1:], `./\ `)
}

// Struct validates a struct using the shared validator instance.
func Struct(v any) error {
	return get().Struct(v)
}

// Var validates a single variable against the provided tag constraints.
func Var(field any, tag string) error {
	return get().Var(field, tag)
}
