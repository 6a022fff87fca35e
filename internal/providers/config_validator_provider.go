package providers

import (
	"path/filepath"
	"sync"

	"github.com/gookit/validate"

	"tcncore/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

var registerValidatorsOnce sync.Once

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	registerValidatorsOnce.Do(func() {
		validate.AddValidator("unixPath", func(val string) bool {
			return filepath.IsAbs(val)
		})
	})
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}
	return nil
}
