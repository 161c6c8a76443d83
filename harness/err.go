package harness

import (
	"errors"

	"github.com/ezrec/qsapp/translate"
)

var f = translate.From

var (
	ErrNotCallable = errors.New(f("argument is not callable"))
)
