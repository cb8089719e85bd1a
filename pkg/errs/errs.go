package errs

import (
	cr "github.com/cockroachdb/errors"
)

// Wrap добавляет сообщение и стек вызовов, сохраняя цепочку для errors.Is
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

// Wrapf как Wrap, но с форматированием
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}
