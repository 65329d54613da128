package errors

import (
	"fmt"
	"strings"
)

// Append combines the errors into one. Nil values are skipped and when only
// one non nil error is given it is returned untouched. Use it to collect
// all validation failures of a model at once.
func Append(errs ...error) error {
	var res multiErr
	for _, err := range errs {
		if errIsNil(err) {
			continue
		}
		if m, ok := err.(multiErr); ok {
			res = append(res, m...)
			continue
		}
		res = append(res, err)
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

type multiErr []error

func (m multiErr) Error() string {
	msgs := make([]string, len(m))
	for i, err := range m {
		msgs[i] = "* " + err.Error()
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s", len(m), strings.Join(msgs, "\n\t"))
}

// Cause returns the first error so that the ABCI code of a combined
// validation failure is the code of its first element.
func (m multiErr) Cause() error {
	return m[0]
}
