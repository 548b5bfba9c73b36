package processerrors

import goerrors "github.com/go-errors/errors"

func stack(err error) string {
	goerr := goerrors.Wrap(err, 2)
	return string(goerr.Stack())
}
