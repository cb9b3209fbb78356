package history

import "errors"

var ErrInvalidVisitDate = errors.New("visit date must be YYYY-MM-DD")
