package parse

import (
	"errors"
	"fmt"
)

var (
	ErrParse   = errors.New("parse error")
	ErrNotJSON = fmt.Errorf("%w: not valid JSON", ErrParse)
)
