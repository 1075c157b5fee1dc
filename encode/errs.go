package encode

import "errors"

var ErrDecompress = errors.New("bad compressed stream")
