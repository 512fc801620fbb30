package tokenclient

import "errors"

var ErrTokenURLEmpty = errors.New("token endpoint url must be specified")
