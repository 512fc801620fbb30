package oauth

import "errors"

var ErrAuthURLInvalid = errors.New("authorization endpoint url is invalid")
