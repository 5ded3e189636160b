package common

import (
	"github.com/sunthewhat/easy-cert-form/type/shared"
)

var Config *shared.Config
