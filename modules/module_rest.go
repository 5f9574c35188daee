package modules

import "github.com/lordralex/ballot/modules/rest"

func init() {
	Add(&rest.Module{})
}
