package modules

import "github.com/lordralex/ballot/modules/relay"

func init() {
	Add(&relay.Module{})
}
