package modules

import "github.com/lordralex/ballot/modules/announcer"

func init() {
	Add(&announcer.Module{})
}
