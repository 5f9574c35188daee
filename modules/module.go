package modules

import (
	"context"
	"github.com/lordralex/ballot/api"
	"github.com/lordralex/ballot/api/logger"
	"github.com/lordralex/ballot/chain"
	"github.com/pkg/errors"
	"sort"
)

var availableModules = make(map[string]api.Module, 0)
var loadedModules = make(map[string]api.Module, 0)

func Load(ctx context.Context, node *chain.Node, modules []string) error {
	if len(modules) == 1 && modules[0] == "all" {
		for k, v := range availableModules {
			loadedModules[k] = v
		}
	} else {
		for _, v := range modules {
			logger.Out().Printf("Loading %s\n", v)
			mod := availableModules[v]
			if mod != nil {
				loadedModules[v] = mod
			} else {
				logger.Err().Printf("Module %s does not exist\n", v)
			}
		}
	}

	for k, v := range loadedModules {
		if err := v.Load(ctx, node); err != nil {
			return errors.Wrapf(err, "loading module %s", k)
		}
		logger.Out().Printf("Loaded %s\n", k)
	}
	return nil
}

func Add(module api.Module) {
	availableModules[module.Name()] = module
}

func GetLoaded() map[string]api.Module {
	return loadedModules
}

// Available lists registered module names in order.
func Available() []string {
	names := make([]string, 0, len(availableModules))
	for k := range availableModules {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
