package directors

import (
	"sync"

	"rbxreflect/src/engine"
	"rbxreflect/src/settings"

	"go.uber.org/zap"
)

// ServiceManager holds the services of the current run.
type ServiceManager struct {
	Settings          *settings.Arguments
	ReflectionService *ReflectionService
}

var (
	current *ServiceManager
	mu      sync.RWMutex
)

// InitServiceManager builds the run's services from args and makes them
// current, replacing any earlier run. Only live runs get a live host.
func InitServiceManager(args *settings.Arguments, live bool, logger *zap.SugaredLogger) *ServiceManager {
	var host engine.LiveHost
	if live {
		host = NewLiveHost(args, logger)
	}

	manager := &ServiceManager{
		Settings:          args,
		ReflectionService: NewReflectionService(args, host, logger),
	}

	mu.Lock()
	current = manager
	mu.Unlock()

	logger.Debugw("Services initialized", zap.Bool("live", host != nil))
	return manager
}

// GetServiceManager returns the current run's services. Before
// InitServiceManager it returns an empty manager.
func GetServiceManager() *ServiceManager {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil {
		return &ServiceManager{}
	}
	return current
}

// ResetServiceManager forgets the current run.
func ResetServiceManager() {
	mu.Lock()
	defer mu.Unlock()
	current = nil
}
