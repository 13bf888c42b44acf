package factory

import (
	"sync"

	"event_assistant/pkg/clients/redis"
	"event_assistant/repository/factory"
	"event_assistant/repository/xormimplement"
	"event_assistant/service/chat"
	"event_assistant/service/ledger"
)

var instance *Factory
var once sync.Once

type Factory struct {
	repositoryFactory factory.Factory
}

func GetServiceFactory() *Factory {
	once.Do(func() {
		instance = &Factory{repositoryFactory: xormimplement.GetRepositoryFactoryInstance()}
	})
	return instance
}

func (f *Factory) NewLedgerService() *ledger.Service {
	return ledger.NewService(f.repositoryFactory, redis.GetInstance())
}

func (f *Factory) NewChatService() *chat.Service {
	return chat.NewService(f.repositoryFactory, f.NewLedgerService())
}
