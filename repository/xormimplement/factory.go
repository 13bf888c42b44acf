package xormimplement

import (
	"context"
	"fmt"
	"sync"

	"event_assistant/config"
	"event_assistant/repository"
	"event_assistant/repository/factory"
	"event_assistant/repository/interfaces"

	"github.com/sirupsen/logrus"
	"xorm.io/xorm"

	_ "github.com/lib/pq"
)

var once sync.Once
var instance *Factory

type Factory struct {
	engine *xorm.Engine
}

func GetRepositoryFactoryInstance() factory.Factory {
	once.Do(func() {
		instance = &Factory{
			engine: openDB(
				config.GetInstance().GetString(config.BaseDbXormType),
				config.GetInstance().GetString(config.BaseDbXormHost),
				config.GetInstance().GetString(config.BaseDbXormPort),
				config.GetInstance().GetString(config.BaseDbXormUsername),
				config.GetInstance().GetString(config.BaseDbXormName),
				config.GetInstance().GetString(config.BaseDbXormPassword),
				config.GetInstance().GetBool(config.BaseDbXormShowsql),
			),
		}
	})
	return instance
}

func openDB(dbType string, host string, port string, userName string, name string, password string, showSql bool) *xorm.Engine {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		host,
		userName,
		password,
		name,
		port)
	engine, err := xorm.NewEngine(dbType, dsn)
	if err != nil {
		logrus.Errorf("Database connection failed err: %v. Database name: %s", err, name)
		panic(err)
	}
	engine.ShowSQL(showSql)
	return engine
}

func (f *Factory) NewSession(ctx context.Context) interfaces.Session {
	return &Session{Session: f.engine.NewSession().Context(ctx)}
}

func (f *Factory) NewConversationRepository(session interfaces.Session) (repository.ConversationRepository, error) {
	if s, ok := session.(*Session); ok {
		return NewConversationRepository(s), nil
	}
	return nil, fmt.Errorf("session is not a xorm session")
}
