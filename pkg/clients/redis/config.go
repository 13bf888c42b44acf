package redis

type RedisConfig struct {
	Host         string
	Password     string
	Db           int
	MaxRetries   int
	DialTimeout  int
	ReadTimeout  int
	WriteTimeout int
	PoolSize     int
	MinIdleConns int
	MaxConnAge   int
	PoolTimeout  int
	IdleTimeout  int
}

func (c *RedisConfig) DefaultConfig() {
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = 30
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 5
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 5
	}
	if c.PoolSize == 0 {
		c.PoolSize = 100
	}
	if c.MinIdleConns == 0 {
		c.MinIdleConns = 10
	}
	if c.MaxConnAge == 0 {
		c.MaxConnAge = 1
	}
	if c.PoolTimeout == 0 {
		c.PoolTimeout = 30
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 30
	}
}
