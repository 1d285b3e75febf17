package container

import "github.com/samber/do"

// Server registers every package the HTTP server needs.
func Server(injector *do.Injector, options *Options) {
	do.ProvideValue(injector, options)
	LoggerPackage(injector)
	RedisPackage(injector)
	PostgresPackage(injector)
	SQLitePackage(injector)
	RepositoryPackage(injector)
	PublisherGroupPackage(injector)
	ConsumerGroupPackage(injector)
	ShortenerPackage(injector)
	RateLimitPackage(injector)
	HTTPPackage(injector)
}

// Consumer registers the packages the standalone analytics consumer needs.
func Consumer(injector *do.Injector, options *Options) {
	do.ProvideValue(injector, options)
	LoggerPackage(injector)
	RedisPackage(injector)
	ConsumerGroupPackage(injector)
}
