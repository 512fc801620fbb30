package exchange

//go:generate mockgen -destination=mock_exchange.go -package=exchange . TokenClient,Executor
