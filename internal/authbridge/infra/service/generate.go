package service

//go:generate mockgen -destination=mock_service_login.go -package=service github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/app/login LoginUseCase
//go:generate mockgen -destination=mock_service_exchange.go -package=service github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/app/exchange ExchangeUseCase
