package login

//go:generate mockgen -destination=mock_login.go -package=login . Launcher,StateGenerator
