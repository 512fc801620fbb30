package service

const ServiceName = "spotifyauth.v1.SpotifyAuthService"

const (
	LoginWithActivityProcedure    = "/" + ServiceName + "/LoginWithActivity"
	LoginWithBrowserProcedure     = "/" + ServiceName + "/LoginWithBrowser"
	ExchangeCodeForTokenProcedure = "/" + ServiceName + "/ExchangeCodeForToken"
	LogoutProcedure               = "/" + ServiceName + "/Logout"
	LogoutWithDialogProcedure     = "/" + ServiceName + "/LogoutWithDialog"
	HasActiveSessionProcedure     = "/" + ServiceName + "/HasActiveSession"
)

// Argument keys of the request struct.
const (
	ArgClientID     = "clientId"
	ArgRedirectURI  = "redirectUri"
	ArgScopes       = "scopes"
	ArgCode         = "code"
	ArgClientSecret = "clientSecret"
)
