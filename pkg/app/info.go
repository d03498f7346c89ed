package app

type AppInfo struct {
	AppName     string
	Version     string
	Environment string
}
